package appstate

// CompletionKind discriminates what a CompletionCandidate represents.
type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionTable
	CompletionColumn
)

// CompletionCandidate is one ranked suggestion surfaced by the completion
// engine, ready to render in the popup.
type CompletionCandidate struct {
	Text   string
	Kind   CompletionKind
	Detail *string
	Score  int
}
