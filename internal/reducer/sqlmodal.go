package reducer

import (
	"strings"
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceSQLModal handles SQL buffer editing, cursor movement, paste,
// and the completion popup. CursorPos and all positions here are
// character indices, not byte indices.
func reduceSQLModal(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindSqlModalInput:
		s.SQL.Buffer, s.SQL.CursorPos = insertRune(s.SQL.Buffer, s.SQL.CursorPos, a.Char)
		return scheduleDebounce(s, now), true

	case action.KindSqlModalBackspace:
		s.SQL.Buffer, s.SQL.CursorPos = backspaceRune(s.SQL.Buffer, s.SQL.CursorPos)
		return scheduleDebounce(s, now), true

	case action.KindSqlModalMoveCursor:
		s.SQL.CursorPos = moveCursor(s.SQL.Buffer, s.SQL.CursorPos, a.CursorMove)
		return nil, true

	case action.KindPaste:
		sanitized := sanitizePaste(a.Text)
		s.SQL.Buffer, s.SQL.CursorPos = insertText(s.SQL.Buffer, s.SQL.CursorPos, sanitized)
		return scheduleDebounce(s, now), true

	case action.KindCompletionTrigger:
		s.SQL.DebounceScheduled = false
		return []effect.Effect{{Kind: effect.KindTriggerCompletion}}, true

	case action.KindCompletionUpdated:
		s.SQL.CompletionCandidates = a.Candidates
		s.SQL.CompletionTriggerPos = a.TriggerPosition
		s.SQL.CompletionVisible = a.Visible
		s.SQL.CompletionSelected = 0
		return nil, true

	case action.KindCompletionNext:
		if len(s.SQL.CompletionCandidates) > 0 {
			s.SQL.CompletionSelected = (s.SQL.CompletionSelected + 1) % len(s.SQL.CompletionCandidates)
		}
		return nil, true

	case action.KindCompletionPrev:
		if n := len(s.SQL.CompletionCandidates); n > 0 {
			s.SQL.CompletionSelected = (s.SQL.CompletionSelected - 1 + n) % n
		}
		return nil, true

	case action.KindCompletionAccept:
		if s.SQL.CompletionSelected < len(s.SQL.CompletionCandidates) {
			chosen := s.SQL.CompletionCandidates[s.SQL.CompletionSelected]
			s.SQL.Buffer, s.SQL.CursorPos = replaceCurrentToken(s.SQL.Buffer, s.SQL.CursorPos, chosen.Text)
		}
		s.SQL.CompletionVisible = false
		return nil, true

	case action.KindCompletionDismiss:
		s.SQL.CompletionVisible = false
		return nil, true
	}
	return nil, false
}

func scheduleDebounce(s *appstate.AppState, now time.Time) []effect.Effect {
	s.SQL.DebounceScheduled = true
	s.SQL.DebounceGeneration++
	return []effect.Effect{{Kind: effect.KindScheduleCompletionDebounce, TriggerAt: now.Add(completionDebounce)}}
}

func runeLen(s string) int { return len([]rune(s)) }

func insertRune(buf string, pos int, r rune) (string, int) {
	return insertText(buf, pos, string(r))
}

func insertText(buf string, pos int, text string) (string, int) {
	runes := []rune(buf)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	merged := make([]rune, 0, len(runes)+len([]rune(text)))
	merged = append(merged, runes[:pos]...)
	merged = append(merged, []rune(text)...)
	merged = append(merged, runes[pos:]...)
	return string(merged), pos + runeLen(text)
}

func backspaceRune(buf string, pos int) (string, int) {
	runes := []rune(buf)
	if pos <= 0 || pos > len(runes) {
		return buf, pos
	}
	merged := append(append([]rune{}, runes[:pos-1]...), runes[pos:]...)
	return string(merged), pos - 1
}

// moveCursor treats buf as lines split on \n. Up/Down preserve the
// target column clamped to the destination line's length.
func moveCursor(buf string, pos int, dir action.CursorMove) int {
	runes := []rune(buf)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	switch dir {
	case action.CursorLeft:
		if pos > 0 {
			return pos - 1
		}
		return pos
	case action.CursorRight:
		if pos < len(runes) {
			return pos + 1
		}
		return pos
	case action.CursorHome:
		lineStart, _ := lineBounds(runes, pos)
		return lineStart
	case action.CursorEnd:
		_, lineEnd := lineBounds(runes, pos)
		return lineEnd
	case action.CursorUp:
		return moveVertical(runes, pos, -1)
	case action.CursorDown:
		return moveVertical(runes, pos, 1)
	}
	return pos
}

func lineBounds(runes []rune, pos int) (start, end int) {
	start = 0
	for i := pos - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			start = i + 1
			break
		}
	}
	end = len(runes)
	for i := pos; i < len(runes); i++ {
		if runes[i] == '\n' {
			end = i
			break
		}
	}
	return start, end
}

func moveVertical(runes []rune, pos, delta int) int {
	lineStart, _ := lineBounds(runes, pos)
	col := pos - lineStart

	lines := strings.Split(string(runes), "\n")
	lineIdx := 0
	count := 0
	for i, l := range lines {
		ll := runeLen(l)
		if count+ll >= pos || i == len(lines)-1 {
			lineIdx = i
			break
		}
		count += ll + 1
	}

	targetIdx := lineIdx + delta
	if targetIdx < 0 || targetIdx >= len(lines) {
		return pos
	}
	targetLen := runeLen(lines[targetIdx])
	targetCol := col
	if targetCol > targetLen {
		targetCol = targetLen
	}
	start := 0
	for i := 0; i < targetIdx; i++ {
		start += runeLen(lines[i]) + 1
	}
	return start + targetCol
}

// sanitizePaste strips newlines/carriage returns from every paste, both
// into the SQL buffer and into the connection setup DSN field. Newlines
// typed with Enter in the SQL modal are not affected.
func sanitizePaste(text string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(text)
}

// replaceCurrentToken replaces the partial identifier ending at pos
// (the run of ASCII letters, digits and underscores just before pos)
// with the chosen candidate text.
func replaceCurrentToken(buf string, pos int, replacement string) (string, int) {
	runes := []rune(buf)
	start := pos
	for start > 0 && isWordRuneLocal(runes[start-1]) {
		start--
	}
	merged := make([]rune, 0, len(runes)+len([]rune(replacement)))
	merged = append(merged, runes[:start]...)
	merged = append(merged, []rune(replacement)...)
	merged = append(merged, runes[pos:]...)
	return string(merged), start + runeLen(replacement)
}

func isWordRuneLocal(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
