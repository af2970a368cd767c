package effect

import (
	"testing"

	"github.com/sabiql/sabiql/internal/action"
)

func TestSequenceWrapsEffectsInOrder(t *testing.T) {
	seq := Sequence(Render(), Effect{Kind: KindClearCompletionEngineCache})
	if seq.Kind != KindSequence || len(seq.Effects) != 2 {
		t.Fatalf("unexpected sequence: %+v", seq)
	}
	if seq.Effects[0].Kind != KindRender || seq.Effects[1].Kind != KindClearCompletionEngineCache {
		t.Fatalf("effects out of order: %+v", seq.Effects)
	}
}

func TestDispatchActionsCarriesActions(t *testing.T) {
	eff := DispatchActions(action.Quit(), action.Render())
	if eff.Kind != KindDispatchActions || len(eff.Actions) != 2 {
		t.Fatalf("unexpected dispatch effect: %+v", eff)
	}
	if eff.Actions[0].Kind != action.KindQuit {
		t.Fatalf("expected first action to be Quit, got %+v", eff.Actions[0])
	}
}
