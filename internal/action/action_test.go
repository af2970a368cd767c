package action

import "testing"

func TestNoneHasZeroKind(t *testing.T) {
	a := None()
	if a.Kind != KindNone {
		t.Fatalf("expected KindNone, got %v", a.Kind)
	}
}

func TestResizeCarriesDimensions(t *testing.T) {
	a := Resize(120, 40)
	if a.Kind != KindResize || a.Width != 120 || a.Height != 40 {
		t.Fatalf("unexpected resize action: %+v", a)
	}
}

func TestQuitIsDistinctKind(t *testing.T) {
	if Quit().Kind == Render().Kind {
		t.Fatal("Quit and Render must not share a Kind")
	}
}
