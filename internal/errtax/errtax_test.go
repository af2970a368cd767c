package errtax

import "testing"

func TestClassifyHostUnreachable(t *testing.T) {
	cases := []string{
		"could not translate host name \"bogus\" to address",
		"dial tcp: lookup db.local: no such host",
		"name or service not known",
	}
	for _, c := range cases {
		if got := Classify(c); got != KindHostUnreachable {
			t.Fatalf("Classify(%q) = %v, want KindHostUnreachable", c, got)
		}
	}
}

func TestClassifyAuthFailed(t *testing.T) {
	if got := Classify("FATAL: password authentication failed for user \"bob\""); got != KindAuthFailed {
		t.Fatalf("got %v, want KindAuthFailed", got)
	}
}

func TestClassifyDatabaseNotFound(t *testing.T) {
	if got := Classify("FATAL: database \"missing\" does not exist"); got != KindDatabaseNotFound {
		t.Fatalf("got %v, want KindDatabaseNotFound", got)
	}
}

func TestClassifyTimeout(t *testing.T) {
	if got := Classify("context deadline exceeded"); got != KindTimeout {
		t.Fatalf("got %v, want KindTimeout", got)
	}
}

func TestClassifyUnknownFallsThrough(t *testing.T) {
	if got := Classify("some completely unrelated error"); got != KindUnknown {
		t.Fatalf("got %v, want KindUnknown", got)
	}
}

func TestHintNonEmptyForKnownKinds(t *testing.T) {
	if KindHostUnreachable.Hint() == "" {
		t.Fatal("expected a non-empty hint for HostUnreachable")
	}
	if KindUnknown.Hint() != "" {
		t.Fatal("expected empty hint for Unknown")
	}
}
