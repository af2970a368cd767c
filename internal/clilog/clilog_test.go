package clilog_test

import (
	"os"
	"path"
	"testing"

	"github.com/sabiql/sabiql/internal/clilog"
)

func TestInit(t *testing.T) {
	clilog.Destroy()

	tests := []struct {
		name    string
		path    string
		lvl     string
		wantErr bool
	}{
		{"bad level", "dev.log", "fake level", true},
		{"empty path", "", "debug", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clilog.Destroy()
			p := tt.path
			if p != "" {
				p = path.Join(t.TempDir(), p)
			}
			if err := clilog.Init(p, tt.lvl); (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("valid path", func(t *testing.T) {
		clilog.Destroy()
		p := path.Join(t.TempDir(), "dev.log")
		if err := clilog.Init(p, "info"); err != nil {
			t.Fatal("failed to initialize clilog on valid path:", err)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatal("expected log file to exist:", err)
		}
	})

	t.Run("reinitialize is a no-op", func(t *testing.T) {
		clilog.Destroy()
		first := path.Join(t.TempDir(), "first.log")
		second := path.Join(t.TempDir(), "second.log")
		if err := clilog.Init(first, "info"); err != nil {
			t.Fatal(err)
		}
		if err := clilog.Init(second, "info"); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(second); err == nil {
			t.Fatal("second Init should not have created a new file")
		}
	})
}

func TestValidLevel(t *testing.T) {
	clilog.Destroy()

	for _, lvl := range []string{"trace", "debug", "INFO", "Warn", "error", "fatal", "panic", "disabled"} {
		if err := clilog.ValidLevel(lvl); err != nil {
			t.Errorf("ValidLevel(%q) = %v, want nil", lvl, err)
		}
	}
	if err := clilog.ValidLevel("critical"); err == nil {
		t.Error("ValidLevel(\"critical\") = nil, want error: not a real zerolog level")
	}
}

func TestActiveReflectsConfiguredLevel(t *testing.T) {
	clilog.Destroy()
	p := path.Join(t.TempDir(), "active.log")
	if err := clilog.Init(p, "warn"); err != nil {
		t.Fatal(err)
	}
	if !clilog.Active(clilog.WARN) {
		t.Error("expected WARN active at warn level")
	}
	if clilog.Active(clilog.DEBUG) {
		t.Error("expected DEBUG inactive at warn level")
	}
	clilog.Destroy()
}
