package main

import (
	"strings"
	"testing"

	"github.com/4thel00z/jj-prompt/internal"
)

func TestInitCmd(t *testing.T) {
	for _, shell := range internal.SupportedShells() {
		out, err := runCmd(t, nil, "init", shell, "--bin", "/opt/jj-prompt")
		if err != nil {
			t.Fatalf("init %s: %v", shell, err)
		}
		if !internal.IsShellSnippet(out) {
			t.Errorf("init %s: missing marker", shell)
		}
		if !strings.Contains(out, "/opt/jj-prompt prompt") {
			t.Errorf("init %s: binary not used:\n%s", shell, out)
		}
	}
}

func TestInitCmdUnsupportedShell(t *testing.T) {
	if _, err := runCmd(t, nil, "init", "csh"); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestInitCmdRequiresShell(t *testing.T) {
	if _, err := runCmd(t, nil, "init"); err == nil {
		t.Fatal("expected error without shell argument")
	}
}
