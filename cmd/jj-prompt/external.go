package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/4thel00z/jj-prompt/internal"
)

const externalPrefix = "jj-prompt-"

var builtins = []string{"status", "prompt", "init", "watch", "config", "help", "completion"}

func isBuiltin(name string) bool {
	return slices.Contains(builtins, name)
}

func findExternal(name string) (string, error) {
	binary := externalPrefix + name
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("unknown command %q: %s not found in PATH", name, binary)
	}
	return path, nil
}

func listExternalCommands() []string {
	var commands []string
	seen := make(map[string]bool)

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		commands = appendExternalsFromDir(dir, seen, commands)
	}
	return commands
}

func appendExternalsFromDir(dir string, seen map[string]bool, commands []string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return commands
	}

	for _, entry := range entries {
		name := extractExternalName(dir, entry)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		commands = append(commands, name)
	}
	return commands
}

func extractExternalName(dir string, entry os.DirEntry) string {
	if entry.IsDir() {
		return ""
	}

	name := entry.Name()
	if !strings.HasPrefix(name, externalPrefix) {
		return ""
	}

	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		return ""
	}

	if info.Mode()&0111 == 0 {
		return ""
	}

	return strings.TrimPrefix(name, externalPrefix)
}

func executeExternal(ctx context.Context, name string, args []string, version string) error {
	binaryPath, err := findExternal(name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = buildExternalEnv(version)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// buildExternalEnv exposes the binary, the config file the host would load
// and, inside a workspace, its root. Exported keys replace inherited ones.
func buildExternalEnv(version string) []string {
	bin, _ := os.Executable()
	exports := [][2]string{
		{"JJ_PROMPT_VERSION", version},
		{"JJ_PROMPT_BIN", bin},
	}
	if cfg := internal.DefaultConfigPath(); cfg != "" {
		exports = append(exports, [2]string{"JJ_PROMPT_CONFIG", cfg})
	}
	if cwd, err := os.Getwd(); err == nil {
		if root, err := internal.FindWorkspaceRoot(cwd); err == nil {
			exports = append(exports, [2]string{"JJ_PROMPT_ROOT", root})
		}
	}

	env := slices.DeleteFunc(os.Environ(), func(e string) bool {
		k, _, _ := strings.Cut(e, "=")
		return slices.ContainsFunc(exports, func(kv [2]string) bool { return kv[0] == k })
	})
	for _, kv := range exports {
		env = append(env, kv[0]+"="+kv[1])
	}
	return env
}
