package internal

import (
	"fmt"
	"sort"
	"strings"
)

const ShellMarker = "# jj-prompt: shell integration"

// Shells whose prompt line editors need escape sequences marked as
// zero-width. Other shells take the raw line.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
)

var promptShells = []string{ShellBash, ShellZsh}

// zeroWidth marks an escape sequence so the shell does not count it as
// printed columns.
func zeroWidth(shell, seq string) string {
	switch shell {
	case ShellBash:
		return "\x01" + seq + "\x02"
	case ShellZsh:
		return "%{" + seq + "%}"
	}
	return seq
}

// promptText protects literal text from the shell's prompt expansion.
func promptText(shell, s string) string {
	if shell == ShellZsh {
		return strings.ReplaceAll(s, "%", "%%")
	}
	return s
}

var shellTemplates = map[string]string{
	"bash": `%[1]s
__jj_prompt() {
  local line
  line="$(%[2]s prompt --shell bash 2>/dev/null)" && [ -n "$line" ] && printf '%%s ' "$line"
}
case "$PS1" in
  *__jj_prompt*) ;;
  *) PS1='$(__jj_prompt)'"$PS1" ;;
esac
`,
	"zsh": `%[1]s
setopt prompt_subst
__jj_prompt() {
  local line
  line="$(%[2]s prompt --shell zsh 2>/dev/null)" && [[ -n "$line" ]] && print -rn -- "$line "
}
[[ "$PROMPT" == *__jj_prompt* ]] || PROMPT='$(__jj_prompt)'"$PROMPT"
`,
	"fish": `%[1]s
if not functions -q __jj_prompt_original
    functions -c fish_prompt __jj_prompt_original
end
function fish_prompt
    set -l line (%[2]s prompt 2>/dev/null)
    test -n "$line"; and printf '%%s ' $line
    __jj_prompt_original
end
`,
	"nu": `%[1]s
$env.PROMPT_COMMAND_RIGHT = {||
    do { ^%[2]s prompt } | complete | get stdout | str trim
}
`,
}

func SupportedShells() []string {
	shells := make([]string, 0, len(shellTemplates))
	for name := range shellTemplates {
		shells = append(shells, name)
	}
	sort.Strings(shells)
	return shells
}

// ShellInit returns the snippet that wires bin into the given shell's prompt.
func ShellInit(shell, bin string) (string, error) {
	tmpl, ok := shellTemplates[strings.ToLower(shell)]
	if !ok {
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(SupportedShells(), ", "))
	}
	if bin == "" {
		bin = "jj-prompt"
	}
	return fmt.Sprintf(tmpl, ShellMarker, bin), nil
}

// IsShellSnippet reports whether content was produced by ShellInit.
func IsShellSnippet(content string) bool {
	return strings.Contains(content, ShellMarker)
}
