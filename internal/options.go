package internal

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrValidation = errors.New("invalid option")

// ValidationError reports an out-of-range option value.
type ValidationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s (%s)", e.Option, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseNonNegative accepts zero and positive values unchanged.
func ParseNonNegative(option string, v int) (int, error) {
	if v < 0 {
		return 0, &ValidationError{
			Option: option,
			Value:  strconv.Itoa(v),
			Reason: "must be non-negative",
		}
	}
	return v, nil
}

// FormatOptions controls how a Status is rendered. Construct it with
// DefaultFormatOptions and override fields before rendering.
type FormatOptions struct {
	Icon              string `yaml:"icon"`
	IconColor         string `yaml:"icon_color"`
	ChangeIDColor     string `yaml:"change_id_color"`
	ChangeIDRestColor string `yaml:"change_id_rest_color"`
	BookmarkColor     string `yaml:"bookmark_color"`
	StatusColor       string `yaml:"status_color"`

	ConflictSymbol  string `yaml:"conflict_symbol"`
	DivergentSymbol string `yaml:"divergent_symbol"`
	HiddenSymbol    string `yaml:"hidden_symbol"`
	ImmutableSymbol string `yaml:"immutable_symbol"`
	UnsyncedSymbol  string `yaml:"unsynced_symbol"`

	ChangeIDLen int    `yaml:"change_id_len" validate:"min=0"`
	EmptyText   string `yaml:"empty_text"`
	NoDescText  string `yaml:"no_desc_text"`
	DescLen     int    `yaml:"desc_len" validate:"min=0"`

	ShowDistance bool `yaml:"show_distance"`

	NoColor bool   `yaml:"-"`
	Shell   string `yaml:"-"` // bash or zsh marks escapes as zero-width
}

func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Icon:              "@",
		IconColor:         "blue",
		ChangeIDColor:     "bold_magenta",
		ChangeIDRestColor: "dim_magenta",
		BookmarkColor:     "magenta",
		StatusColor:       "green",
		ConflictSymbol:    "×",
		DivergentSymbol:   "?",
		HiddenSymbol:      "⊘",
		ImmutableSymbol:   "◆",
		ChangeIDLen:       8,
		EmptyText:         "(empty)",
		NoDescText:        "(no description set)",
		DescLen:           29,
	}
}

// Validate checks the length options and the prompt shell.
func (o FormatOptions) Validate() error {
	if _, err := ParseNonNegative("change-id-len", o.ChangeIDLen); err != nil {
		return err
	}
	if _, err := ParseNonNegative("desc-len", o.DescLen); err != nil {
		return err
	}
	if o.Shell != "" && !slices.Contains(promptShells, o.Shell) {
		return &ValidationError{
			Option: "shell",
			Value:  o.Shell,
			Reason: "must be one of " + strings.Join(promptShells, ", "),
		}
	}
	return nil
}
