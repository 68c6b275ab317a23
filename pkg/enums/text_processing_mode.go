package enums

import "fmt"

// TextProcessingMode describes how lettering on a sign face is produced.
type TextProcessingMode string

const (
	TextProcessingModeCut      TextProcessingMode = "cut"
	TextProcessingModePrintCut TextProcessingMode = "print_cut"
)

var validTextProcessingModes = []TextProcessingMode{
	TextProcessingModeCut,
	TextProcessingModePrintCut,
}

// String implements fmt.Stringer.
func (m TextProcessingMode) String() string {
	return string(m)
}

// IsValid reports whether the mode is known.
func (m TextProcessingMode) IsValid() bool {
	for _, candidate := range validTextProcessingModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTextProcessingMode converts raw input into a TextProcessingMode.
func ParseTextProcessingMode(value string) (TextProcessingMode, error) {
	for _, candidate := range validTextProcessingModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid text processing mode %q", value)
}
