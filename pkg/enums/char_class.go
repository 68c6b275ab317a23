package enums

import "fmt"

// CharClass buckets lettering characters by cut-path complexity.
type CharClass string

const (
	CharClassHiragana     CharClass = "hiragana"
	CharClassKatakana     CharClass = "katakana"
	CharClassKanjiSimple  CharClass = "kanji_simple"
	CharClassKanjiNormal  CharClass = "kanji_normal"
	CharClassKanjiComplex CharClass = "kanji_complex"
	CharClassUppercase    CharClass = "uppercase"
	CharClassLowercase    CharClass = "lowercase"
	CharClassSymbol       CharClass = "symbol"
)

var validCharClasses = []CharClass{
	CharClassHiragana,
	CharClassKatakana,
	CharClassKanjiSimple,
	CharClassKanjiNormal,
	CharClassKanjiComplex,
	CharClassUppercase,
	CharClassLowercase,
	CharClassSymbol,
}

// String implements fmt.Stringer.
func (c CharClass) String() string {
	return string(c)
}

// IsValid reports whether the char class is known.
func (c CharClass) IsValid() bool {
	for _, candidate := range validCharClasses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCharClass converts raw input into a CharClass.
func ParseCharClass(value string) (CharClass, error) {
	for _, candidate := range validCharClasses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid char class %q", value)
}
