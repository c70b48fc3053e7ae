package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanText collapses every whitespace run, newlines and no-break spaces
// included, to a single space and trims the result. Decomposed accents are
// composed (NFC); compatibility characters such as "²" are kept as written.
func CleanText(input string) string {
	if input == "" {
		return ""
	}
	s := norm.NFC.String(input)
	return strings.Join(strings.Fields(s), " ")
}

// CleanCell is CleanText for an optional cell; an absent cell is "".
func CleanCell(cell *string) string {
	if cell == nil {
		return ""
	}
	return CleanText(*cell)
}

// CleanRow normalizes every cell of a row, keeping positions.
func CleanRow(row []*string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = CleanCell(c)
	}
	return out
}

func ContainsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Initial returns the upper-cased first rune of a word.
func Initial(word string) string {
	for _, r := range word {
		return string(unicode.ToUpper(r))
	}
	return ""
}
