// Package textinfo computes the document statistics shown in the status line.
package textinfo

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// markup lists the characters dropped before counting words.
const markup = "#*`~[]()"

// CountWords counts whitespace-separated words after removing markdown
// punctuation. Works for any script that separates words with spaces.
func CountWords(text string) int {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(markup, r) {
			return -1
		}
		return r
	}, text)
	return len(strings.Fields(clean))
}

// CountChars returns the number of characters (runes) in text.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Arabic covers the Arabic blocks and presentation forms.
var Arabic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1}, // Arabic Extended-A
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Presentation Forms-A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Presentation Forms-B
	},
}

// ContainsArabic reports whether text has at least one Arabic character.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if unicode.Is(Arabic, r) {
			return true
		}
	}
	return false
}

// Plural formats n with a singular or plural noun, as in "1 word" or
// "3 words".
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
