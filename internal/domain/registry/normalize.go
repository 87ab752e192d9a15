package registry

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName capitalizes each whitespace-separated word: the first
// grapheme is title-cased, the rest lower-cased, and words are rejoined with
// single spaces. "grace hopper" becomes "Grace Hopper" and "ßtraße" becomes
// "Sstraße".
func NormalizeName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = capitalize(w, title, lower)
	}
	return strings.Join(words, " ")
}

// capitalize title-cases the first grapheme of word. Some title forms are
// several graphemes ("ß" is "Ss"); only the first of those keeps its case so
// a second pass yields the same word.
func capitalize(word string, title, lower cases.Caser) string {
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(word, -1)
	head, tail, _, _ := uniseg.FirstGraphemeClusterInString(title.String(first), -1)
	return head + lower.String(tail+rest)
}
