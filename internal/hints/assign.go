// Package hints generates typeable hint labels for clickable elements and
// drives the selection state machine that consumes keystrokes against them.
package hints

import (
	"strings"

	"github.com/keyclick/keyclick/internal/model"
)

// DefaultAlphabet orders home-row characters first so the most common
// labels are the fastest to type.
const DefaultAlphabet = "asdfghjklqwertyuiopzxcvbnm"

// Assign returns n unique uppercase labels drawn from alphabet, in
// assignment order: all single-character labels first, then two-character
// combinations enumerated with the first character as the outer loop, then
// three-character ones. Element order is preserved as assignment order.
//
// Labels are not uniform length: once n exceeds the alphabet size, the
// single-character labels coexist with longer ones that extend them. The
// matcher resolves that overlap in favour of the exact shorter label.
func Assign(n int, alphabet string) []string {
	if n <= 0 {
		return []string{}
	}
	chars := alphabetRunes(alphabet)
	labels := make([]string, 0, n)

	for _, a := range chars {
		if len(labels) == n {
			return labels
		}
		labels = append(labels, string(a))
	}
	for _, a := range chars {
		for _, b := range chars {
			if len(labels) == n {
				return labels
			}
			labels = append(labels, string(a)+string(b))
		}
	}
	for _, a := range chars {
		for _, b := range chars {
			for _, c := range chars {
				if len(labels) == n {
					return labels
				}
				labels = append(labels, string(a)+string(b)+string(c))
			}
		}
	}
	return labels
}

// Label pairs each element with its assigned hint label. IDs are
// positional and stay stable for the activation's lifetime.
func Label(elements []model.ScreenElement, alphabet string) []model.HintedElement {
	labels := Assign(len(elements), alphabet)
	hinted := make([]model.HintedElement, len(elements))
	for i, el := range elements {
		hinted[i] = model.HintedElement{ID: i, Hint: labels[i], Element: el}
	}
	return hinted
}

// alphabetRunes uppercases and de-duplicates the alphabet, falling back to
// DefaultAlphabet when empty. Duplicate characters would break label
// uniqueness, so they are dropped on first occurrence wins.
func alphabetRunes(alphabet string) []rune {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	seen := make(map[rune]bool, len(alphabet))
	var chars []rune
	for _, r := range strings.ToUpper(alphabet) {
		if !seen[r] {
			seen[r] = true
			chars = append(chars, r)
		}
	}
	return chars
}
