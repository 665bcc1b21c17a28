package gotable

import (
	"cmp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// A Caser is stateful, so each goroutine borrows its own.
var _folders = sync.Pool{
	New: func() any {
		folder := cases.Fold()
		return &folder
	},
}

// foldString returns the case-folded form of s.
func foldString(s string) string {
	folder := _folders.Get().(*cases.Caser)
	defer _folders.Put(folder)

	return folder.String(s)
}

// Key is a natural-order sort key. It alternates text and digit runs and
// always starts with a (possibly empty) text run, so even indexes hold
// case-folded text and odd indexes hold digit runs without leading zeros.
//
//	"Item007b" -> ["item", "7", "b"]
type Key []string

// NaturalKey splits s on maximal runs of ASCII digits.
func NaturalKey(s string) Key {
	key := make(Key, 0, 3)

	var run strings.Builder
	inDigits := false
	flush := func() {
		token := run.String()
		run.Reset()
		if inDigits {
			token = strings.TrimLeft(token, "0")
			if token == "" {
				token = "0"
			}
		} else {
			token = foldString(token)
		}
		key = append(key, token)
	}

	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		if isDigit != inDigits {
			flush()
			inDigits = isDigit
		}
		run.WriteRune(r)
	}
	flush()
	if inDigits {
		key = append(key, "")
	}

	return key
}

// Compare compares two keys token by token. Digit runs compare by numeric
// value, text runs as case-folded strings, and a key that is a prefix of the
// other sorts first.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		var c int
		if i%2 == 0 {
			c = strings.Compare(k[i], other[i])
		} else {
			c = compareDigitRuns(k[i], other[i])
		}
		if c != 0 {
			return c
		}
	}

	return cmp.Compare(len(k), len(other))
}

// compareDigitRuns compares digit runs of arbitrary length without parsing
// them, so long runs never overflow.
func compareDigitRuns(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

// CompareNatural orders a and b so that "item9" sorts before "item10".
func CompareNatural(a, b string) int {
	return NaturalKey(a).Compare(NaturalKey(b))
}
