package gfa

import (
	"slices"
	"strings"
)

// Compare orders record names naturally. Two all-digit names compare as
// unsigned integers of any length; other names compare run by run, digit
// runs numerically and everything else by code point, so "s2" sorts before
// "s10" and "a10" before "b". Names that differ only in leading zeros fall
// back to plain string order, keeping the order total.
//
// Compare has the signature expected by [slices.SortFunc].
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}
		// Byte order on UTF-8 is code point order.
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case i == len(a) && j == len(b):
		return strings.Compare(a, b)
	case i == len(a):
		return -1
	default:
		return 1
	}
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// SortNames sorts names in place in natural order.
func SortNames(names []string) { slices.SortFunc(names, Compare) }

func compareDigits(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
