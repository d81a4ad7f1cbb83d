package filter

import (
	"iter"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// yearsPattern matches "3 years", "3+ years", "3-5 years", "1 year". Digits
// and spaces are matched in any script, so "٣ years" and "3 years" count.
var yearsPattern = regexp.MustCompile(`(?i)(\p{Nd}+)\+?[\s\p{Zs}]*(?:-[\s\p{Zs}]*\p{Nd}+[\s\p{Zs}]*)?years?`)

// RequiredYears yields the leading number of every years-of-experience phrase
// in text, in order. Numbers too large for an int are yielded as math.MaxInt.
func RequiredYears(text string) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(asciiDigits(m[1]))
			if err != nil {
				n = math.MaxInt
			}
			if !yield(n) {
				return
			}
		}
	}
}

// asciiDigits rewrites decimal digits from any script as 0-9.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.IsDigit(r) {
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue returns the value of a decimal digit. Each Unicode digit set is
// ten consecutive code points starting at zero.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}
