// Package slug derives URL slugs from product titles.
package slug

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	suffixLength   = 5
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate lower-cases title, strips accents and joins alphanumeric runs with '-'.
// With unique set, a '-' and 5 random [a-z0-9] characters are appended.
func Generate(title string, unique bool) string {
	base := normalize(title)
	if !unique {
		return base
	}
	return base + "-" + randomSuffix()
}

func normalize(title string) string {
	decomposed := norm.NFD.String(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Trim(nonAlphanumeric.ReplaceAllString(b.String(), "-"), "-")
}

func randomSuffix() string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	out := make([]byte, suffixLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = suffixAlphabet[i]
			continue
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out)
}
