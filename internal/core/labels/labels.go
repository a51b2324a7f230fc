// Package labels provides a deterministic label canonicalizer for
// distribution grouping
// Marketplace feeds ship category and search-term labels in mixed case,
// fullwidth forms, and with stray zero-width characters; grouping must
// treat those as one label
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition so marks are separable
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition
// 7 Collapse whitespace to single spaces and trim
package labels

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline; marks must be
		// decomposed before the Mn strip or precomposed accents survive
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,                           // recompose what survived
		)
	},
}

// Canon returns the canonical grouping form of a label
// Canon is idempotent: Canon(Canon(s)) == Canon(s)
func Canon(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6 collapse whitespace and trim
	return collapseSpaces(ns)
}

// CanonOr returns Canon(s), or def when s canonicalizes to empty
func CanonOr(s, def string) string {
	if c := Canon(s); c != "" {
		return c
	}
	return def
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS {
			b.WriteByte(' ')
			inWS = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
