// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug normalises human-typed identifiers.
//
// # Usage
//
// Influencer referral codes are shared verbally with parents, so they are stored
// as accent-free upper-case ASCII ("Chloé Fun 10" → "CHLOEFUN10"). Category keys
// use the lower-case hyphenated form ("Bedtime Stories" → "bedtime-stories").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts an arbitrary Unicode string into a lower-case hyphenated ASCII slug.
func From(s string) string {
	var builder strings.Builder
	pendingHyphen := false

	for _, r := range fold(s) {
		if isASCIIAlnum(r) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(unicode.ToLower(r))
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}

// Code converts s into a referral code: upper-case ASCII letters and digits only.
func Code(s string) string {
	var builder strings.Builder
	for _, r := range fold(s) {
		if isASCIIAlnum(r) {
			builder.WriteRune(unicode.ToUpper(r))
		}
	}
	return builder.String()
}

// fold decomposes s (NFD) and strips combining marks, so "é" becomes "e".
func fold(s string) string {
	chain := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(chain, s)
	return result
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
