package domain

import (
	"regexp"
	"strings"
)

// SupportedCurrencies is the default filter applied to a feed.
var SupportedCurrencies = map[string]bool{
	"USD": true,
	"GBP": true,
	"EUR": true,
}

var codeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func ValidateCode(code string) bool {
	return codeRe.MatchString(code)
}

// IsSupported reports whether code, compared case-insensitively, is in SupportedCurrencies.
func IsSupported(code string) bool {
	return SupportedCurrencies[strings.ToUpper(strings.TrimSpace(code))]
}

func SameCode(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
