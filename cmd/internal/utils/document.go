package utils

import (
	"regexp"
	"strings"
)

const (
	CPFDigits  = 11
	CNPJDigits = 14
)

var (
	cpfPattern  = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

// Digit groups and the separator written before each group.
var (
	cpfGroups  = []maskGroup{{3, ""}, {3, "."}, {3, "."}, {2, "-"}}
	cnpjGroups = []maskGroup{{2, ""}, {3, "."}, {3, "."}, {4, "/"}, {2, "-"}}
)

type maskGroup struct {
	size int
	sep  string
}

// ValidateDocument reports whether raw is a punctuated CPF (000.000.000-00)
// or CNPJ (00.000.000/0000-00). Only the shape is checked, check digits
// are not computed.
func ValidateDocument(raw string) bool {
	return cpfPattern.MatchString(raw) || cnpjPattern.MatchString(raw)
}

// IsCNPJDocument reports whether raw has the punctuated CNPJ shape.
func IsCNPJDocument(raw string) bool {
	return cnpjPattern.MatchString(raw)
}

// NormalizeDocument masks any input as a CPF or CNPJ. It is meant to be
// called on every keystroke, so partial input gets partial punctuation.
// Calling it on its own output returns the same value.
func NormalizeDocument(raw string) string {
	digits := OnlyDigits(raw)

	groups := cpfGroups
	limit := CPFDigits
	if len(digits) > CPFDigits {
		groups = cnpjGroups
		limit = CNPJDigits
	}

	if len(digits) > limit {
		digits = digits[:limit]
	}
	return applyMask(digits, groups)
}

func applyMask(digits string, groups []maskGroup) string {
	var sb strings.Builder
	pos := 0
	for _, g := range groups {
		if pos >= len(digits) {
			break
		}

		end := min(pos+g.size, len(digits))
		sb.WriteString(g.sep)
		sb.WriteString(digits[pos:end])
		pos = end
	}
	return sb.String()
}

// OnlyDigits drops every byte of s that is not an ASCII digit.
func OnlyDigits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	return len(OnlyDigits(s)) == len(s)
}
