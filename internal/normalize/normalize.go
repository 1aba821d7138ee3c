// Package normalize cleans the raw extracted fields into the shapes the case
// service expects.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// spoken-word forms of "@" and ".", longest first so "at the rate" wins
// over plain "at".
var emailReplacer = strings.NewReplacer(
	" at the rate of ", "@",
	" at the rate ", "@",
	" attherate ", "@",
	" at ", "@",
	" dot ", ".",
)

// Email converts a spoken email ("ravi at gmail dot com") into an address.
// Best effort: input that already looks like an address passes through, and
// anything unresolvable is returned cleaned rather than rejected.
func Email(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "@") {
		s = emailReplacer.Replace(" " + s + " ")
	}
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// Mobile strips every non-digit and keeps the last 10 digits, dropping
// country-code prefixes like +91.
func Mobile(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// Duration renders a seconds value (number or numeric string) as a human
// string like "2 min 5 sec", omitting zero components. Anything that is not
// a number, and an all-zero duration, renders as "0 sec".
func Duration(v any) string {
	secs, ok := toSeconds(v)
	if !ok {
		return "0 sec"
	}

	totalMs := int64(secs * 1000)
	if totalMs <= 0 {
		return "0 sec"
	}

	mins := totalMs / 60000
	seconds := (totalMs % 60000) / 1000
	ms := totalMs % 1000

	var parts []string
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%d min", mins))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d sec", seconds))
	}
	if ms > 0 {
		parts = append(parts, fmt.Sprintf("%d ms", ms))
	}
	return strings.Join(parts, " ")
}

func toSeconds(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
