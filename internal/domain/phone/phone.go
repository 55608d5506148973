// Package phone normalizes Kenyan mobile numbers to international form.
package phone

import "strings"

// CountryCode is the Kenyan dialing prefix.
const CountryCode = "+254"

// Normalize converts a local number to +254 form.
// "0712345678" and "712345678" become "+254712345678"; numbers already
// starting with "+" and any other shape are returned unchanged.
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	switch {
	case p == "", strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "0"):
		return CountryCode + p[1:]
	case strings.HasPrefix(p, "7"), strings.HasPrefix(p, "1"):
		return CountryCode + p
	default:
		return p
	}
}
