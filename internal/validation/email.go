package validation

import "strings"

// IsPlausibleEmail is a syntactic sanity check, not RFC 5322 and not
// DNS-verified. The address must contain exactly one "@" with a
// non-empty local part, and a domain that contains a "." which is not
// leading, trailing or doubled.
func IsPlausibleEmail(email string) bool {
	if email == "" {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	domain := parts[1]
	switch {
	case !strings.Contains(domain, "."):
		return false
	case strings.HasPrefix(domain, "."), strings.HasSuffix(domain, "."):
		return false
	case strings.Contains(domain, ".."):
		return false
	}

	return true
}
