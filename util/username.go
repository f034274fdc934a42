package util

import "strings"

// UsernameFallback derives a username when the auth provider supplies none:
// the email local-part, or "Anonymous" when there is no email either
func UsernameFallback(claimed, email string) string {
	if claimed != "" {
		return claimed
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "Anonymous"
}
