package schedule

import "strings"

// remoteTokens mark a room as an online session.
var remoteTokens = []string{"online", "дист", "zoom", "teams"}

// IsRemoteLesson reports whether room names a remote venue.
func IsRemoteLesson(room string) bool {
	if room == "" {
		return false
	}
	lower := strings.ToLower(room)
	for _, tok := range remoteTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
