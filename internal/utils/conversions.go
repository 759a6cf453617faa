package utils

import "strings"

// LocalPart returns the text before the first "@" of an email address, or the whole
// address when it has no "@".
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
