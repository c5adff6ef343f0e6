package ui

import "strings"

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// shortID keeps the random tail of a ULID, which is what tells objects
// created in the same millisecond apart.
func shortID(id string) string {
	id = strings.TrimPrefix(id, "IPY_MODEL_")
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
