package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Limit parses a result cap; anything but a positive integer yields def.
func Limit(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// SortOrder maps ascending/descending (or asc/desc) to 1/-1; anything else is 0.
func SortOrder(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return 1
	case "descending", "desc":
		return -1
	}
	return 0
}
