package domain

import "strings"

// GameQuery represents a parsed games search request.
type GameQuery struct {
	Keyword string // free-text keyword, already trimmed
	Limit   int    // max records to return (0 = upstream default)
	Page    int    // 1-based page number
}

// ParseGameQuery normalizes raw request input into a GameQuery.
func ParseGameQuery(keyword string, limit, page int) GameQuery {
	if limit < 0 {
		limit = 0
	}
	if page < 1 {
		page = 1
	}
	return GameQuery{
		Keyword: strings.TrimSpace(keyword),
		Limit:   limit,
		Page:    page,
	}
}

// LooksNumeric reports whether the raw keyword is strictly digits.
// It gates the id-based fallback strategy: "123" qualifies, "12a" and
// "" do not.
func (q GameQuery) LooksNumeric() bool {
	return IsNumericID(q.Keyword)
}

// IsNumericID reports whether s is a non-empty, digit-only string.
func IsNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
