package booksclient

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// entityKey converts the caller's plural entity label ("customers",
// "timeActivities") into the singular PascalCase key used inside response
// envelopes ("Customer", "TimeActivity").
func entityKey(plural string) string {
	s := inflection.Singular(strings.TrimSpace(plural))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
