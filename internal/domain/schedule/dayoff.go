package schedule

import (
	"regexp"
	"strings"
)

// dayOffPattern matches the shift display names schedulers use for a day off:
// "day off" in any casing with optional hyphen, the token "do", or a lone "-".
// The match is on display names, which is fragile; an explicit shift-type flag
// would be the robust replacement.
var dayOffPattern = regexp.MustCompile(`(?i)^(day\s*-?\s*off|do|-)$`)

func IsDayOffName(name string) bool {
	return dayOffPattern.MatchString(strings.TrimSpace(name))
}
