package espn

import (
	"regexp"
	"sort"
	"strings"
)

// Scoreboard paths on the upstream site API, keyed by lowercase sport code.
var leaguePaths = map[string]string{
	"nba":   "basketball/nba",
	"nfl":   "football/nfl",
	"nhl":   "hockey/nhl",
	"wnba":  "basketball/wnba",
	"mlb":   "baseball/mlb",
	"ncaam": "basketball/mens-college-basketball",
}

var dateRe = regexp.MustCompile(`^\d{8}$`)

// Leagues returns every supported sport code, lowercase, sorted.
func Leagues() []string {
	leagues := make([]string, 0, len(leaguePaths))
	for league := range leaguePaths {
		leagues = append(leagues, league)
	}
	sort.Strings(leagues)
	return leagues
}

// LeaguePath resolves a sport code (any case) to its scoreboard path.
func LeaguePath(league string) (string, bool) {
	path, ok := leaguePaths[strings.ToLower(league)]
	return path, ok
}

// ValidDate reports whether date is a YYYYMMDD string. Empty is allowed and
// means the upstream's own "today" window.
func ValidDate(date string) bool {
	return date == "" || dateRe.MatchString(date)
}
