package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"bir-schedule/internal/domain"
)

// Key builds the composite identity for a game. Sport case is normalized,
// the provider-assigned id is used as-is. Callers must skip games with an
// empty id; the key alone does not make them identifiable.
func Key(sport, gameID string) string {
	return strings.ToUpper(sport) + ":" + gameID
}

// Changed reports whether any tracked field differs between two versions of
// the same game: status, status detail, either score, start time, or venue
// display name. Team names and abbreviations are deliberately not tracked.
//
// DateUTC is compared as a raw string, not as a parsed instant. The upstream
// emits a single canonical timestamp format, so any textual difference is a
// real change.
func Changed(existing, incoming domain.Game) bool {
	if existing.Status != incoming.Status {
		return true
	}
	if existing.StatusDetail != incoming.StatusDetail {
		return true
	}
	if !scoreEqual(existing.HomeTeam.Score, incoming.HomeTeam.Score) {
		return true
	}
	if !scoreEqual(existing.AwayTeam.Score, incoming.AwayTeam.Score) {
		return true
	}
	if existing.DateUTC != incoming.DateUTC {
		return true
	}
	return existing.Venue.DisplayName() != incoming.Venue.DisplayName()
}

// Diffs renders one human-readable line per changed field group, for the
// operator preview shown before a merge is applied.
func Diffs(existing, incoming domain.Game) []string {
	var diffs []string
	if existing.Status != incoming.Status {
		diffs = append(diffs, fmt.Sprintf("Status: %s → %s", orDash(existing.Status), orDash(incoming.Status)))
	}
	if existing.StatusDetail != incoming.StatusDetail {
		diffs = append(diffs, fmt.Sprintf("Status detail: %s → %s", orDash(existing.StatusDetail), orDash(incoming.StatusDetail)))
	}
	if !scoreEqual(existing.HomeTeam.Score, incoming.HomeTeam.Score) ||
		!scoreEqual(existing.AwayTeam.Score, incoming.AwayTeam.Score) {
		diffs = append(diffs, fmt.Sprintf("Score: %s-%s → %s-%s",
			scoreString(existing.AwayTeam.Score), scoreString(existing.HomeTeam.Score),
			scoreString(incoming.AwayTeam.Score), scoreString(incoming.HomeTeam.Score)))
	}
	if existing.DateUTC != incoming.DateUTC {
		// Full timestamps are too verbose to show inline.
		diffs = append(diffs, "Date/time: changed")
	}
	eVenue := existing.Venue.DisplayName()
	iVenue := incoming.Venue.DisplayName()
	if eVenue != iVenue {
		diffs = append(diffs, fmt.Sprintf("Venue: %s → %s", orDash(eVenue), orDash(iVenue)))
	}
	return diffs
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func scoreString(s *int) string {
	if s == nil {
		return "—"
	}
	return strconv.Itoa(*s)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
