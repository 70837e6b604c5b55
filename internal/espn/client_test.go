package espn

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bir-schedule/internal/config"
)

func TestLeagues(t *testing.T) {
	leagues := Leagues()
	assert.Equal(t, []string{"mlb", "nba", "ncaam", "nfl", "nhl", "wnba"}, leagues)
}

func TestLeaguePathCaseInsensitive(t *testing.T) {
	path, ok := LeaguePath("NBA")
	assert.True(t, ok)
	assert.Equal(t, "basketball/nba", path)

	_, ok = LeaguePath("cricket")
	assert.False(t, ok)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("20260105"))
	assert.True(t, ValidDate("")) // empty means the upstream's "today"
	assert.False(t, ValidDate("2026-01-05"))
	assert.False(t, ValidDate("202601"))
	assert.False(t, ValidDate("yesterday"))
}

func TestFetchScoreboardRawRejectsBadInput(t *testing.T) {
	client := NewClient(&config.Config{EspnBaseURL: "http://127.0.0.1:0"}, zerolog.Nop())
	ctx := context.Background()

	_, err := client.FetchScoreboardRaw(ctx, "cricket", "20260105")
	assert.ErrorIs(t, err, ErrUnknownLeague)

	_, err = client.FetchScoreboardRaw(ctx, "nba", "01/05/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
