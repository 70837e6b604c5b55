package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bir-schedule/internal/domain"
	"bir-schedule/internal/schedule"
	"bir-schedule/internal/store"
)

func newTestService() *ScheduleService {
	rec := schedule.NewReconciler(store.NewMemoryStore(), zerolog.Nop())
	return NewScheduleService(nil, rec, zerolog.Nop())
}

func TestExportCSV(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	home := 101
	away := 98
	svc.AddGame(ctx, domain.Game{
		Sport:        "NBA",
		GameID:       "1",
		DateUTC:      "2026-01-05T19:00Z",
		Status:       "Final",
		StatusDetail: "Final",
		HomeTeam:     domain.Team{Name: "Lakers", Score: &home},
		AwayTeam:     domain.Team{Name: "Celtics", Score: &away},
		Venue:        &domain.Venue{Name: "Crypto.com Arena"},
	})

	var sb strings.Builder
	require.NoError(t, svc.ExportCSV(ctx, &sb, ""))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "sport,gameId,dateUtc,status,statusDetail,awayTeam,awayScore,homeTeam,homeScore,venue", lines[0])
	assert.Equal(t, "NBA,1,2026-01-05T19:00Z,Final,Final,Celtics,98,Lakers,101,Crypto.com Arena", lines[1])
}

func TestExportCSVScoreless(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddGame(ctx, domain.Game{
		Sport:    "NHL",
		GameID:   "7",
		DateUTC:  "2026-01-09T00:00Z",
		Status:   "Scheduled",
		HomeTeam: domain.Team{Name: "Bruins"},
		AwayTeam: domain.Team{Name: "Rangers"},
	})

	var sb strings.Builder
	require.NoError(t, svc.ExportCSV(ctx, &sb, "nhl"))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NHL,7,2026-01-09T00:00Z,Scheduled,,Rangers,,Bruins,,", lines[1])
}

func TestExportCSVFiltersBySport(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddGame(ctx, domain.Game{Sport: "NBA", GameID: "1", HomeTeam: domain.Team{Name: "A"}, AwayTeam: domain.Team{Name: "B"}})
	svc.AddGame(ctx, domain.Game{Sport: "NFL", GameID: "2", HomeTeam: domain.Team{Name: "C"}, AwayTeam: domain.Team{Name: "D"}})

	var sb strings.Builder
	require.NoError(t, svc.ExportCSV(ctx, &sb, "nba"))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "NBA,"))
}
