package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bir-schedule/internal/constants"
	"bir-schedule/internal/domain"
	"bir-schedule/internal/espn"
	"bir-schedule/internal/schedule"
)

// ScheduleService orchestrates scoreboard fetches and reconciliation against
// the master schedule. All network I/O happens here, before batches are
// handed to the reconciler.
type ScheduleService struct {
	espn   *espn.Client
	rec    *schedule.Reconciler
	logger zerolog.Logger
}

func NewScheduleService(client *espn.Client, rec *schedule.Reconciler, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{espn: client, rec: rec, logger: logger}
}

// SyncLeague fetches one league's scoreboard for a date and merges it into
// the master schedule.
func (s *ScheduleService) SyncLeague(ctx context.Context, league, date string) (schedule.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	games, err := s.fetchGames(ctx, league, date)
	if err != nil {
		return schedule.Summary{}, err
	}

	sum := s.rec.Merge(ctx, games, strings.ToUpper(league), time.Now().UTC().Format(time.RFC3339))
	s.logger.Info().
		Str("league", league).
		Str("date", date).
		Int("fetched", len(games)).
		Int("added", sum.Added).
		Int("updated", sum.Updated).
		Msg("league synced")
	return sum, nil
}

// PreviewLeague fetches one league's scoreboard and reports what a merge
// would do, without persisting anything.
func (s *ScheduleService) PreviewLeague(ctx context.Context, league, date string) (schedule.DetailedSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	games, err := s.fetchGames(ctx, league, date)
	if err != nil {
		return schedule.DetailedSummary{}, err
	}
	return s.rec.CompareDetailed(ctx, games, strings.ToUpper(league)), nil
}

// LeagueSync is the per-league outcome of a SyncAll fan-out.
type LeagueSync struct {
	League  string           `json:"league"`
	Summary schedule.Summary `json:"summary"`
	Error   string           `json:"error,omitempty"`
}

// SyncAll syncs every supported league for one date. Leagues are fetched
// concurrently; one league failing does not abort the others.
func (s *ScheduleService) SyncAll(ctx context.Context, date string) []LeagueSync {
	leagues := espn.Leagues()
	results := make([]LeagueSync, len(leagues))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SyncConcurrency)
	for i, league := range leagues {
		i, league := i, league
		g.Go(func() error {
			sum, err := s.SyncLeague(gCtx, league, date)
			results[i] = LeagueSync{League: league, Summary: sum}
			if err != nil {
				results[i].Error = err.Error()
				s.logger.Warn().Err(err).Str("league", league).Msg("league sync failed")
			}
			return nil
		})
	}
	g.Wait()

	return results
}

// AddGame merges a single manually entered game.
func (s *ScheduleService) AddGame(ctx context.Context, game domain.Game) schedule.Summary {
	return s.rec.AddGame(ctx, game)
}

// Games returns master games, optionally filtered by sport.
func (s *ScheduleService) Games(ctx context.Context, sport string) []domain.Game {
	return s.rec.GamesForSport(ctx, sport)
}

// LastSynced returns the last merge time for a sport, "" when never synced.
func (s *ScheduleService) LastSynced(ctx context.Context, sport string) string {
	return s.rec.LastSyncedFor(ctx, sport)
}

func (s *ScheduleService) fetchGames(ctx context.Context, league, date string) ([]domain.Game, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	board, err := s.espn.FetchScoreboard(apiCtx, league, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s scoreboard: %w", league, err)
	}
	return espn.NormalizeScoreboard(board), nil
}
