package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"sport", "gameId", "dateUtc", "status", "statusDetail",
	"awayTeam", "awayScore", "homeTeam", "homeScore", "venue",
}

// ExportCSV writes the master schedule (optionally filtered by sport) as CSV.
func (s *ScheduleService) ExportCSV(ctx context.Context, w io.Writer, sport string) error {
	games := s.rec.GamesForSport(ctx, sport)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, g := range games {
		record := []string{
			g.Sport, g.GameID, g.DateUTC, g.Status, g.StatusDetail,
			g.AwayTeam.Name, csvScore(g.AwayTeam.Score),
			g.HomeTeam.Name, csvScore(g.HomeTeam.Score),
			g.Venue.DisplayName(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s/%s: %w", g.Sport, g.GameID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvScore(s *int) string {
	if s == nil {
		return ""
	}
	return strconv.Itoa(*s)
}
