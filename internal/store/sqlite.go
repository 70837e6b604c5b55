package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"bir-schedule/internal/constants"
	"bir-schedule/internal/domain"
)

// SQLiteStore persists the master schedule in SQLite. Games live in one table
// keyed by (sport, game_id); team and venue sub-records are stored as JSON
// documents so the persisted field names stay wire-compatible. Commit writes
// the whole merged state in one transaction.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteStore(db *sql.DB, logger zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

const selectGames = `
SELECT sport, game_id, date_utc, status, status_detail, home_team, away_team, venue
FROM games
ORDER BY date_utc, sport, game_id`

const selectSyncLog = `SELECT sport, synced_at FROM sync_log`

const upsertGame = `
INSERT INTO games (sport, game_id, date_utc, status, status_detail, home_team, away_team, venue)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (sport, game_id) DO UPDATE SET
	date_utc = excluded.date_utc,
	status = excluded.status,
	status_detail = excluded.status_detail,
	home_team = excluded.home_team,
	away_team = excluded.away_team,
	venue = excluded.venue`

const upsertSyncLog = `
INSERT INTO sync_log (sport, synced_at) VALUES (?, ?)
ON CONFLICT (sport) DO UPDATE SET synced_at = excluded.synced_at`

func (s *SQLiteStore) Load(ctx context.Context) (*domain.Master, error) {
	rows, err := s.db.QueryContext(ctx, selectGames)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		var home, away []byte
		var venue sql.NullString
		if err := rows.Scan(&g.Sport, &g.GameID, &g.DateUTC, &g.Status, &g.StatusDetail, &home, &away, &venue); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		if err := json.Unmarshal(home, &g.HomeTeam); err != nil {
			s.logger.Warn().Err(err).Str("sport", g.Sport).Str("game_id", g.GameID).Msg("skipping game with unreadable home team")
			continue
		}
		if err := json.Unmarshal(away, &g.AwayTeam); err != nil {
			s.logger.Warn().Err(err).Str("sport", g.Sport).Str("game_id", g.GameID).Msg("skipping game with unreadable away team")
			continue
		}
		if venue.Valid && venue.String != "" {
			var v domain.Venue
			if err := json.Unmarshal([]byte(venue.String), &v); err == nil {
				g.Venue = &v
			}
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game rows: %w", err)
	}

	lastSynced, err := s.loadSyncLog(ctx)
	if err != nil {
		return nil, err
	}

	if len(games) == 0 && len(lastSynced) == 0 {
		return nil, nil
	}
	return &domain.Master{Games: games, LastSynced: lastSynced}, nil
}

func (s *SQLiteStore) loadSyncLog(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, selectSyncLog)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync log: %w", err)
	}
	defer rows.Close()

	lastSynced := make(map[string]string)
	for rows.Next() {
		var sport, syncedAt string
		if err := rows.Scan(&sport, &syncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync log row: %w", err)
		}
		lastSynced[sport] = syncedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sync log rows: %w", err)
	}
	return lastSynced, nil
}

func (s *SQLiteStore) Commit(ctx context.Context, m *domain.Master) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(m.Games); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(m.Games) {
			end = len(m.Games)
		}

		for _, g := range m.Games[i:end] {
			home, err := json.Marshal(g.HomeTeam)
			if err != nil {
				return fmt.Errorf("failed to encode home team for %s/%s: %w", g.Sport, g.GameID, err)
			}
			away, err := json.Marshal(g.AwayTeam)
			if err != nil {
				return fmt.Errorf("failed to encode away team for %s/%s: %w", g.Sport, g.GameID, err)
			}
			var venue any
			if g.Venue != nil {
				encoded, err := json.Marshal(g.Venue)
				if err != nil {
					return fmt.Errorf("failed to encode venue for %s/%s: %w", g.Sport, g.GameID, err)
				}
				venue = string(encoded)
			}
			if _, err := tx.ExecContext(ctx, upsertGame,
				g.Sport, g.GameID, g.DateUTC, g.Status, g.StatusDetail, string(home), string(away), venue,
			); err != nil {
				return fmt.Errorf("failed to upsert game %s/%s: %w", g.Sport, g.GameID, err)
			}
		}
	}

	for sport, syncedAt := range m.LastSynced {
		if _, err := tx.ExecContext(ctx, upsertSyncLog, sport, syncedAt); err != nil {
			return fmt.Errorf("failed to upsert sync log for %s: %w", sport, err)
		}
	}

	return tx.Commit()
}
