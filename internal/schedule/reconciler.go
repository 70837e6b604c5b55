package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"bir-schedule/internal/domain"
	"bir-schedule/internal/store"
)

// Summary is the result of a merge or a counts-only dry run.
type Summary struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Change describes one game whose tracked fields differ from the master copy.
type Change struct {
	Game     domain.Game `json:"game"`
	Existing domain.Game `json:"existing"`
	Incoming domain.Game `json:"incoming"`
	Diffs    []string    `json:"diffs"`
}

// DetailedSummary is the result of a detailed dry run, used to prompt the
// operator before committing.
type DetailedSummary struct {
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	Changes   []Change `json:"changes"`
}

// Reconciler merges freshly fetched game batches into the master schedule.
// A merge never removes a game; it only adds new ones or replaces changed
// ones wholesale. Dry runs (Compare, CompareDetailed) never write and are
// safe to run concurrently with anything.
type Reconciler struct {
	store  store.Store
	logger zerolog.Logger

	// Serializes the read-modify-write in merge. Two concurrent merges
	// would otherwise race on the store and silently drop one side's
	// updates.
	mu sync.Mutex
}

func NewReconciler(st store.Store, logger zerolog.Logger) *Reconciler {
	return &Reconciler{store: st, logger: logger}
}

// AllGames returns every game in the master schedule, sorted ascending by
// start time. Empty when nothing has been committed yet.
func (r *Reconciler) AllGames(ctx context.Context) []domain.Game {
	return r.load(ctx).Games
}

// GamesForSport filters the master schedule by sport code, case-insensitive.
// An empty sport means no filter and returns everything.
func (r *Reconciler) GamesForSport(ctx context.Context, sport string) []domain.Game {
	games := r.AllGames(ctx)
	upper := strings.ToUpper(sport)
	if upper == "" {
		return games
	}
	filtered := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if strings.ToUpper(g.Sport) == upper {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// LastSyncedFor returns the timestamp of the most recent merge for a sport,
// or "" if that sport has never been merged.
func (r *Reconciler) LastSyncedFor(ctx context.Context, sport string) string {
	return r.load(ctx).LastSynced[strings.ToLower(sport)]
}

// Compare classifies an incoming batch against the master without persisting
// anything.
func (r *Reconciler) Compare(ctx context.Context, incoming []domain.Game, sport string) Summary {
	byKey, _ := indexByKey(r.load(ctx).Games)
	sum, _ := classify(byKey, nil, incoming, sport, nil)
	return sum
}

// CompareDetailed is Compare plus an unchanged count and a per-game change
// list with human-readable diffs, in encounter order.
func (r *Reconciler) CompareDetailed(ctx context.Context, incoming []domain.Game, sport string) DetailedSummary {
	byKey, _ := indexByKey(r.load(ctx).Games)

	var changes []Change
	unchanged := 0
	sum, _ := classify(byKey, nil, incoming, sport, func(existing, game domain.Game, changed bool) {
		if !changed {
			unchanged++
			return
		}
		changes = append(changes, Change{
			Game:     game,
			Existing: existing,
			Incoming: game,
			Diffs:    Diffs(existing, game),
		})
	})

	return DetailedSummary{
		Added:     sum.Added,
		Updated:   sum.Updated,
		Unchanged: unchanged,
		Changes:   changes,
	}
}

// Merge folds an incoming batch into the master schedule and persists the
// result. Persistence is best-effort: a storage failure is logged and the
// in-memory merge result is still returned, trading durability for
// availability of the summary.
func (r *Reconciler) Merge(ctx context.Context, incoming []domain.Game, sport, syncedAt string) Summary {
	sum, err := r.merge(ctx, incoming, sport, syncedAt)
	if err != nil {
		r.logger.Warn().Err(err).Str("sport", sport).Msg("failed to persist master schedule, merge result not durable")
	}
	return sum
}

// MergeStrict is Merge with the storage error surfaced instead of swallowed.
func (r *Reconciler) MergeStrict(ctx context.Context, incoming []domain.Game, sport, syncedAt string) (Summary, error) {
	return r.merge(ctx, incoming, sport, syncedAt)
}

func (r *Reconciler) merge(ctx context.Context, incoming []domain.Game, sport, syncedAt string) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.load(ctx)
	byKey, order := indexByKey(m.Games)
	sum, order := classify(byKey, order, incoming, sport, nil)

	games := make([]domain.Game, 0, len(order))
	for _, k := range order {
		games = append(games, byKey[k])
	}
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].DateUTC < games[j].DateUTC
	})

	lastSynced := make(map[string]string, len(m.LastSynced)+1)
	for k, v := range m.LastSynced {
		lastSynced[k] = v
	}
	if syncedAt == "" {
		syncedAt = time.Now().UTC().Format(time.RFC3339)
	}
	lastSynced[strings.ToLower(sport)] = syncedAt

	r.logger.Info().
		Str("sport", sport).
		Int("added", sum.Added).
		Int("updated", sum.Updated).
		Int("total", len(games)).
		Msg("merged games into master schedule")

	return sum, r.store.Commit(ctx, &domain.Master{Games: games, LastSynced: lastSynced})
}

// AddGame merges a single, typically hand-entered game. The sport defaults to
// OTHER and a manual id token is synthesized when the caller supplies none.
func (r *Reconciler) AddGame(ctx context.Context, game domain.Game) Summary {
	sport := strings.ToUpper(game.Sport)
	if sport == "" {
		sport = "OTHER"
	}
	game.Sport = sport
	if game.GameID == "" {
		game.GameID = manualID()
	}
	return r.Merge(ctx, []domain.Game{game}, sport, "")
}

func manualID() string {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Sprintf("manual-%d", time.Now().UnixMilli())
	}
	return "manual-" + id
}

// load returns the persisted master, degrading to empty on any storage
// failure or corruption. The reconciliation path never errors on reads.
func (r *Reconciler) load(ctx context.Context) *domain.Master {
	m, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to load master schedule, treating as empty")
		m = nil
	}
	if m == nil {
		m = &domain.Master{}
	}
	if m.LastSynced == nil {
		m.LastSynced = map[string]string{}
	}
	return m
}

// indexByKey maps stored games by composite key, first occurrence winning on
// duplicates (defensive against a corrupted store), and returns the keys in
// encounter order.
func indexByKey(games []domain.Game) (map[string]domain.Game, []string) {
	byKey := make(map[string]domain.Game, len(games))
	order := make([]string, 0, len(games))
	for _, g := range games {
		if g.GameID == "" {
			continue
		}
		k := Key(g.Sport, g.GameID)
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = g
		order = append(order, k)
	}
	return byKey, order
}

// classify runs the shared reconciliation skeleton: default the sport on each
// incoming game, skip unidentifiable ones, and stage adds and changed
// replacements into byKey. The observe hook, when set, sees every identifiable
// game that already had a master entry.
func classify(
	byKey map[string]domain.Game,
	order []string,
	incoming []domain.Game,
	sport string,
	observe func(existing, game domain.Game, changed bool),
) (Summary, []string) {
	var sum Summary
	sportUpper := strings.ToUpper(sport)

	for _, g := range incoming {
		if g.Sport == "" {
			g.Sport = sportUpper
		}
		if g.GameID == "" {
			continue
		}
		k := Key(g.Sport, g.GameID)

		existing, ok := byKey[k]
		if !ok {
			byKey[k] = g
			order = append(order, k)
			sum.Added++
			continue
		}
		changed := Changed(existing, g)
		if observe != nil {
			observe(existing, g, changed)
		}
		if changed {
			byKey[k] = g
			sum.Updated++
		}
	}
	return sum, order
}
