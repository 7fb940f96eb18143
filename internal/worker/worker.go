// Package worker implements the periodic matchmaking tick: scanning
// create-match queues, building candidate rooms, evicting seated players, and
// promoting/starting matches (spec.md §4.E).
package worker

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/riftkeep/matchmaker/internal/launcher"
	"github.com/riftkeep/matchmaker/internal/match"
	"github.com/riftkeep/matchmaker/internal/metrics"
	"github.com/riftkeep/matchmaker/internal/queue"
	"github.com/riftkeep/matchmaker/internal/regions"
)

// DefaultInterval is spec.md §4.E's default tick cadence.
const DefaultInterval = 30 * time.Second

// Worker runs Tick on a fixed interval. Ticks never overlap (spec.md §5
// "Worker serialization"): Run blocks on each Tick before scheduling the next.
type Worker struct {
	store    queue.Store
	regions  *regions.Registry
	launcher launcher.Launcher
	logger   *zap.Logger
	metrics  *metrics.Metrics

	// openMatches is the only in-process state the worker carries across
	// ticks (spec.md §4.E): matches formed but not yet at capacity. It is
	// owned exclusively by the worker goroutine, so no lock is needed
	// (spec.md §5 "Worker serialization").
	openMatches []*queue.Match
}

// New builds a Worker.
func New(store queue.Store, reg *regions.Registry, l launcher.Launcher, logger *zap.Logger, m *metrics.Metrics) *Worker {
	return &Worker{store: store, regions: reg, launcher: l, logger: logger, metrics: m}
}

// Run drives Tick on interval until ctx is cancelled. A tick that overruns the
// interval delays the next tick rather than overlapping with it (spec.md §5).
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs the four phases of spec.md §4.E once. It never returns an error:
// every per-host, per-friend, and per-match failure is logged and the tick
// continues (spec.md §7 "the worker never surfaces errors to callers").
func (w *Worker) Tick(ctx context.Context) {
	start := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.TickDuration.Observe(time.Since(start).Seconds())
		}
	}()

	regionIDs, err := w.regions.Load(ctx)
	if err != nil {
		w.logger.Error("worker: failed to load region set, ending tick early", zap.Error(err))
		return
	}
	if len(regionIDs) == 0 {
		w.logger.Debug("worker: no regions configured, nothing to do this tick")
		return
	}

	w.formMatches(ctx, regionIDs)
	w.evictSeatedPlayers(ctx)
	w.promoteFullMatches(ctx)
	w.startClosedMatches(ctx)
}

// formMatches is Phase 1: drain each region's create-match queue and build a
// candidate match per aspiring host.
func (w *Worker) formMatches(ctx context.Context, regionIDs []string) {
	for _, region := range regionIDs {
		key := queue.CreateMatchQueueKey(region)
		entries, err := w.store.ZRange(ctx, key)
		if err != nil {
			w.logger.Error("worker: failed to read create-match queue", zap.String("region", region), zap.Error(err))
			continue
		}

		for _, raw := range entries {
			host, err := queue.DecodePlayer(raw)
			if err != nil {
				w.logger.Warn("worker: failed to decode create-match queue entry, skipping", zap.String("region", region), zap.Error(err))
				continue
			}

			m, ok := w.createMatch(ctx, host)
			if !ok {
				continue
			}

			w.openMatches = append(w.openMatches, m)
			if w.metrics != nil {
				w.metrics.MatchesOpenedTotal.Inc()
			}
		}
	}
}

// createMatch is spec.md §4.E Phase 1 step 4: resolve a host's party against
// live per-player records, build the match via internal/match, and persist it
// as Open. Returns (nil, false) for every abort condition the spec enumerates.
func (w *Worker) createMatch(ctx context.Context, host queue.QueuedPlayer) (*queue.Match, bool) {
	if host.JoinMode != queue.CreateRoom {
		return nil, false
	}

	party := make([]queue.QueuedPlayer, 0, len(host.PartyIDs))
	for _, friendID := range host.PartyIDs {
		// spec.md §4.E: "Parse UUID; malformed → InvalidFriendId (abort this
		// host, log)." Party member ids are never parsed at ingress, so this
		// is the first point a malformed id can be caught.
		parsed, err := uuid.FromString(friendID.Value)
		if err != nil {
			w.logger.Warn("worker: malformed friend id, aborting host",
				zap.String("host_id", host.PlayerID.String()), zap.String("friend_id", friendID.Value), zap.Error(err))
			return nil, false
		}

		raw, err := w.store.Get(ctx, queue.PlayerRecordKey(parsed.String()))
		if err != nil {
			// Absent: friend never queued, already expired, or already seated
			// elsewhere. Silently skipped per spec.md §4.E.
			continue
		}
		friend, err := queue.DecodePlayer(raw)
		if err != nil {
			w.logger.Warn("worker: failed to decode friend record, aborting host",
				zap.String("host_id", host.PlayerID.String()), zap.String("friend_id", parsed.String()), zap.Error(err))
			return nil, false
		}
		party = append(party, friend)
	}

	m, err := match.Host(host, party)
	if err != nil {
		w.logger.Warn("worker: failed to build match, aborting host",
			zap.String("host_id", host.PlayerID.String()), zap.Error(err))
		return nil, false
	}

	encoded, err := queue.EncodeMatch(*m)
	if err != nil {
		w.logger.Error("worker: failed to encode match, aborting host",
			zap.String("host_id", host.PlayerID.String()), zap.Error(err))
		return nil, false
	}
	if err := w.store.SetTTL(ctx, queue.MatchDataKey(m.ID.String()), encoded, MatchTTL); err != nil {
		w.logger.Error("worker: failed to persist open match, aborting host",
			zap.String("host_id", host.PlayerID.String()), zap.Error(err))
		return nil, false
	}

	return m, true
}

// MatchTTL is spec.md §3/§6's TWO_HOURS Open match TTL.
const MatchTTL = 2 * time.Hour

// evictSeatedPlayers is Phase 2: remove every player seated in an open match
// from its player_queue. Best-effort: errors are logged, not propagated.
func (w *Worker) evictSeatedPlayers(ctx context.Context) {
	for _, m := range w.openMatches {
		for _, p := range m.Players {
			encoded, err := queue.EncodePlayer(p)
			if err != nil {
				w.logger.Error("worker: failed to re-encode seated player for eviction",
					zap.String("player_id", p.PlayerID.String()), zap.Error(err))
				continue
			}
			if err := w.store.ZRem(ctx, queue.PlayerQueueKeyFor(p), encoded); err != nil {
				w.logger.Warn("worker: failed to evict seated player from queue",
					zap.String("player_id", p.PlayerID.String()), zap.Error(err))
			}
		}
	}
}

// promoteFullMatches is Phase 3: promote every open match at capacity to
// Closed, keyed by its index in the current openMatches slice (spec.md "score
// = enumeration index").
func (w *Worker) promoteFullMatches(ctx context.Context) {
	remaining := w.openMatches[:0:0]

	for i, m := range w.openMatches {
		if !m.IsFull() {
			remaining = append(remaining, m)
			continue
		}

		if err := w.store.Del(ctx, queue.MatchDataKey(m.ID.String())); err != nil {
			w.logger.Error("worker: failed to delete open match, keeping for next tick",
				zap.String("match_id", m.ID.String()), zap.Error(err))
			remaining = append(remaining, m)
			continue
		}

		encoded, err := queue.EncodeMatch(*m)
		if err != nil {
			w.logger.Error("worker: failed to encode closed match",
				zap.String("match_id", m.ID.String()), zap.Error(err))
			remaining = append(remaining, m)
			continue
		}
		if err := w.store.ZAdd(ctx, queue.ClosedMatchesKey, float64(i), encoded); err != nil {
			w.logger.Error("worker: failed to insert closed match, keeping for next tick",
				zap.String("match_id", m.ID.String()), zap.Error(err))
			remaining = append(remaining, m)
			continue
		}

		if w.metrics != nil {
			w.metrics.MatchesClosedTotal.Inc()
		}
	}

	w.openMatches = remaining
}

// startClosedMatches is Phase 4: hand every closed match to the session
// launcher and drain it from the closed set on success.
func (w *Worker) startClosedMatches(ctx context.Context) int {
	entries, err := w.store.ZRange(ctx, queue.ClosedMatchesKey)
	if err != nil {
		w.logger.Error("worker: failed to read closed matches", zap.Error(err))
		return 0
	}

	started := 0
	for _, raw := range entries {
		m, err := queue.DecodeMatch(raw)
		if err != nil {
			w.logger.Warn("worker: failed to decode closed match entry, skipping", zap.Error(err))
			continue
		}

		if err := w.launcher.Notify(ctx, &m); err != nil {
			w.logger.Error("worker: session launcher notify failed", zap.String("match_id", m.ID.String()), zap.Error(err))
			continue
		}

		if err := w.store.ZRem(ctx, queue.ClosedMatchesKey, raw); err != nil {
			w.logger.Error("worker: failed to remove started match from closed set",
				zap.String("match_id", m.ID.String()), zap.Error(err))
			continue
		}

		started++
		if w.metrics != nil {
			w.metrics.MatchesStartedTotal.Inc()
		}
	}

	return started
}
