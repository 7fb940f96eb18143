// Package ingress implements JoinQueue, the authenticated entry point a
// player's client calls to request a spot in matchmaking (spec.md §4.D).
package ingress

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/riftkeep/matchmaker/internal/metrics"
	"github.com/riftkeep/matchmaker/internal/queue"
)

// Epoch is the fixed reference point join_time is measured from (spec.md §6).
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// SkillOracle is the subset of skillclient.AuthenticatedClient the ingress
// handler depends on.
type SkillOracle interface {
	GetRating(ctx context.Context, playerID string) (queue.SkillRating, error)
}

// PlayerTTL is the expiry of a per-player record. With the worker's MatchTTL
// and interval and queue.MaxPlayers it is one of the core-visible
// configuration values (spec.md §6).
const PlayerTTL = 10 * time.Minute

// Request is the JoinQueue request body (spec.md §4.D).
type Request struct {
	PlayerID      string
	Region        string
	Ping          uint32
	Difficulty    int32
	JoinMode      queue.JoinMode
	PartyMode     int32
	PartyMemberIDs []string
}

// Response is the JoinQueue response body.
type Response struct {
	PlayerID string
	Status   string
}

// Clock abstracts time.Now so join_time stamping is deterministic in tests.
type Clock func() time.Time

// Service implements JoinQueue against a Store and a SkillOracle.
type Service struct {
	store   queue.Store
	skill   SkillOracle
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     Clock
}

// New builds a Service.
func New(store queue.Store, skill SkillOracle, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, skill: skill, logger: logger, metrics: m, now: time.Now}
}

// SetClockForTest overrides the clock used to stamp join_time. It exists only
// so tests can assert the exact epoch-relative value without sleeping.
func (s *Service) SetClockForTest(now Clock) {
	s.now = now
}

// JoinQueue implements spec.md §4.D steps 1–9.
func (s *Service) JoinQueue(ctx context.Context, authUserID string, req Request) (*Response, error) {
	// Step 1: parse player_id.
	playerID, err := uuid.FromString(req.PlayerID)
	if err != nil {
		s.observe("invalid_argument")
		return nil, status.Errorf(codes.InvalidArgument, "malformed player_id: %v", err)
	}

	// Step 2: verified caller identity must match the requested player id.
	if authUserID != req.PlayerID {
		s.observe("unauthenticated")
		return nil, status.Errorf(codes.Unauthenticated, "authenticated user does not match player_id")
	}

	// Step 3: resolve skill rating. No retry in this tick; the client may
	// retry the whole RPC.
	rating, err := s.skill.GetRating(ctx, req.PlayerID)
	if err != nil {
		s.logger.Error("skill oracle failed", zap.String("player_id", req.PlayerID), zap.Error(err))
		s.observe("internal")
		return nil, status.Errorf(codes.Internal, "skill oracle failed")
	}

	// Step 4: stamp join_time relative to the fixed epoch.
	joinTime := int64(s.now().Sub(Epoch).Seconds())

	// Step 5: build the QueuedPlayer. Party member ids are carried through
	// unvalidated: spec.md §4.D never parses them, and spec.md §4.E's
	// create_match is the sole place a malformed friend id is rejected
	// (InvalidFriendId), so ingress must not reject the request for them.
	player := queue.QueuedPlayer{
		PlayerID:   playerID,
		Skill:      rating,
		Region:     req.Region,
		PingMs:     req.Ping,
		Difficulty: req.Difficulty,
		JoinMode:   req.JoinMode,
		PartyMode:  req.PartyMode,
		JoinTime:   joinTime,
	}
	for _, idStr := range req.PartyMemberIDs {
		player.PartyIDs = append(player.PartyIDs, queue.PartyMemberID{Value: idStr})
	}

	encoded, err := queue.EncodePlayer(player)
	if err != nil {
		s.observe("internal")
		return nil, status.Errorf(codes.Internal, "encode player: %v", err)
	}

	// Step 6: write the per-player record.
	if err := s.store.SetTTL(ctx, queue.PlayerRecordKey(req.PlayerID), encoded, PlayerTTL); err != nil {
		s.observe("internal")
		return nil, status.Errorf(codes.Internal, "store player record: %v", err)
	}

	// Step 7: insert into the per-(party_mode,region) queue.
	if err := s.store.ZAdd(ctx, queue.PlayerQueueKeyFor(player), float64(joinTime), encoded); err != nil {
		s.observe("internal")
		return nil, status.Errorf(codes.Internal, "enqueue player: %v", err)
	}

	// Step 8: aspiring hosts also go into the create-match queue. Failure here
	// is degraded mode, not fatal: the record still exists, so a later tick may
	// still find the player via other means.
	if req.JoinMode == queue.CreateRoom {
		if err := s.store.ZAdd(ctx, queue.CreateMatchQueueKey(req.Region), float64(joinTime), encoded); err != nil {
			s.logger.Warn("failed to enqueue aspiring host into create-match queue",
				zap.String("player_id", req.PlayerID), zap.String("region", req.Region), zap.Error(err))
		}
	}

	s.observe("ok")
	return &Response{PlayerID: req.PlayerID, Status: "waiting in queue"}, nil
}

func (s *Service) observe(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.JoinRequestsTotal.WithLabelValues(result).Inc()
}
