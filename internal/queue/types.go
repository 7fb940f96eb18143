// Package queue defines the wire-level entities the matchmaking pipeline passes
// through the shared store: queued players, formed matches, and the deterministic
// binary codec and key schema used to address them.
package queue

import (
	"github.com/gofrs/uuid/v5"
)

// JoinMode mirrors spec.md's three-way admission policy for a queued player.
type JoinMode uint8

const (
	JoinOrCreateRoom JoinMode = 0
	JoinRoom         JoinMode = 1
	CreateRoom       JoinMode = 2
)

func (m JoinMode) String() string {
	switch m {
	case JoinOrCreateRoom:
		return "join_or_create"
	case JoinRoom:
		return "join"
	case CreateRoom:
		return "create"
	default:
		return "unknown"
	}
}

// MaxPlayers is the fixed room capacity. spec.md §9 leaves this as an Open
// Question resolved in favor of a fixed constant rather than configuration.
const MaxPlayers = 4

// SkillRating is the opaque rating triple produced by the external skill oracle.
// Matchmaking only ever reads it; it never recomputes or updates it.
type SkillRating struct {
	Rating          float64
	LoadoutModifier float64
	Uncertainty     float64
}

// EffectiveRating is the value the fitness ladder compares players on.
func (s SkillRating) EffectiveRating() float64 {
	return s.Rating + s.LoadoutModifier
}

// PartyMemberID is a party member's id exactly as the client sent it on
// JoinQueue, unvalidated. spec.md §4.D never parses party member ids at
// ingress; spec.md §4.E's create_match is the sole place a malformed id is
// rejected (`original_source/crates/matchmaking/src/rpc/worker/form_match.rs`
// parses `party_ids: Vec<String>` lazily inside the worker, not at the RPC
// boundary), so the wire type carries the raw string through untouched.
type PartyMemberID struct {
	Len   uint16 `struct:"sizeof=Value"`
	Value string
}

// QueuedPlayer is a player waiting in line, as carried in the shared store.
//
// Field order matters: restruct packs/unpacks sequentially, so a `sizeof`
// length field must precede the variable-length field it describes.
type QueuedPlayer struct {
	PlayerID   uuid.UUID
	Skill      SkillRating
	RegionLen  uint8 `struct:"sizeof=Region"`
	Region     string
	PingMs     uint32
	Difficulty int32
	JoinMode   JoinMode
	PartyMode  int32
	PartyCount uint16 `struct:"sizeof=PartyIDs"`
	PartyIDs   []PartyMemberID
	JoinTime   int64
}

// Match is a hosted room: the host plus 0..3 party/joiner players, host appended
// last by the builder (invariant I4).
type Match struct {
	ID          uuid.UUID
	HostID      uuid.UUID
	RegionLen   uint8 `struct:"sizeof=Region"`
	Region      string
	PlayerCount uint8 `struct:"sizeof=Players"`
	Players     []QueuedPlayer
}

// IsFull reports whether the match has reached MaxPlayers (invariant I4/I5).
func (m *Match) IsFull() bool {
	return len(m.Players) >= MaxPlayers
}
