// Package match builds hosted rooms from a host and their resolved party.
package match

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/riftkeep/matchmaker/internal/queue"
)

// ErrJoinOnlyMode is returned when a player whose join_mode forbids hosting
// attempts to host anyway (spec.md §4.C).
var ErrJoinOnlyMode = errors.New("match: player join_mode is JoinRoom, cannot host")

// ErrOversizedParty is returned when host + party would exceed MaxPlayers.
var ErrOversizedParty = errors.New("match: party too large for MaxPlayers")

// Host constructs a Match from a host and their already-resolved party
// (spec.md §4.C). The host is always appended last, which invariant I4 relies
// on to recover host_id from players[len-1].
func Host(player queue.QueuedPlayer, party []queue.QueuedPlayer) (*queue.Match, error) {
	if player.JoinMode == queue.JoinRoom {
		return nil, fmt.Errorf("%w: player %s", ErrJoinOnlyMode, player.PlayerID)
	}
	if len(party)+1 > queue.MaxPlayers {
		return nil, fmt.Errorf("%w: party of %d plus host exceeds %d", ErrOversizedParty, len(party), queue.MaxPlayers)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("match: generate match id: %w", err)
	}

	players := make([]queue.QueuedPlayer, 0, len(party)+1)
	players = append(players, party...)
	players = append(players, player)

	return &queue.Match{
		ID:      id,
		HostID:  player.PlayerID,
		Region:  player.Region,
		Players: players,
	}, nil
}
