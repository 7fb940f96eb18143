package match_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/riftkeep/matchmaker/internal/match"
	"github.com/riftkeep/matchmaker/internal/queue"
)

func TestHost_AppendsHostLast(t *testing.T) {
	host := queue.QueuedPlayer{PlayerID: newUUID(t), Region: "CAN", JoinMode: queue.CreateRoom}
	party := []queue.QueuedPlayer{
		{PlayerID: newUUID(t), Region: "CAN"},
		{PlayerID: newUUID(t), Region: "CAN"},
	}

	m, err := match.Host(host, party)
	require.NoError(t, err)
	require.Len(t, m.Players, 3)
	require.Equal(t, host.PlayerID, m.Players[len(m.Players)-1].PlayerID)
	require.Equal(t, host.PlayerID, m.HostID)
	require.Equal(t, "CAN", m.Region)
}

func TestHost_RejectsJoinOnlyMode(t *testing.T) {
	host := queue.QueuedPlayer{PlayerID: newUUID(t), Region: "CAN", JoinMode: queue.JoinRoom}

	_, err := match.Host(host, nil)
	require.ErrorIs(t, err, match.ErrJoinOnlyMode)
}

func TestHost_RejectsOversizedParty(t *testing.T) {
	host := queue.QueuedPlayer{PlayerID: newUUID(t), Region: "CAN", JoinMode: queue.CreateRoom}
	party := []queue.QueuedPlayer{
		{PlayerID: newUUID(t)},
		{PlayerID: newUUID(t)},
		{PlayerID: newUUID(t)},
		{PlayerID: newUUID(t)},
	}

	_, err := match.Host(host, party)
	require.ErrorIs(t, err, match.ErrOversizedParty)
}

func TestHost_AllowsExactCapacity(t *testing.T) {
	host := queue.QueuedPlayer{PlayerID: newUUID(t), Region: "CAN", JoinMode: queue.JoinOrCreateRoom}
	party := []queue.QueuedPlayer{
		{PlayerID: newUUID(t)},
		{PlayerID: newUUID(t)},
		{PlayerID: newUUID(t)},
	}

	m, err := match.Host(host, party)
	require.NoError(t, err)
	require.Len(t, m.Players, queue.MaxPlayers)
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}
