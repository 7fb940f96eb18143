package queue_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/riftkeep/matchmaker/internal/queue"
)

func TestEncodeDecodePlayer_RoundTrip(t *testing.T) {
	cases := []queue.QueuedPlayer{
		{
			PlayerID:   mustUUID(t, "11111111-1111-1111-1111-111111111111"),
			Skill:      queue.SkillRating{Rating: 25.5, LoadoutModifier: -1.25, Uncertainty: 8.3},
			Region:     "CAN",
			PingMs:     42,
			Difficulty: 3,
			JoinMode:   queue.CreateRoom,
			PartyMode:  1,
			PartyIDs: []queue.PartyMemberID{
				{Value: mustUUID(t, "22222222-2222-2222-2222-222222222222").String()},
				{Value: mustUUID(t, "33333333-3333-3333-3333-333333333333").String()},
			},
			JoinTime: 123456,
		},
		{
			// Zero/empty values must round-trip exactly (spec.md §4.A).
			PlayerID:  mustUUID(t, "44444444-4444-4444-4444-444444444444"),
			Region:    "",
			PartyIDs:  nil,
			JoinMode:  queue.JoinRoom,
			JoinTime:  0,
			PingMs:    0,
			PartyMode: 0,
		},
		{
			// A party_ids list of four entries must also round-trip, including a
			// malformed entry carried through unvalidated (spec.md §4.D never
			// parses party member ids).
			PlayerID:   mustUUID(t, "99999999-9999-9999-9999-999999999999"),
			Skill:      queue.SkillRating{Rating: 10, LoadoutModifier: 0, Uncertainty: 1},
			Region:     "EU",
			PingMs:     80,
			Difficulty: 1,
			JoinMode:   queue.CreateRoom,
			PartyMode:  2,
			PartyIDs: []queue.PartyMemberID{
				{Value: mustUUID(t, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa").String()},
				{Value: mustUUID(t, "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb").String()},
				{Value: mustUUID(t, "cccccccc-cccc-cccc-cccc-cccccccccccc").String()},
				{Value: "not-a-uuid"},
			},
			JoinTime: 654321,
		},
	}

	for _, want := range cases {
		encoded, err := queue.EncodePlayer(want)
		require.NoError(t, err)

		got, err := queue.DecodePlayer(encoded)
		require.NoError(t, err)
		require.Equal(t, want.PlayerID, got.PlayerID)
		require.Equal(t, want.Skill, got.Skill)
		require.Equal(t, want.Region, got.Region)
		require.Equal(t, want.PingMs, got.PingMs)
		require.Equal(t, want.Difficulty, got.Difficulty)
		require.Equal(t, want.JoinMode, got.JoinMode)
		require.Equal(t, want.PartyMode, got.PartyMode)
		require.Equal(t, want.JoinTime, got.JoinTime)
		require.Equal(t, len(want.PartyIDs), len(got.PartyIDs))
		for i := range want.PartyIDs {
			require.Equal(t, want.PartyIDs[i], got.PartyIDs[i])
		}

		// Determinism: encoding the same value twice must produce
		// byte-identical output, since sorted-set removal depends on it
		// (spec.md §9 "Sorted-set member identity").
		again, err := queue.EncodePlayer(want)
		require.NoError(t, err)
		require.Equal(t, encoded, again)
	}
}

func TestEncodeDecodeMatch_RoundTrip(t *testing.T) {
	host := queue.QueuedPlayer{
		PlayerID: mustUUID(t, "55555555-5555-5555-5555-555555555555"),
		Region:   "CAN",
		JoinMode: queue.CreateRoom,
	}
	want := queue.Match{
		ID:      mustUUID(t, "66666666-6666-6666-6666-666666666666"),
		HostID:  host.PlayerID,
		Region:  "CAN",
		Players: []queue.QueuedPlayer{host},
	}

	encoded, err := queue.EncodeMatch(want)
	require.NoError(t, err)

	got, err := queue.DecodeMatch(encoded)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.HostID, got.HostID)
	require.Equal(t, want.Region, got.Region)
	require.Len(t, got.Players, 1)
	require.Equal(t, want.Players[0].PlayerID, got.Players[0].PlayerID)
}

func TestEncodeDecodeMatch_EmptyPlayers(t *testing.T) {
	want := queue.Match{
		ID:      mustUUID(t, "77777777-7777-7777-7777-777777777777"),
		HostID:  mustUUID(t, "88888888-8888-8888-8888-888888888888"),
		Region:  "EU",
		Players: nil,
	}

	encoded, err := queue.EncodeMatch(want)
	require.NoError(t, err)

	got, err := queue.DecodeMatch(encoded)
	require.NoError(t, err)
	require.Empty(t, got.Players)
}

func TestEncodeDecodeStringList_RoundTrip(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"CAN"},
		{"CAN", "EU", "APAC"},
	}

	for _, want := range cases {
		encoded, err := queue.EncodeStringList(want)
		require.NoError(t, err)

		got, err := queue.DecodeStringList(encoded)
		require.NoError(t, err)
		require.Equal(t, len(want), len(got))
		for i := range want {
			require.Equal(t, want[i], got[i])
		}
	}
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.FromString(s)
	require.NoError(t, err)
	return id
}
