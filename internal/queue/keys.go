package queue

import (
	"fmt"
)

// Fixed keys from spec.md §4.A / §6.
const (
	ClosedMatchesKey = "matches:closed"
	RegionsKey       = "match:regions"
)

// PlayerRecordKey is the key a single player's current record is stored under.
func PlayerRecordKey(playerID string) string {
	return playerID
}

// PlayerQueueKey namespaces the per-(party_mode, region) sorted set a joining
// player is inserted into.
func PlayerQueueKey(partyMode int32, region string) string {
	return fmt.Sprintf("queue_player:%d:%s", partyMode, region)
}

// PlayerQueueKeyFor is PlayerQueueKey applied to a QueuedPlayer's own fields.
func PlayerQueueKeyFor(p QueuedPlayer) string {
	return PlayerQueueKey(p.PartyMode, p.Region)
}

// CreateMatchQueueKey namespaces the per-region queue of aspiring hosts.
func CreateMatchQueueKey(region string) string {
	return "queue_create_match:" + region
}

// MatchDataKey is the key an Open match's serialized form is stored under.
func MatchDataKey(matchID string) string {
	return "match:" + matchID
}
