// Package fitness implements the single pure predicate at the center of
// matchmaking: whether a candidate may join an already-open match, and how
// latency-degraded that admission is.
package fitness

import (
	"time"

	"github.com/riftkeep/matchmaker/internal/queue"
)

// PingDeviation classifies how latency-degraded a candidate's admission is.
// It carries no behavior of its own and is returned to the caller only;
// internal/metrics has no instrument for it.
type PingDeviation int

const (
	Excellent PingDeviation = iota
	Good
	Disadvantage
	Poor
	Worst
)

func (d PingDeviation) String() string {
	switch d {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Disadvantage:
		return "disadvantage"
	case Poor:
		return "poor"
	case Worst:
		return "worst"
	default:
		return "unknown"
	}
}

// ageMinutes is spec.md §4.B's age_minutes(candidate): floor((now - join_time)/60).
func ageMinutes(candidate queue.QueuedPlayer, now time.Time) int64 {
	return (now.Unix() - candidate.JoinTime) / 60
}

// IsPlayerFit decides whether candidate may join open, and classifies the
// decision. The ladder below is spec.md §4.B transcribed in order, first match
// wins, including the branch spec.md §9 records as intentionally dead for some
// inputs (the plain `ping < 150` admit-failure after the age/skill escape
// hatches) — it is not collapsed, since it expresses a real policy boundary for
// the inputs that do reach it.
func IsPlayerFit(open *queue.Match, candidate queue.QueuedPlayer, now time.Time) (admit bool, deviation PingDeviation) {
	if candidate.JoinMode == queue.CreateRoom {
		return false, Worst
	}
	if len(open.Players) >= queue.MaxPlayers {
		return false, Worst
	}
	if open.Region != candidate.Region {
		return false, Worst
	}

	avgPing := averagePing(open.Players)
	avgSkill := averageSkill(open.Players)
	candSkill := candidate.Skill.EffectiveRating()
	percentSkill := (candSkill/avgSkill - 1) * 50

	ping := float64(candidate.PingMs)
	age := ageMinutes(candidate, now)

	switch {
	case ping < 50:
		return true, Excellent
	case ping < 100:
		return true, Good
	case ping < 150 && avgPing+25 > ping:
		return true, Disadvantage
	case (ping < 150 && age > 1) || (ping+percentSkill > 150):
		return true, Poor
	case ping < 150:
		return false, Disadvantage
	case ping < 300 && age > 3:
		return true, Poor
	default:
		return false, Worst
	}
}

func averagePing(players []queue.QueuedPlayer) float64 {
	if len(players) == 0 {
		return 0
	}
	var sum float64
	for _, p := range players {
		sum += float64(p.PingMs)
	}
	return sum / float64(len(players))
}

func averageSkill(players []queue.QueuedPlayer) float64 {
	if len(players) == 0 {
		return 0
	}
	var sum float64
	for _, p := range players {
		sum += p.Skill.EffectiveRating()
	}
	return sum / float64(len(players))
}
