package wifi

import "strings"

// Actions a decision can recommend.
const (
	ActionStayCurrent  = "stay_current"
	ActionMoveLocation = "move_location"
	ActionSwitchBand   = "switch_band"
)

// Reason codes explaining which rule fired.
const (
	ReasonOptimalAllMetrics       = "optimal_all_metrics"
	ReasonWeakSignal              = "weak_signal"
	ReasonOptimizationOpportunity = "optimization_opportunity"
	ReasonInsufficientForActivity = "insufficient_for_activity"
	ReasonSufficientForActivity   = "sufficient_for_activity"
)

// TargetCloserToRouter is the move target used when no better room is known.
const TargetCloserToRouter = "closer to router"

// Snapshot is the classified state of one location.
type Snapshot struct {
	Ratings
	Frequency string `json:"frequency"`
	Activity  string `json:"activity"`
}

// Decision is the local, deterministic recommendation for a snapshot.
type Decision struct {
	Action         string `json:"action"`
	ReasonCode     string `json:"reason_code"`
	TargetLocation string `json:"target_location,omitempty"`
}

var highBandwidthActivities = map[string]struct{}{
	"streaming":  {},
	"gaming":     {},
	"video_call": {},
}

// Decide applies the recommendation rules in order; the first match wins.
// Ratings may use either vocabulary.
func Decide(s Snapshot) Decision {
	signal := RankOf(s.SignalStrength)
	latency := RankOf(s.Latency)
	bandwidth := RankOf(s.Bandwidth)
	activity := strings.ToLower(strings.TrimSpace(s.Activity))

	if signal == RankExcellent && latency == RankExcellent && bandwidth == RankExcellent {
		return Decision{Action: ActionStayCurrent, ReasonCode: ReasonOptimalAllMetrics}
	}
	if signal >= RankLow {
		return Decision{Action: ActionMoveLocation, ReasonCode: ReasonWeakSignal, TargetLocation: TargetCloserToRouter}
	}
	if atLeastGood(signal) && NormalizeBand(s.Frequency) == Band24GHz {
		if _, ok := highBandwidthActivities[activity]; ok {
			return Decision{Action: ActionSwitchBand, ReasonCode: ReasonOptimizationOpportunity}
		}
	}
	if !sufficientForActivity(signal, latency, bandwidth, activity) {
		return Decision{Action: ActionMoveLocation, ReasonCode: ReasonInsufficientForActivity, TargetLocation: TargetCloserToRouter}
	}
	return Decision{Action: ActionStayCurrent, ReasonCode: ReasonSufficientForActivity}
}

func atLeastGood(rank Rank) bool {
	return rank == RankExcellent || rank == RankGood
}

func sufficientForActivity(signal, latency, bandwidth Rank, activity string) bool {
	switch activity {
	case "gaming", "video_call":
		return atLeastGood(latency) && signal < RankLow
	case "streaming":
		return bandwidth < RankLow
	case "browsing":
		return signal < RankWorst
	default:
		return true
	}
}

// NormalizeBand accepts loose spellings such as "2.4 GHz", "5g" or "5ghz".
func NormalizeBand(value string) string {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	switch key {
	case "2.4ghz", "2.4g", "2.4", "2g":
		return Band24GHz
	case "5ghz", "5g", "5":
		return Band5GHz
	default:
		return strings.TrimSpace(value)
	}
}
