package prompt

import (
	"fmt"
	"strings"

	"hifiwifi/internal/wifi"
)

// ExplanationInput is a decision that already happened and now needs words.
type ExplanationInput struct {
	Location       string
	Activity       string
	Ratings        wifi.Ratings
	Action         string
	TargetLocation string
}

const fallbackMoveTarget = "a better spot"

// ActionPhrase renders an action the way a person would say it. Unknown
// actions are returned verbatim.
func ActionPhrase(action, target string) string {
	switch strings.TrimSpace(action) {
	case wifi.ActionStayCurrent:
		return "stay where you are"
	case wifi.ActionMoveLocation:
		return "move to " + orDefault(target, fallbackMoveTarget)
	case wifi.ActionSwitchBand:
		return "switch to the 5GHz band"
	default:
		return action
	}
}

// Explanation asks for a short, jargon-free justification of a decision.
func Explanation(in ExplanationInput) string {
	activity := orDefault(in.Activity, defaultActivity)
	var b strings.Builder
	b.WriteString("You are a friendly home WiFi helper. Explain a recommendation to someone who is not technical.\n\n")
	fmt.Fprintf(&b, "Location: %s\n", orDefault(in.Location, unknownValue))
	fmt.Fprintf(&b, "Activity: %s\n", activity)
	fmt.Fprintf(&b, "Signal strength: %s\n", orDefault(in.Ratings.SignalStrength, unknownValue))
	fmt.Fprintf(&b, "Latency: %s\n", orDefault(in.Ratings.Latency, unknownValue))
	fmt.Fprintf(&b, "Bandwidth: %s\n", orDefault(in.Ratings.Bandwidth, unknownValue))
	fmt.Fprintf(&b, "Recommendation: %s\n\n", ActionPhrase(in.Action, in.TargetLocation))
	fmt.Fprintf(&b, "In 3 to 5 short sentences, explain why they should %s and what it means for %s.\n",
		ActionPhrase(in.Action, in.TargetLocation), activity)
	b.WriteString("Use plain everyday language. Do not use technical jargon such as dBm, RSSI, Mbps, jitter or packet loss.\n")
	b.WriteString("Answer with the explanation only, no lists or headings.")
	return b.String()
}

// Chat is the identity builder: free-text queries reach the model unchanged.
func Chat(query string) string {
	return query
}
