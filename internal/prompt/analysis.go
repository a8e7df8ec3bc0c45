package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"hifiwifi/internal/wifi"
)

const (
	unknownValue    = "unknown"
	notAvailable    = "N/A"
	defaultActivity = "general use"
	analysisSchema  = `{
  "status": "success",
  "recommendation": {
    "action": "move_location" or "switch_band" or "stay_current",
    "priority": "low" or "medium" or "high",
    "message": "User-friendly explanation of what to do",
    "target_location": "suggested location name or null",
    "expected_improvements": {
      "rssi_dbm": estimated signal strength,
      "latency_ms": estimated latency
    }
  },
  "analysis": {
    "current_quality": %s,
    "signal_rating": 0-10,
    "suitable_for_activity": true or false,
    "bottleneck": "signal_strength" or "latency" or "bandwidth" or "none"
  }
}`
)

// ClassifiedMeasurement is one location rated in words rather than numbers.
// Empty fields are rendered as placeholders.
type ClassifiedMeasurement struct {
	Location       string
	Activity       string
	Frequency      string
	SignalStrength string
	Latency        string
	Bandwidth      string
	Jitter         string
	PacketLoss     string
}

// RawMeasurement carries the numeric readings; nil means not measured.
type RawMeasurement struct {
	Location      string
	Activity      string
	Frequency     string
	SignalDBm     *float64
	LinkSpeedMbps *float64
	LatencyMs     *float64
}

// Analysis renders the structured-analysis directive for a classified
// measurement. current_quality is constrained to vocab.
func Analysis(m ClassifiedMeasurement, vocab wifi.Vocabulary) string {
	var b strings.Builder
	b.WriteString("Analyze this WiFi situation and provide optimization recommendations:\n\n")
	fmt.Fprintf(&b, "Location: %s\n", orDefault(m.Location, unknownValue))
	fmt.Fprintf(&b, "Signal Strength: %s\n", orDefault(m.SignalStrength, unknownValue))
	fmt.Fprintf(&b, "Latency: %s\n", orDefault(m.Latency, unknownValue))
	fmt.Fprintf(&b, "Bandwidth: %s\n", orDefault(m.Bandwidth, unknownValue))
	fmt.Fprintf(&b, "Jitter: %s\n", orDefault(m.Jitter, notAvailable))
	fmt.Fprintf(&b, "Packet Loss: %s\n", orDefault(m.PacketLoss, notAvailable))
	fmt.Fprintf(&b, "Frequency Band: %s\n", orDefault(m.Frequency, notAvailable))
	fmt.Fprintf(&b, "Current Activity: %s\n\n", orDefault(m.Activity, defaultActivity))
	fmt.Fprintf(&b, "Ratings use the scale %s, best first.\n", strings.Join(vocab.Words(), ", "))
	b.WriteString("Based on these classifications, provide a JSON response with the following structure:\n")
	fmt.Fprintf(&b, analysisSchema, qualityChoices(vocab))
	return b.String()
}

// RawAnalysis renders the same directive from numeric readings.
func RawAnalysis(m RawMeasurement, vocab wifi.Vocabulary) string {
	var b strings.Builder
	b.WriteString("Analyze the following WiFi measurement data and provide optimization recommendations:\n\n")
	fmt.Fprintf(&b, "Location: %s\n", orDefault(m.Location, unknownValue))
	fmt.Fprintf(&b, "Signal Strength: %s dBm\n", number(m.SignalDBm))
	fmt.Fprintf(&b, "Link Speed: %s Mbps\n", number(m.LinkSpeedMbps))
	fmt.Fprintf(&b, "Latency: %s ms\n", number(m.LatencyMs))
	fmt.Fprintf(&b, "Frequency: %s\n", orDefault(m.Frequency, notAvailable))
	fmt.Fprintf(&b, "Current Activity: %s\n\n", orDefault(m.Activity, defaultActivity))
	b.WriteString("Provide a JSON response with the following structure:\n")
	fmt.Fprintf(&b, analysisSchema, qualityChoices(vocab))
	return b.String()
}

func qualityChoices(vocab wifi.Vocabulary) string {
	quoted := make([]string, 0, len(vocab.Ratings))
	for _, word := range vocab.Ratings {
		quoted = append(quoted, strconv.Quote(word))
	}
	return strings.Join(quoted, " or ")
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func number(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
