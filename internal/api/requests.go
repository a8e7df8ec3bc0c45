package api

import (
	"encoding/json"
	"errors"

	"hifiwifi/internal/wifi"
)

// Band accepts a band label such as "5GHz" or "2.4 ghz", or a channel
// frequency in MHz, and stores the canonical label.
type Band string

// UnmarshalJSON implements json.Unmarshaler.
func (b *Band) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*b = Band(wifi.BandForNumber(number))
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return errors.New("frequency must be a band label or a frequency in MHz")
	}
	*b = Band(wifi.NormalizeBand(label))
	return nil
}

// RawMeasurement is a numeric reading as posted to /analyze.
type RawMeasurement struct {
	Location      string   `json:"location" validate:"required"`
	SignalDBm     *float64 `json:"signal_dbm" validate:"required,gte=-100,lte=0"`
	LinkSpeedMbps *float64 `json:"link_speed_mbps" validate:"required,gte=0,lte=10000"`
	LatencyMs     *float64 `json:"latency_ms" validate:"required,gte=0,lte=10000"`
	Frequency     Band     `json:"frequency" validate:"required"`
	Activity      string   `json:"activity" validate:"required"`
}

// Classification holds one measurement's ratings. Words from either
// vocabulary are accepted.
type Classification struct {
	SignalStrength string `json:"signal_strength"`
	Latency        string `json:"latency"`
	Bandwidth      string `json:"bandwidth"`
	Jitter         string `json:"jitter,omitempty"`
	PacketLoss     string `json:"packet_loss,omitempty"`
}

// Measurement is a classified reading as sent by the mobile app.
type Measurement struct {
	RoomName       string         `json:"roomName"`
	ActivityType   string         `json:"activityType"`
	FrequencyBand  Band           `json:"frequencyBand"`
	Classification Classification `json:"classification"`
}

// AnalyzeRequest is either a raw reading or a batch of classified
// measurements. The batch form wins when "measurements" is present.
type AnalyzeRequest struct {
	RawMeasurement
	Measurements []Measurement `json:"measurements"`
}

// Classified reports whether the request uses the measurements form.
func (r AnalyzeRequest) Classified() bool {
	return r.Measurements != nil
}

// ExplainRatings are the ratings behind the decision being explained.
type ExplainRatings struct {
	SignalStrength string `json:"signal_strength"`
	Latency        string `json:"latency"`
	Bandwidth      string `json:"bandwidth"`
}

// ExplainRecommendation is the decision to put into words.
type ExplainRecommendation struct {
	Action         string `json:"action" validate:"required"`
	TargetLocation string `json:"target_location,omitempty"`
}

// ExplainRequest is the body of POST /explain.
type ExplainRequest struct {
	Location       string                `json:"location"`
	Activity       string                `json:"activity"`
	Measurements   ExplainRatings        `json:"measurements"`
	Recommendation ExplainRecommendation `json:"recommendation"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query      string `json:"query" validate:"required"`
	FormatJSON bool   `json:"format_json"`
}

// DecideRequest is the body of POST /decide.
type DecideRequest struct {
	SignalStrength string `json:"signal_strength" validate:"required,rating"`
	Latency        string `json:"latency" validate:"required,rating"`
	Bandwidth      string `json:"bandwidth" validate:"required,rating"`
	Frequency      Band   `json:"frequency"`
	Activity       string `json:"activity"`
}
