package api

import (
	"strings"

	"github.com/samber/lo"

	"hifiwifi/internal/advisor"
	"hifiwifi/internal/prompt"
	"hifiwifi/internal/wifi"
)

// ToClassified converts app measurements into prompt inputs. Room names are
// normalized to snake_case.
func ToClassified(measurements []Measurement) []prompt.ClassifiedMeasurement {
	return lo.Map(measurements, func(m Measurement, _ int) prompt.ClassifiedMeasurement {
		return prompt.ClassifiedMeasurement{
			Location:       wifi.NormalizeLocation(m.RoomName),
			Activity:       strings.TrimSpace(m.ActivityType),
			Frequency:      string(m.FrequencyBand),
			SignalStrength: m.Classification.SignalStrength,
			Latency:        m.Classification.Latency,
			Bandwidth:      m.Classification.Bandwidth,
			Jitter:         m.Classification.Jitter,
			PacketLoss:     m.Classification.PacketLoss,
		}
	})
}

// ToRaw converts a numeric reading into prompt input.
func ToRaw(m RawMeasurement) prompt.RawMeasurement {
	return prompt.RawMeasurement{
		Location:      strings.TrimSpace(m.Location),
		Activity:      strings.TrimSpace(m.Activity),
		Frequency:     string(m.Frequency),
		SignalDBm:     m.SignalDBm,
		LinkSpeedMbps: m.LinkSpeedMbps,
		LatencyMs:     m.LatencyMs,
	}
}

// ToExplanation converts an explain request into prompt input.
func ToExplanation(req ExplainRequest) prompt.ExplanationInput {
	return prompt.ExplanationInput{
		Location: strings.TrimSpace(req.Location),
		Activity: strings.TrimSpace(req.Activity),
		Ratings: wifi.Ratings{
			SignalStrength: req.Measurements.SignalStrength,
			Latency:        req.Measurements.Latency,
			Bandwidth:      req.Measurements.Bandwidth,
		},
		Action:         strings.TrimSpace(req.Recommendation.Action),
		TargetLocation: strings.TrimSpace(req.Recommendation.TargetLocation),
	}
}

// ToSnapshot converts a decide request into decision input.
func ToSnapshot(req DecideRequest) wifi.Snapshot {
	return wifi.Snapshot{
		Ratings: wifi.Ratings{
			SignalStrength: req.SignalStrength,
			Latency:        req.Latency,
			Bandwidth:      req.Bandwidth,
		},
		Frequency: string(req.Frequency),
		Activity:  req.Activity,
	}
}

// ClassifyRaw grades a raw reading in vocab. Missing readings stay blank.
func ClassifyRaw(m RawMeasurement, vocab wifi.Vocabulary) wifi.Ratings {
	return wifi.Classify(vocab, m.SignalDBm, m.LatencyMs, m.LinkSpeedMbps)
}

// FromHealth builds the /health body.
func FromHealth(h advisor.Health) HealthResponse {
	return HealthResponse{
		Status:          lo.Ternary(h.Healthy(), HealthHealthy, HealthDegraded),
		Service:         ServiceName,
		OllamaAvailable: h.BackendAvailable,
		ModelAvailable:  h.ModelAvailable,
		Model:           h.Model,
		Version:         Version,
	}
}

// NewDecideResponse pairs a decision with the ratings it was made from,
// spelled in vocab where they are recognised.
func NewDecideResponse(d wifi.Decision, snap wifi.Snapshot, vocab wifi.Vocabulary) DecideResponse {
	spell := func(rating string) string {
		if word, ok := vocab.Normalize(rating); ok {
			return word
		}
		return rating
	}
	return DecideResponse{
		Status:   advisor.StatusSuccess,
		Decision: d,
		Ratings: wifi.Ratings{
			SignalStrength: spell(snap.SignalStrength),
			Latency:        spell(snap.Latency),
			Bandwidth:      spell(snap.Bandwidth),
		},
	}
}
