package api_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hifiwifi/internal/advisor"
	"hifiwifi/internal/api"
	"hifiwifi/internal/services"
	"hifiwifi/internal/wifi"
)

func decodeAnalyze(t *testing.T, body string) api.AnalyzeRequest {
	t.Helper()
	var req api.AnalyzeRequest
	require.NoError(t, api.Decode(strings.NewReader(body), &req))
	return req
}

func TestAnalyzeRawShape(t *testing.T) {
	req := decodeAnalyze(t, `{"location":"living_room","signal_dbm":-45,"link_speed_mbps":866,"latency_ms":12,"frequency":"5 GHz","activity":"gaming"}`)

	require.False(t, req.Classified())
	require.NoError(t, api.ValidateAnalyze(req))

	raw := api.ToRaw(req.RawMeasurement)
	assert.Equal(t, "living_room", raw.Location)
	assert.Equal(t, "5GHz", raw.Frequency)
	require.NotNil(t, raw.SignalDBm)
	assert.Equal(t, -45.0, *raw.SignalDBm)

	ratings := api.ClassifyRaw(req.RawMeasurement, wifi.Standard)
	assert.Equal(t, wifi.Ratings{SignalStrength: "excellent", Latency: "excellent", Bandwidth: "excellent"}, ratings)
}

func TestAnalyzeFrequencyInMHz(t *testing.T) {
	req := decodeAnalyze(t, `{"frequency":2437}`)
	assert.Equal(t, api.Band("2.4GHz"), req.Frequency)

	req = decodeAnalyze(t, `{"frequency":5180}`)
	assert.Equal(t, api.Band("5GHz"), req.Frequency)

	req = decodeAnalyze(t, `{"frequency":null}`)
	assert.Equal(t, api.Band(""), req.Frequency)
}

func TestAnalyzeFrequencyAsBareBandNumber(t *testing.T) {
	tests := []struct {
		body string
		want api.Band
	}{
		{`{"frequency":5}`, "5GHz"},
		{`{"frequency":5.0}`, "5GHz"},
		{`{"frequency":"5"}`, "5GHz"},
		{`{"frequency":2.4}`, "2.4GHz"},
		{`{"frequency":2412}`, "2.4GHz"},
		{`{"frequency":6115}`, "5GHz"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeAnalyze(t, tt.body).Frequency)
		})
	}
}

func TestAnalyzeRawValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing fields listed",
			body: `{"location":"office","signal_dbm":-60}`,
			want: "Missing required fields: link_speed_mbps, latency_ms, frequency, activity",
		},
		{
			name: "zero readings are present",
			body: `{"location":"office","signal_dbm":0,"link_speed_mbps":0,"latency_ms":0,"frequency":"2.4GHz","activity":"browsing"}`,
		},
		{
			name: "signal out of range",
			body: `{"location":"office","signal_dbm":-120,"link_speed_mbps":100,"latency_ms":10,"frequency":"5GHz","activity":"browsing"}`,
			want: "Invalid field values: signal_dbm must be between -100 and 0",
		},
		{
			name: "latency out of range",
			body: `{"location":"office","signal_dbm":-50,"link_speed_mbps":100,"latency_ms":10001,"frequency":"5GHz","activity":"browsing"}`,
			want: "Invalid field values: latency_ms must be between 0 and 10000",
		},
		{
			name: "link speed negative",
			body: `{"location":"office","signal_dbm":-50,"link_speed_mbps":-1,"latency_ms":1,"frequency":"5GHz","activity":"browsing"}`,
			want: "Invalid field values: link_speed_mbps must be between 0 and 10000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := api.ValidateAnalyze(decodeAnalyze(t, tt.body))
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, services.ErrValidation)
			assert.Equal(t, 400, services.HTTPStatus(err))
		})
	}
}

func TestAnalyzeClassifiedShape(t *testing.T) {
	req := decodeAnalyze(t, `{
		"measurements": [
			{"roomName":"Living Room","activityType":"gaming","frequencyBand":"5GHz",
			 "classification":{"signal_strength":"excellent","latency":"good","bandwidth":"okay","jitter":"good"}},
			{"roomName":"Garage"}
		],
		"summary": {"totalMeasurements": 2}
	}`)

	require.True(t, req.Classified())
	require.NoError(t, api.ValidateAnalyze(req))

	got := api.ToClassified(req.Measurements)
	require.Len(t, got, 2)
	assert.Equal(t, "living_room", got[0].Location)
	assert.Equal(t, "gaming", got[0].Activity)
	assert.Equal(t, "5GHz", got[0].Frequency)
	assert.Equal(t, "good", got[0].Jitter)
	assert.Empty(t, got[0].PacketLoss)
	assert.Equal(t, "garage", got[1].Location)
}

func TestAnalyzeEmptyMeasurements(t *testing.T) {
	err := api.ValidateAnalyze(decodeAnalyze(t, `{"measurements":[]}`))
	require.Error(t, err)
	assert.Equal(t, "No measurements provided", err.Error())
}

func TestDecodeErrors(t *testing.T) {
	var req api.ChatRequest

	err := api.Decode(strings.NewReader(""), &req)
	require.Error(t, err)
	assert.Equal(t, "Request must include JSON body", err.Error())

	err = api.Decode(strings.NewReader("{not json"), &req)
	require.Error(t, err)
	assert.Equal(t, "Invalid JSON body", err.Error())
	assert.ErrorIs(t, err, services.ErrValidation)

	var validationErr *api.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestChatValidation(t *testing.T) {
	err := api.Validate(api.ChatRequest{})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: query", err.Error())

	assert.NoError(t, api.Validate(api.ChatRequest{Query: "hi", FormatJSON: true}))
}

func TestExplainConversion(t *testing.T) {
	var req api.ExplainRequest
	require.NoError(t, api.Decode(strings.NewReader(`{
		"location":"bedroom","activity":"streaming",
		"measurements":{"signal_strength":"poor","latency":"fair","bandwidth":"good"},
		"recommendation":{"action":"move_location","target_location":"living room"}
	}`), &req))
	require.NoError(t, api.Validate(req))

	in := api.ToExplanation(req)
	assert.Equal(t, "bedroom", in.Location)
	assert.Equal(t, "poor", in.Ratings.SignalStrength)
	assert.Equal(t, wifi.ActionMoveLocation, in.Action)
	assert.Equal(t, "living room", in.TargetLocation)

	err := api.Validate(api.ExplainRequest{Location: "bedroom"})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: action", err.Error())
}

func TestDecideValidation(t *testing.T) {
	ok := api.DecideRequest{SignalStrength: "Very Poor", Latency: "okay", Bandwidth: "moderate", Frequency: "5GHz", Activity: "gaming"}
	require.NoError(t, api.Validate(ok))

	snap := api.ToSnapshot(ok)
	assert.Equal(t, "Very Poor", snap.SignalStrength)
	assert.Equal(t, wifi.ActionMoveLocation, wifi.Decide(snap).Action)

	err := api.Validate(api.DecideRequest{SignalStrength: "stellar", Latency: "good", Bandwidth: "good"})
	require.Error(t, err)
	assert.Equal(t, `Invalid field values: signal_strength "stellar" is not a known rating`, err.Error())
}

func TestFromHealth(t *testing.T) {
	healthy := api.FromHealth(advisor.Health{BackendAvailable: true, ModelAvailable: true, Model: "wifi-assistant"})
	assert.Equal(t, api.HealthResponse{
		Status:          "healthy",
		Service:         "WiFi Optimization API",
		OllamaAvailable: true,
		ModelAvailable:  true,
		Model:           "wifi-assistant",
		Version:         "1.0.0",
	}, healthy)

	modelMissing := api.FromHealth(advisor.Health{BackendAvailable: true})
	assert.Equal(t, "healthy", modelMissing.Status)
	assert.False(t, modelMissing.ModelAvailable)

	degraded := api.FromHealth(advisor.Health{})
	assert.Equal(t, "degraded", degraded.Status)
}

func TestNewDecideResponseSpellsRatingsInVocabulary(t *testing.T) {
	snap := wifi.Snapshot{Ratings: wifi.Ratings{SignalStrength: "Poor", Latency: "moderate", Bandwidth: "stellar"}}

	resp := api.NewDecideResponse(wifi.Decision{Action: wifi.ActionMoveLocation}, snap, wifi.Standard)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, wifi.ActionMoveLocation, resp.Decision.Action)
	assert.Equal(t, wifi.Ratings{SignalStrength: "bad", Latency: "okay", Bandwidth: "stellar"}, resp.Ratings)
}
