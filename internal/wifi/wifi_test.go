package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVocabulary(t *testing.T) {
	v, err := ParseVocabulary("")
	require.NoError(t, err)
	assert.Equal(t, Standard, v)

	v, err = ParseVocabulary(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, Legacy, v)

	_, err = ParseVocabulary("emoji")
	require.Error(t, err)
}

func TestVocabularyNormalizeTranslatesByRank(t *testing.T) {
	tests := []struct {
		vocab Vocabulary
		in    string
		want  string
	}{
		{Standard, "okay", "okay"},
		{Standard, "fair", "okay"},
		{Standard, "poor", "bad"},
		{Standard, "VERY_POOR", "marginal"},
		{Standard, "moderate", "okay"},
		{Legacy, "marginal", "very_poor"},
		{Legacy, "bad", "poor"},
		{Legacy, " Excellent ", "excellent"},
	}
	for _, tt := range tests {
		got, ok := tt.vocab.Normalize(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, "%s in %s", tt.in, tt.vocab.Name)
	}

	_, ok := Standard.Normalize("superb")
	assert.False(t, ok)
	_, ok = Standard.Normalize("")
	assert.False(t, ok)
}

func TestVocabularyContainsIsExact(t *testing.T) {
	assert.True(t, Standard.Contains("marginal"))
	assert.False(t, Standard.Contains("fair"))
	assert.True(t, Legacy.Contains("fair"))
	assert.Equal(t, []string{"excellent", "good", "okay", "bad", "marginal"}, Standard.Words())
	assert.Empty(t, Standard.Word(RankUnknown))
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		signal, latency, link float64
		want                  Ratings
	}{
		{-45, 12, 866, Ratings{"excellent", "excellent", "excellent"}},
		{-50, 19.9, 500, Ratings{"excellent", "excellent", "excellent"}},
		{-55, 20, 499, Ratings{"good", "good", "good"}},
		{-65, 60, 60, Ratings{"fair", "fair", "fair"}},
		{-75, 100, 49, Ratings{"poor", "poor", "poor"}},
		{-85, 250, 5, Ratings{"very_poor", "poor", "poor"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(Legacy, &tt.signal, &tt.latency, &tt.link))
	}

	signal, latency, link := -90.0, 300.0, 10.0
	assert.Equal(t, Ratings{"marginal", "bad", "bad"}, Classify(Standard, &signal, &latency, &link))
	assert.Equal(t, Ratings{Latency: "bad"}, Classify(Standard, nil, &latency, nil))
}

func TestBandForFrequency(t *testing.T) {
	assert.Equal(t, Band24GHz, BandForFrequency(2437))
	assert.Equal(t, Band24GHz, BandForFrequency(4000))
	assert.Equal(t, Band5GHz, BandForFrequency(5180))
}

func TestBandForNumber(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{5, Band5GHz},
		{5.0, Band5GHz},
		{2.4, Band24GHz},
		{2412, Band24GHz},
		{5180, Band5GHz},
		{6115, Band5GHz},
		{6, "6"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandForNumber(tt.value), "value %v", tt.value)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		in   Snapshot
		want Decision
	}{
		{
			name: "all excellent stays",
			in:   Snapshot{Ratings: Ratings{"excellent", "excellent", "excellent"}, Frequency: "5GHz", Activity: "gaming"},
			want: Decision{Action: ActionStayCurrent, ReasonCode: ReasonOptimalAllMetrics},
		},
		{
			name: "weak signal moves before band switch",
			in:   Snapshot{Ratings: Ratings{"poor", "excellent", "excellent"}, Frequency: "2.4GHz", Activity: "streaming"},
			want: Decision{Action: ActionMoveLocation, ReasonCode: ReasonWeakSignal, TargetLocation: TargetCloserToRouter},
		},
		{
			name: "standard vocabulary weak signal",
			in:   Snapshot{Ratings: Ratings{"marginal", "good", "good"}, Frequency: "5GHz", Activity: "browsing"},
			want: Decision{Action: ActionMoveLocation, ReasonCode: ReasonWeakSignal, TargetLocation: TargetCloserToRouter},
		},
		{
			name: "good signal on 2.4 with streaming switches band",
			in:   Snapshot{Ratings: Ratings{"good", "excellent", "good"}, Frequency: "2.4 GHz", Activity: "streaming"},
			want: Decision{Action: ActionSwitchBand, ReasonCode: ReasonOptimizationOpportunity},
		},
		{
			name: "gaming with fair latency is insufficient",
			in:   Snapshot{Ratings: Ratings{"fair", "fair", "good"}, Frequency: "5GHz", Activity: "gaming"},
			want: Decision{Action: ActionMoveLocation, ReasonCode: ReasonInsufficientForActivity, TargetLocation: TargetCloserToRouter},
		},
		{
			name: "browsing on fair signal is fine",
			in:   Snapshot{Ratings: Ratings{"fair", "fair", "fair"}, Frequency: "2.4GHz", Activity: "browsing"},
			want: Decision{Action: ActionStayCurrent, ReasonCode: ReasonSufficientForActivity},
		},
		{
			name: "unknown activity is permissive",
			in:   Snapshot{Ratings: Ratings{"okay", "bad", "bad"}, Frequency: "5GHz", Activity: "reading"},
			want: Decision{Action: ActionStayCurrent, ReasonCode: ReasonSufficientForActivity},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.in))
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "living_room", NormalizeLocation("Living Room"))
	assert.Equal(t, "living_room", NormalizeLocation("  living-room "))
	assert.Equal(t, "office", NormalizeLocation("office"))
	assert.Equal(t, "bedroom_2", NormalizeLocation("Bedroom #2"))
	assert.Empty(t, NormalizeLocation("  "))
}
