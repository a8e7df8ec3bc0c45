package wifi

import "strconv"

const (
	Band24GHz = "2.4GHz"
	Band5GHz  = "5GHz"
)

// Thresholds used by the mobile client's on-device classifier.
const (
	signalExcellentDBm = -50
	signalGoodDBm      = -60
	signalFairDBm      = -70
	signalPoorDBm      = -80

	latencyExcellentMs = 20
	latencyGoodMs      = 50
	latencyFairMs      = 100

	bandwidthExcellentMbps = 500
	bandwidthGoodMbps      = 100
	bandwidthFairMbps      = 50
)

// SignalRank grades an RSSI reading in dBm.
func SignalRank(dbm float64) Rank {
	switch {
	case dbm >= signalExcellentDBm:
		return RankExcellent
	case dbm >= signalGoodDBm:
		return RankGood
	case dbm >= signalFairDBm:
		return RankMiddle
	case dbm >= signalPoorDBm:
		return RankLow
	default:
		return RankWorst
	}
}

// LatencyRank grades a round trip in milliseconds. Latency never reaches the worst rank.
func LatencyRank(ms float64) Rank {
	switch {
	case ms < latencyExcellentMs:
		return RankExcellent
	case ms < latencyGoodMs:
		return RankGood
	case ms < latencyFairMs:
		return RankMiddle
	default:
		return RankLow
	}
}

// BandwidthRank grades a link speed in Mbps. Bandwidth never reaches the worst rank.
func BandwidthRank(mbps float64) Rank {
	switch {
	case mbps >= bandwidthExcellentMbps:
		return RankExcellent
	case mbps >= bandwidthGoodMbps:
		return RankGood
	case mbps >= bandwidthFairMbps:
		return RankMiddle
	default:
		return RankLow
	}
}

// BandForFrequency maps a channel frequency in MHz to its band label.
func BandForFrequency(mhz int) string {
	if mhz > 4000 {
		return Band5GHz
	}
	return Band24GHz
}

// BandForNumber reads a bare number as a band label when it is small ("5",
// "2.4") and as a channel frequency in MHz otherwise.
func BandForNumber(value float64) string {
	if value > 100 {
		return BandForFrequency(int(value))
	}
	return NormalizeBand(strconv.FormatFloat(value, 'f', -1, 64))
}

// Ratings is a per-dimension classification expressed in one vocabulary.
type Ratings struct {
	SignalStrength string `json:"signal_strength"`
	Latency        string `json:"latency"`
	Bandwidth      string `json:"bandwidth"`
}

// Classify grades raw readings and spells the result in vocab. A nil reading
// leaves its dimension blank.
func Classify(vocab Vocabulary, signalDBm, latencyMs, linkMbps *float64) Ratings {
	var ratings Ratings
	if signalDBm != nil {
		ratings.SignalStrength = vocab.Word(SignalRank(*signalDBm))
	}
	if latencyMs != nil {
		ratings.Latency = vocab.Word(LatencyRank(*latencyMs))
	}
	if linkMbps != nil {
		ratings.Bandwidth = vocab.Word(BandwidthRank(*linkMbps))
	}
	return ratings
}
