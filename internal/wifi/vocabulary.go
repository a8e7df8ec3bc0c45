package wifi

import (
	"fmt"
	"strings"
)

// Rank orders ratings from best (0) to worst (4). It is the common ground
// between vocabularies: "okay" and "fair" share rank 2.
type Rank int

const (
	RankExcellent Rank = iota
	RankGood
	RankMiddle
	RankLow
	RankWorst

	rankCount = 5
)

// RankUnknown marks a value no vocabulary recognises.
const RankUnknown Rank = -1

// Vocabulary is an ordered five-word rating scale.
type Vocabulary struct {
	Name    string
	Ratings [rankCount]string
}

var (
	// Standard is the scale the mobile client reports by default.
	Standard = Vocabulary{Name: "standard", Ratings: [rankCount]string{"excellent", "good", "okay", "bad", "marginal"}}

	// Legacy is the scale used by the on-device classifier and decision rules.
	Legacy = Vocabulary{Name: "legacy", Ratings: [rankCount]string{"excellent", "good", "fair", "poor", "very_poor"}}
)

var rankAliases = map[string]Rank{
	"moderate":  RankMiddle,
	"very poor": RankWorst,
	"verypoor":  RankWorst,
}

// ParseVocabulary resolves a configured vocabulary name.
func ParseVocabulary(name string) (Vocabulary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Standard.Name:
		return Standard, nil
	case Legacy.Name:
		return Legacy, nil
	default:
		return Vocabulary{}, fmt.Errorf("unknown classification vocabulary %q (want %q or %q)", name, Standard.Name, Legacy.Name)
	}
}

// Word returns the rating for rank, or "" when out of range.
func (v Vocabulary) Word(rank Rank) string {
	if rank < 0 || int(rank) >= rankCount {
		return ""
	}
	return v.Ratings[rank]
}

// Words lists the ratings best first.
func (v Vocabulary) Words() []string {
	return append([]string(nil), v.Ratings[:]...)
}

// Contains reports whether value is a rating of this vocabulary exactly.
func (v Vocabulary) Contains(value string) bool {
	for _, word := range v.Ratings {
		if word == value {
			return true
		}
	}
	return false
}

// Normalize maps a rating from either vocabulary (or a known alias) onto
// this vocabulary's word of the same rank.
func (v Vocabulary) Normalize(value string) (string, bool) {
	rank := RankOf(value)
	if rank == RankUnknown {
		return "", false
	}
	return v.Ratings[rank], true
}

// RankOf resolves a rating word from any supported vocabulary.
func RankOf(value string) Rank {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return RankUnknown
	}
	for _, vocab := range []Vocabulary{Standard, Legacy} {
		for i, word := range vocab.Ratings {
			if word == key {
				return Rank(i)
			}
		}
	}
	if rank, ok := rankAliases[key]; ok {
		return rank
	}
	return RankUnknown
}
