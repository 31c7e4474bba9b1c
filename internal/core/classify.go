package core

import "strings"

// Rules controls which transactions qualify for each bucket. The defaults
// mirror the platform's Jõhvi div-01 track; other campuses can override them
// through configuration.
type Rules struct {
	// TrackPrefix must appear in a level record's path for the record to
	// count towards the displayed level.
	TrackPrefix string

	// TrainingMarker excludes introductory/training experience: any xp
	// record whose path contains it is dropped from all totals and charts.
	TrainingMarker string
}

// DefaultRules returns the rules for the default program track.
func DefaultRules() Rules {
	return Rules{
		TrackPrefix:    "/johvi/div-01/",
		TrainingMarker: "piscine",
	}
}

// Classified holds the typed buckets produced by Classify, each preserving
// the original chronological order.
type Classified struct {
	Experience     []Transaction
	Levels         []Transaction
	AuditsReceived []Transaction
}

// Classify partitions transactions into experience gains, level-up markers
// and audit-received events. It never fails: an empty input yields empty
// buckets.
func Classify(txs []Transaction, rules Rules) Classified {
	var c Classified
	for _, tx := range txs {
		switch {
		case tx.Type == "xp" && !strings.Contains(tx.Path, rules.TrainingMarker):
			c.Experience = append(c.Experience, tx)
		case tx.Type == "level" && strings.Contains(tx.Path, rules.TrackPrefix):
			c.Levels = append(c.Levels, tx)
		case tx.Type == "up":
			c.AuditsReceived = append(c.AuditsReceived, tx)
		}
	}
	return c
}
