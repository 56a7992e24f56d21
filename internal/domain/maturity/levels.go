package maturity

import "strings"

// Canonical maturity level names, ordered by score.
const (
	LevelAssociate = "Associate"
	LevelOne       = "Level 1"
	LevelTwo       = "Level 2"
	LevelSenior    = "Senior Level"
	LevelLead      = "Lead"
)

// Band is the numeric range a level spans on the 0.0-4.0 scale.
type Band struct {
	Name string
	Min  float64
	Max  float64
}

// bands are the five fixed growth bands. The cut points double as the
// LevelBand thresholds: a score below a band's Min belongs to the band
// beneath it.
var bands = []Band{
	{Name: LevelAssociate, Min: 0.0, Max: 0.7},
	{Name: LevelOne, Min: 0.8, Max: 1.7},
	{Name: LevelTwo, Min: 1.8, Max: 2.7},
	{Name: LevelSenior, Min: 2.8, Max: 3.7},
	{Name: LevelLead, Min: 3.8, Max: 4.0},
}

// canonical maps normalized level names to scores for exact lookups.
var canonical = map[string]int{
	"associate":    0,
	"level 1":      1,
	"level 2":      2,
	"senior level": 3,
	"senior":       3,
	"lead":         4,
}

// substringOrder is the fallback matching order for non-canonical
// names. "Senior Level" must not match the digit patterns, and "lead"
// must come last so "Senior Lead" resolves as senior.
var substringOrder = []struct {
	fragment string
	score    int
}{
	{"associate", 0},
	{"level 1", 1},
	{"level 2", 2},
	{"senior", 3},
	{"lead", 4},
}

// ParseLevel resolves a level name to its numeric score. Exact
// (case-insensitive) canonical names resolve first; other names fall
// back to substring matching. The second return is false when the name
// matches nothing.
func ParseLevel(name string) (int, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return 0, false
	}
	if score, ok := canonical[n]; ok {
		return score, true
	}
	for _, m := range substringOrder {
		if strings.Contains(n, m.fragment) {
			return m.score, true
		}
	}
	return 0, false
}

// BandFor returns the band a level name belongs to, resolving the name
// through ParseLevel.
func BandFor(name string) (Band, bool) {
	score, ok := ParseLevel(name)
	if !ok {
		return Band{}, false
	}
	return bands[score], true
}

// BandForScore maps a 0.0-4.0 average onto its named band. The cut
// points are spelled out rather than derived from the band maxima so
// the comparisons stay exact against one-decimal rounded scores.
func BandForScore(avg float64) Band {
	switch {
	case avg < 0.8:
		return bands[0]
	case avg < 1.8:
		return bands[1]
	case avg < 2.8:
		return bands[2]
	case avg < 3.8:
		return bands[3]
	default:
		return bands[4]
	}
}
