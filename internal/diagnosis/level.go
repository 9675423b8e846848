package diagnosis

// Band maps an inclusive percentage range to a maturity level label.
type Band struct {
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

func (b Band) contains(pct int) bool {
	return pct >= b.Min && pct <= b.Max
}

// LevelFor returns the band containing pct. Percentages below every band
// map to the lowest band, above every band to the highest.
// ok is false only when bands is empty.
func LevelFor(pct int, bands []Band) (band Band, ok bool) {
	if len(bands) == 0 {
		return Band{}, false
	}
	lowest, highest := bands[0], bands[0]
	for _, b := range bands {
		if b.contains(pct) {
			return b, true
		}
		if b.Min < lowest.Min {
			lowest = b
		}
		if b.Max > highest.Max {
			highest = b
		}
	}
	if pct < lowest.Min {
		return lowest, true
	}
	if pct > highest.Max {
		return highest, true
	}
	// gap between bands: take the closest band below
	best := lowest
	for _, b := range bands {
		if b.Max < pct && b.Max > best.Max {
			best = b
		}
	}
	return best, true
}

// Summary holds the headline figures of a classification.
type Summary struct {
	OverallPercentage int    `json:"overall_percentage"`
	Level             string `json:"level"`
	LevelDescription  string `json:"level_description,omitempty"`
	PositiveCount     int    `json:"positive_count"`
	ImprovementCount  int    `json:"improvement_count"`
}

// ComputeSummary derives the summary of res using bands for the level.
func ComputeSummary(res Result, bands []Band) Summary {
	s := Summary{
		OverallPercentage: res.OverallPercentage,
		PositiveCount:     len(res.Positive),
		ImprovementCount:  len(res.Improvement),
	}
	if band, ok := LevelFor(res.OverallPercentage, bands); ok {
		s.Level = band.Label
		s.LevelDescription = band.Description
	}
	return s
}
