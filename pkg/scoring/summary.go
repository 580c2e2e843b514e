package scoring

// Get returns the score of one section.
func (s SectionScores) Get(section Section) (score float64) {
	switch section {
	case SectionBehavioral:
		score = s.Behavioral
	case SectionPreference:
		score = s.Preference
	case SectionEthics:
		score = s.Ethics
	case SectionAptitude:
		score = s.Aptitude
	}
	return score
}

// Get returns the maximum of one section.
func (m SectionMax) Get(section Section) (points int) {
	switch section {
	case SectionBehavioral:
		points = m.Behavioral
	case SectionPreference:
		points = m.Preference
	case SectionEthics:
		points = m.Ethics
	case SectionAptitude:
		points = m.Aptitude
	}
	return points
}

// Summarize builds the executive summary of a result. Section and profile
// based statements are only derived for scored results; a disqualified
// result lists its critical flags as weaknesses.
func (e *Engine) Summarize(result Result) (summary ExecutiveSummary) {
	summary = ExecutiveSummary{
		Recommendation: result.Recommendation,
		Total:          result.Total,
		MaxTotal:       float64(e.params.SectionMax.Total()),
		Percentage:     result.Percentage,
		DominantType:   result.DominantType,
		FlagCount:      len(result.Flags),
		Strengths:      []string{},
		Weaknesses:     []string{},
		RiskLevel:      result.RiskLevel,
	}

	if result.State == StateScored {
		summary.Strengths = e.strengths(result)
		summary.Weaknesses = e.weaknesses(result)
	}

	for _, f := range result.Flags {
		if f.Severity == SeverityCritical {
			summary.Weaknesses = append(summary.Weaknesses, f.Description)
		}
	}

	return summary
}

func (e *Engine) strengths(result Result) (strengths []string) {
	strengths = []string{}

	for _, r := range summaryRatios {
		if e.ratio(result, r.Section) > r.StrongAbove {
			strengths = append(strengths, r.Strength)
		}
	}

	if result.Profile.S > summaryAxisHigh {
		strengths = append(strengths, "High stability and reliability")
	}
	if result.Profile.C > summaryAxisHigh {
		strengths = append(strengths, "Oriented to quality and rules")
	}

	return strengths
}

func (e *Engine) weaknesses(result Result) (weaknesses []string) {
	weaknesses = []string{}

	for _, r := range summaryRatios {
		if e.ratio(result, r.Section) < r.WeakBelow {
			weaknesses = append(weaknesses, r.Weakness)
		}
	}

	if result.Profile.D > summaryAxisHigh {
		weaknesses = append(weaknesses, "May have conflicts with authority")
	}
	if result.Profile.S < stabilityWarning {
		weaknesses = append(weaknesses, "Low tolerance for routine")
	}

	return weaknesses
}

func (e *Engine) ratio(result Result, section Section) (ratio float64) {
	ratio = result.Scores.Get(section) / float64(e.params.SectionMax.Get(section))
	return ratio
}
