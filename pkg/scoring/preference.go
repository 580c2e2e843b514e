package scoring

// scorePreference deducts points for undesirable answers. Positive questions
// penalize disagreement; negative questions penalize agreement and raise a
// warning.
func scorePreference(preference map[int]Level, sectionMax int) (score float64, flags []Flag) {
	points := sectionMax

	for question := 1; question <= preferenceQuestions; question++ {
		level := preference[question]

		if !preferenceNegative[question] {
			if level.IsDisagreement() {
				points -= preferenceDeduction
			}
			continue
		}

		if level.IsAgreement() {
			points -= preferenceDeduction
			flags = append(flags, Flag{
				Severity:    SeverityWarning,
				Section:     SectionPreference,
				Question:    question,
				Description: "Prefers working alone, may affect teamwork",
			})
		}
	}

	if points < 0 {
		points = 0
	}
	score = float64(points)

	return score, flags
}
