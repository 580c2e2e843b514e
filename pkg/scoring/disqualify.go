package scoring

// checkDisqualifiers scans the ethics and preference answers for automatic
// reject conditions. Every match raises a critical flag.
func checkDisqualifiers(answers AnswerSet) (disqualified bool, flags []Flag) {
	for _, d := range ethicsDisqualifiers {
		if answers.Ethics[d.Question] != ethicsDisqualifyingOption {
			continue
		}

		flags = append(flags, Flag{
			Severity:    SeverityCritical,
			Section:     SectionEthics,
			Question:    d.Question,
			Description: d.Description,
		})
	}

	for _, d := range preferenceDisqualifiers {
		if !answers.Preference[d.Question].IsDisagreement() {
			continue
		}

		flags = append(flags, Flag{
			Severity:    SeverityCritical,
			Section:     SectionPreference,
			Question:    d.Question,
			Description: d.Description,
		})
	}

	disqualified = len(flags) > 0

	return disqualified, flags
}
