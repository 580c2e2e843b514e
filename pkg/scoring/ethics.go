package scoring

import "fmt"

// scoreEthics deducts points for each scenario not answered with the ethical
// option. A missing answer counts as wrong. Scenarios that are also
// disqualifiers raise no warning here.
func scoreEthics(ethics map[int]Letter, sectionMax int) (score float64, flags []Flag) {
	points := sectionMax

	for question := 1; question <= ethicsQuestions; question++ {
		if ethics[question] == ethicsCorrect[question] {
			continue
		}

		points -= ethicsDeduction

		if isEthicsDisqualifier(question) {
			continue
		}

		flags = append(flags, Flag{
			Severity:    SeverityWarning,
			Section:     SectionEthics,
			Question:    question,
			Description: fmt.Sprintf("Unethical answer in scenario %d", question),
		})
	}

	if points < 0 {
		points = 0
	}
	score = float64(points)

	return score, flags
}

func isEthicsDisqualifier(question int) (result bool) {
	for _, d := range ethicsDisqualifiers {
		if d.Question == question {
			result = true
			return result
		}
	}
	return result
}
