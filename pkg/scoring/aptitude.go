package scoring

import (
	"fmt"
	"math"
	"sort"
)

// scoreAptitude converts self-rated levels into points. Each question is worth
// sectionMax/questions; a level contributes level/4 of that. The sum is
// rounded to one decimal and never exceeds sectionMax.
func scoreAptitude(aptitude map[int]int, sectionMax, questions int) (score float64, flags []Flag) {
	perQuestion := float64(sectionMax) / float64(questions)

	keys := make([]int, 0, len(aptitude))
	for q := range aptitude {
		keys = append(keys, q)
	}
	sort.Ints(keys)

	total := 0.0
	for _, question := range keys {
		level := clampLevel(aptitude[question])
		total += perQuestion * float64(level) / aptitudeMaxLevel

		if level < aptitudeLowLevel {
			flags = append(flags, Flag{
				Severity:    SeverityInformational,
				Section:     SectionAptitude,
				Question:    question,
				Description: fmt.Sprintf("Low technical knowledge in question %d", question),
			})
		}
	}

	score = roundHalfUp(total*10) / 10
	if score > float64(sectionMax) {
		score = float64(sectionMax)
	}

	return score, flags
}

func clampLevel(level int) (result int) {
	result = level
	if result < 0 {
		result = 0
	}
	if result > aptitudeMaxLevel {
		result = aptitudeMaxLevel
	}
	return result
}

// roundHalfUp rounds to the nearest integer with halves going up, so 24.5
// becomes 25 and -0.5 becomes 0.
func roundHalfUp(v float64) (result float64) {
	result = math.Floor(v + 0.5)
	return result
}
