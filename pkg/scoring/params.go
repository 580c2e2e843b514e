package scoring

import (
	"github.com/pkg/errors"
)

// SectionMax holds the maximum points obtainable per section.
type SectionMax struct {
	Behavioral int `json:"behavioral"`
	Preference int `json:"preference"`
	Ethics     int `json:"ethics"`
	Aptitude   int `json:"aptitude"`
}

// Total returns the sum of all section maxima.
func (m SectionMax) Total() (total int) {
	total = m.Behavioral + m.Preference + m.Ethics + m.Aptitude
	return total
}

// Thresholds are the minimum percentages for each recommendation tier.
// A percentage equal to a threshold belongs to that tier.
type Thresholds struct {
	Hire                 int `json:"hire"`
	HireWithReservations int `json:"hire_with_reservations"`
	SecondInterview      int `json:"second_interview"`
}

// Params are the tunable constants of the engine.
type Params struct {
	SectionMax SectionMax `json:"section_max"`
	Thresholds Thresholds `json:"thresholds"`
	// AptitudeQuestions is the number of questions in the aptitude
	// instrument; the aptitude maximum is split evenly across them.
	AptitudeQuestions int `json:"aptitude_questions"`
}

// DefaultParams returns the standard section maxima (40/30/25/27), tier
// thresholds (80/65/50) and a twelve-question aptitude instrument.
func DefaultParams() (params Params) {
	params = Params{
		SectionMax: SectionMax{
			Behavioral: 40,
			Preference: 30,
			Ethics:     25,
			Aptitude:   27,
		},
		Thresholds: Thresholds{
			Hire:                 80,
			HireWithReservations: 65,
			SecondInterview:      50,
		},
		AptitudeQuestions: 12,
	}
	return params
}

// Validate checks that the parameters describe a usable scoring model.
func (p Params) Validate() (err error) {
	if p.SectionMax.Behavioral <= 0 || p.SectionMax.Preference <= 0 ||
		p.SectionMax.Ethics <= 0 || p.SectionMax.Aptitude <= 0 {
		err = errors.Errorf("section maxima must be positive: %+v", p.SectionMax)
		return err
	}

	if p.AptitudeQuestions <= 0 {
		err = errors.Errorf("aptitude_questions must be positive, got %d", p.AptitudeQuestions)
		return err
	}

	t := p.Thresholds
	if t.Hire > 100 || t.SecondInterview < 0 {
		err = errors.Errorf("thresholds must be within 0..100: %+v", t)
		return err
	}

	if !(t.Hire > t.HireWithReservations && t.HireWithReservations > t.SecondInterview) {
		err = errors.Errorf("thresholds must be strictly descending (hire > hire_with_reservations > second_interview): %+v", t)
		return err
	}

	return err
}
