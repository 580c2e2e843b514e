package scoring

import (
	"github.com/pkg/errors"
)

// Engine evaluates answer sets. It holds only immutable parameters and is
// safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given parameters.
func NewEngine(params Params) (engine *Engine, err error) {
	err = params.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid scoring parameters")
		return engine, err
	}

	engine = &Engine{params: params}
	return engine, err
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() (params Params) {
	params = e.params
	return params
}

// Evaluate scores an answer set. The disqualification check runs first and,
// when it raises any critical flag, the evaluation ends in the Disqualified
// state without scoring a single section. Otherwise every section is scored
// and the result is classified.
func (e *Engine) Evaluate(answers AnswerSet) (result Result) {
	result = Result{
		State:    StatePending,
		Flags:    []Flag{},
		Insights: []string{},
	}

	disqualified, critical := checkDisqualifiers(answers)
	result.Flags = append(result.Flags, critical...)

	if disqualified {
		result.State = StateDisqualified
	} else {
		result.State = StateScored
	}

	switch result.State {
	case StateDisqualified:
		e.finishDisqualified(&result)
	case StateScored:
		e.finishScored(answers, &result)
	}

	return result
}

func (e *Engine) finishDisqualified(result *Result) {
	result.Recommendation = RecommendationReject
	result.RiskLevel = RiskHigh
	result.Reason = ReasonDisqualified
	result.Message = messageDisqualified
	result.Details = e.details(*result)
}

func (e *Engine) finishScored(answers AnswerSet, result *Result) {
	limits := e.params.SectionMax

	behavioral, profile, behavioralFlags := scoreBehavioral(answers.Behavioral, limits.Behavioral)
	preference, preferenceFlags := scorePreference(answers.Preference, limits.Preference)
	ethics, ethicsFlags := scoreEthics(answers.Ethics, limits.Ethics)
	aptitude, aptitudeFlags := scoreAptitude(answers.Aptitude, limits.Aptitude, e.params.AptitudeQuestions)

	result.Flags = append(result.Flags, behavioralFlags...)
	result.Flags = append(result.Flags, preferenceFlags...)
	result.Flags = append(result.Flags, ethicsFlags...)
	result.Flags = append(result.Flags, aptitudeFlags...)

	result.Profile = profile
	result.Scores = SectionScores{
		Behavioral: behavioral,
		Preference: preference,
		Ethics:     ethics,
		Aptitude:   aptitude,
	}

	result.Total = roundHalfUp((behavioral+preference+ethics+aptitude)*10) / 10
	result.Percentage = e.percentage(result.Total)

	result.Recommendation, result.RiskLevel, result.Message = e.classify(result.Percentage, result.CriticalCount())

	result.DominantType = profile.DominantType()
	result.Insights = profileInsights(profile)
	result.Details = e.details(*result)
}

// percentage returns total as a whole percentage of the maximum, clamped to
// 0..100.
func (e *Engine) percentage(total float64) (pct int) {
	pct = int(roundHalfUp(total / float64(e.params.SectionMax.Total()) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// classify maps a percentage onto a tier. Critical flags force a rejection
// regardless of percentage.
func (e *Engine) classify(percentage, criticalFlags int) (rec Recommendation, risk RiskLevel, message string) {
	t := e.params.Thresholds

	switch {
	case criticalFlags > 0:
		rec, risk, message = RecommendationReject, RiskHigh, messageCritical
	case percentage >= t.Hire:
		rec, risk, message = RecommendationHire, RiskLow, messageHire
	case percentage >= t.HireWithReservations:
		rec, risk, message = RecommendationHireWithReservations, RiskMediumLow, messageHireReservation
	case percentage >= t.SecondInterview:
		rec, risk, message = RecommendationSecondInterview, RiskMedium, messageSecondInterview
	default:
		rec, risk, message = RecommendationReject, RiskHigh, messageReject
	}

	return rec, risk, message
}

func (e *Engine) details(result Result) (details *Details) {
	details = &Details{
		SectionMax:    e.params.SectionMax,
		MaxTotal:      float64(e.params.SectionMax.Total()),
		Obtained:      result.Scores,
		TotalFlags:    len(result.Flags),
		CriticalFlags: result.CriticalCount(),
	}
	return details
}

// profileInsights returns a strength statement for every axis above 6 and a
// concern for every axis below 4. Strengths come first, both in D, I, S, C
// order.
func profileInsights(profile Profile) (insights []string) {
	insights = []string{}

	for _, axis := range axisOrder {
		if profile.Get(axis) > insightHigh {
			insights = append(insights, axisInsights[axis].High)
		}
	}

	for _, axis := range axisOrder {
		if profile.Get(axis) < insightLow {
			insights = append(insights, axisInsights[axis].Low)
		}
	}

	return insights
}
