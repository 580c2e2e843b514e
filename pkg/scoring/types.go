package scoring

// Letter identifies a statement group (behavioral) or an option (ethics).
type Letter string

// Statement groups and scenario options.
const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Level is a response on the five-point agreement scale.
type Level string

// Agreement levels, ordered from strongest disagreement to strongest agreement.
const (
	StronglyDisagree Level = "SD"
	Disagree         Level = "D"
	Neutral          Level = "N"
	Agree            Level = "A"
	StronglyAgree    Level = "SA"
)

// IsDisagreement reports whether the level is Disagree or StronglyDisagree.
func (l Level) IsDisagreement() (result bool) {
	result = l == Disagree || l == StronglyDisagree
	return result
}

// IsAgreement reports whether the level is Agree or StronglyAgree.
func (l Level) IsAgreement() (result bool) {
	result = l == Agree || l == StronglyAgree
	return result
}

// Selection is one forced-choice answer: the statement group picked as most
// and least descriptive.
type Selection struct {
	Most  Letter `json:"most,omitempty"`
	Least Letter `json:"least,omitempty"`
}

// AnswerSet is a candidate's answers, keyed by question number per section.
// Nil sections are treated as empty.
type AnswerSet struct {
	Behavioral map[int]Selection `json:"behavioral,omitempty"`
	Preference map[int]Level     `json:"preference,omitempty"`
	Ethics     map[int]Letter    `json:"ethics,omitempty"`
	Aptitude   map[int]int       `json:"aptitude,omitempty"`
}

// Section names an instrument section.
type Section string

// Instrument sections.
const (
	SectionBehavioral Section = "behavioral"
	SectionPreference Section = "preference"
	SectionEthics     Section = "ethics"
	SectionAptitude   Section = "aptitude"
)

// Severity classifies a flag.
type Severity string

// Flag severities.
const (
	SeverityCritical      Severity = "CRITICAL"
	SeverityWarning       Severity = "WARNING"
	SeverityInformational Severity = "INFORMATIONAL"
)

// Flag is a risk indicator raised while scoring.
type Flag struct {
	Severity    Severity `json:"severity"`
	Section     Section  `json:"section"`
	Question    int      `json:"question,omitempty"` // 0 when the flag is not tied to a question
	Description string   `json:"description"`
}

// Axis is one of the four behavioral dimensions.
type Axis string

// Behavioral axes, in tie-break order.
const (
	AxisD Axis = "D" // Dominance / assertiveness
	AxisI Axis = "I" // Influence
	AxisS Axis = "S" // Steadiness
	AxisC Axis = "C" // Conscientiousness
)

// Profile holds the normalized axis scores, each 0-10.
type Profile struct {
	D int `json:"D"`
	I int `json:"I"`
	S int `json:"S"`
	C int `json:"C"`
}

// Recommendation is the hiring tier.
type Recommendation string

// Recommendation tiers.
const (
	RecommendationHire                 Recommendation = "HIRE"
	RecommendationHireWithReservations Recommendation = "HIRE_WITH_RESERVATIONS"
	RecommendationSecondInterview      Recommendation = "SECOND_INTERVIEW"
	RecommendationReject               Recommendation = "REJECT"
)

// RiskLevel accompanies a recommendation.
type RiskLevel string

// Risk levels.
const (
	RiskLow       RiskLevel = "LOW"
	RiskMediumLow RiskLevel = "MEDIUM_LOW"
	RiskMedium    RiskLevel = "MEDIUM"
	RiskHigh      RiskLevel = "HIGH"
)

// State is the outcome of an evaluation.
type State string

// Evaluation states. Pending is only observed inside the engine.
const (
	StatePending      State = "PENDING"
	StateDisqualified State = "DISQUALIFIED"
	StateScored       State = "SCORED"
)

// SectionScores holds the points obtained per section.
type SectionScores struct {
	Behavioral float64 `json:"behavioral"`
	Preference float64 `json:"preference"`
	Ethics     float64 `json:"ethics"`
	Aptitude   float64 `json:"aptitude"`
}

// Details records the inputs to the aggregate so a result can be audited.
type Details struct {
	SectionMax    SectionMax    `json:"section_max"`
	MaxTotal      float64       `json:"max_total"`
	Obtained      SectionScores `json:"obtained"`
	TotalFlags    int           `json:"total_flags"`
	CriticalFlags int           `json:"critical_flags"`
}

// Result is the output of one evaluation.
type Result struct {
	State          State          `json:"state"`
	Scores         SectionScores  `json:"scores"`
	Total          float64        `json:"total"`
	Percentage     int            `json:"percentage"`
	Profile        Profile        `json:"profile"`
	DominantType   string         `json:"dominant_type,omitempty"`
	Flags          []Flag         `json:"flags"`
	Recommendation Recommendation `json:"recommendation"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Message        string         `json:"message,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Insights       []string       `json:"insights"`
	Details        *Details       `json:"details,omitempty"`
}

// CriticalCount returns the number of critical flags in the result.
func (r Result) CriticalCount() (count int) {
	for _, f := range r.Flags {
		if f.Severity == SeverityCritical {
			count++
		}
	}
	return count
}

// ExecutiveSummary is the condensed view of a result used by reviewers.
type ExecutiveSummary struct {
	Recommendation Recommendation `json:"recommendation"`
	Total          float64        `json:"total"`
	MaxTotal       float64        `json:"max_total"`
	Percentage     int            `json:"percentage"`
	DominantType   string         `json:"dominant_type,omitempty"`
	FlagCount      int            `json:"flag_count"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	RiskLevel      RiskLevel      `json:"risk_level"`
}
