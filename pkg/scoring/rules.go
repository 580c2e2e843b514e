package scoring

// behavioralAxisTable maps a "most" selection to an axis for each of the ten
// question positions (index 0 is question 1).
//
//nolint:gochecknoglobals // Scoring configuration constants
var behavioralAxisTable = map[Letter][10]Axis{
	LetterA: {AxisS, AxisS, AxisS, AxisC, AxisC, AxisS, AxisC, AxisC, AxisC, AxisS},
	LetterB: {AxisD, AxisD, AxisI, AxisI, AxisI, AxisI, AxisI, AxisS, AxisI, AxisC},
	LetterC: {AxisI, AxisS, AxisD, AxisD, AxisD, AxisD, AxisD, AxisI, AxisD, AxisD},
	LetterD: {AxisC, AxisC, AxisC, AxisC, AxisS, AxisS, AxisS, AxisD, AxisS, AxisI},
}

// axisOrder is the fixed order used for iteration and tie-breaking.
//
//nolint:gochecknoglobals // Scoring configuration constants
var axisOrder = []Axis{AxisD, AxisI, AxisS, AxisC}

// axisRule is the ideal value and deviation weight of one axis.
type axisRule struct {
	Ideal  int
	Weight int
}

// idealProfile favors high steadiness and conscientiousness with low dominance.
//
//nolint:gochecknoglobals // Scoring configuration constants
var idealProfile = map[Axis]axisRule{
	AxisS: {Ideal: 8, Weight: 2},
	AxisC: {Ideal: 7, Weight: 2},
	AxisD: {Ideal: 3, Weight: 3},
	AxisI: {Ideal: 5, Weight: 1},
}

// disqualifier is an answer that vetoes the candidate outright.
type disqualifier struct {
	Question    int
	Description string
}

// ethicsDisqualifiers are scenario questions where option A disqualifies.
//
//nolint:gochecknoglobals // Scoring configuration constants
var ethicsDisqualifiers = []disqualifier{
	{Question: 1, Description: "Accepts work without an invoice - tax evasion"},
	{Question: 4, Description: "Takes leftover material without permission - theft"},
}

// ethicsDisqualifyingOption is the option that triggers ethicsDisqualifiers.
const ethicsDisqualifyingOption = LetterA

// preferenceDisqualifiers are preference questions where any disagreement
// disqualifies.
//
//nolint:gochecknoglobals // Scoring configuration constants
var preferenceDisqualifiers = []disqualifier{
	{Question: 5, Description: "Would not follow safety rules"},
	{Question: 11, Description: "Would not help an injured coworker"},
	{Question: 13, Description: "Would not return extra material"},
}

// preferenceQuestions is the number of questions in the preference instrument.
const preferenceQuestions = 15

// preferenceNegative lists the questions where disagreement is desirable.
//
//nolint:gochecknoglobals // Scoring configuration constants
var preferenceNegative = map[int]bool{
	7: true,
}

// preferenceDeduction is the penalty for an undesirable preference answer.
const preferenceDeduction = 2

// ethicsCorrect is the ethical answer per scenario.
//
//nolint:gochecknoglobals // Scoring configuration constants
var ethicsCorrect = map[int]Letter{
	1: LetterB, // decline work without an invoice
	2: LetterB, // report a damaged tool
	3: LetterB, // decline a personal loan from a client
	4: LetterB, // leave leftover material
	5: LetterA, // report an accident immediately
}

// ethicsQuestions is the number of scenarios.
const ethicsQuestions = 5

// ethicsDeduction is the penalty per wrong scenario answer.
const ethicsDeduction = 5

// aptitudeMaxLevel is the top of the self-rating scale.
const aptitudeMaxLevel = 4

// aptitudeLowLevel is the level below which knowledge is flagged as low.
const aptitudeLowLevel = 2

// Profile thresholds for flags, insights and the executive summary.
const (
	insightHigh      = 6 // axis > 6 is a strength statement
	insightLow       = 4 // axis < 4 is a concern statement
	summaryAxisHigh  = 7 // axis > 7 feeds strengths (S, C) or weaknesses (D)
	dominanceWarning = 6
	stabilityWarning = 4
)

// axisInsight holds the statements for one axis.
type axisInsight struct {
	High string
	Low  string
}

//nolint:gochecknoglobals // Scoring configuration constants
var axisInsights = map[Axis]axisInsight{
	AxisD: {High: "Tends to be dominant and direct", Low: "May struggle to make quick decisions"},
	AxisI: {High: "Good social and communication skills", Low: "Prefers to work independently"},
	AxisS: {High: "Stable, reliable and team oriented", Low: "May struggle with routine tasks"},
	AxisC: {High: "Detail oriented, precise and follows rules", Low: "May be less detail oriented or careless"},
}

// sectionRatio pairs a section with strength and weakness ratio thresholds.
type sectionRatio struct {
	Section     Section
	StrongAbove float64
	Strength    string
	WeakBelow   float64
	Weakness    string
}

//nolint:gochecknoglobals // Scoring configuration constants
var summaryRatios = []sectionRatio{
	{Section: SectionBehavioral, StrongAbove: 0.8, Strength: "Behavioral profile well suited to the role", WeakBelow: 0.5, Weakness: "Behavioral profile not aligned with the role"},
	{Section: SectionPreference, StrongAbove: 0.8, Strength: "Excellent work attitudes", WeakBelow: 0.5, Weakness: "Questionable work attitudes"},
	{Section: SectionEthics, StrongAbove: 0.9, Strength: "High integrity and work ethic", WeakBelow: 0.6, Weakness: "Possible ethical issues"},
	{Section: SectionAptitude, StrongAbove: 0.7, Strength: "Good technical knowledge", WeakBelow: 0.5, Weakness: "Insufficient technical knowledge"},
}

// Messages attached to results.
const (
	ReasonDisqualified     = "disqualified by critical flags"
	messageDisqualified    = "Candidate gave answers that disqualify automatically"
	messageCritical        = "Candidate shows critical unethical behavior"
	messageHire            = "Excellent candidate, meets every criterion"
	messageHireReservation = "Good candidate, consider an extended probation period"
	messageSecondInterview = "Candidate requires additional evaluation"
	messageReject          = "Candidate does not meet the minimum requirements"
)
