package answers

import (
	"math"
	"strconv"
	"strings"

	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxAptitudeLevel is the top of the aptitude self-rating scale.
const maxAptitudeLevel = 4

// Section keys, English first, then the Spanish names used on the paper forms.
//
//nolint:gochecknoglobals // Ingestion key aliases
var (
	behavioralKeys = []string{"behavioral", "cleaver"}
	preferenceKeys = []string{"preference", "kostick"}
	ethicsKeys     = []string{"ethics", "situaciones"}
	aptitudeKeys   = []string{"aptitude", "aptitudes"}
	mostKeys       = []string{"most", "mas"}
	leastKeys      = []string{"least", "menos"}
	wrapperKeys    = []string{"answers", "respuestas"}
)

//nolint:gochecknoglobals // Ingestion level aliases
var levelAliases = map[string]scoring.Level{
	"SA":                scoring.StronglyAgree,
	"TA":                scoring.StronglyAgree,
	"STRONGLY_AGREE":    scoring.StronglyAgree,
	"STRONGLYAGREE":     scoring.StronglyAgree,
	"A":                 scoring.Agree,
	"AGREE":             scoring.Agree,
	"N":                 scoring.Neutral,
	"NEUTRAL":           scoring.Neutral,
	"D":                 scoring.Disagree,
	"DISAGREE":          scoring.Disagree,
	"SD":                scoring.StronglyDisagree,
	"TD":                scoring.StronglyDisagree,
	"STRONGLY_DISAGREE": scoring.StronglyDisagree,
	"STRONGLYDISAGREE":  scoring.StronglyDisagree,
}

//nolint:gochecknoglobals // Ingestion level aliases
var numericLevels = map[int64]scoring.Level{
	2:  scoring.StronglyAgree,
	1:  scoring.Agree,
	0:  scoring.Neutral,
	-1: scoring.Disagree,
	-2: scoring.StronglyDisagree,
}

// Parse converts a JSON answer document into an AnswerSet. It is lenient:
// unknown sections, question keys, letters and levels are dropped, and
// aptitude levels that are not numeric become 0. Only input that is not a
// JSON object is an error.
//
// Sections may be objects keyed by question number or arrays, where the
// first element is question 1. The document may be wrapped in an "answers"
// object.
func Parse(data []byte) (set scoring.AnswerSet, err error) {
	if !gjson.ValidBytes(data) {
		err = errors.New("answers are not valid JSON")
		return set, err
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		err = errors.Errorf("answers must be a JSON object, got %s", root.Type)
		return set, err
	}

	if wrapped, ok := firstObject(root, wrapperKeys); ok {
		root = wrapped
	}

	if section, ok := firstContainer(root, behavioralKeys); ok {
		set.Behavioral = parseBehavioral(section)
	}
	if section, ok := firstContainer(root, preferenceKeys); ok {
		set.Preference = parsePreference(section)
	}
	if section, ok := firstContainer(root, ethicsKeys); ok {
		set.Ethics = parseEthics(section)
	}
	if section, ok := firstContainer(root, aptitudeKeys); ok {
		set.Aptitude = parseAptitude(section)
	}

	return set, err
}

func firstObject(root gjson.Result, keys []string) (found gjson.Result, ok bool) {
	for _, key := range keys {
		v := root.Get(gjson.Escape(key))
		if v.IsObject() {
			found, ok = v, true
			return found, ok
		}
	}
	return found, ok
}

func firstContainer(root gjson.Result, keys []string) (found gjson.Result, ok bool) {
	for _, key := range keys {
		v := root.Get(gjson.Escape(key))
		if v.IsObject() || v.IsArray() {
			found, ok = v, true
			return found, ok
		}
	}
	return found, ok
}

// questionNumber reads a question number from an object key or an array
// index.
func questionNumber(key gjson.Result) (question int, ok bool) {
	if key.Type == gjson.Number {
		question = int(key.Int()) + 1
		ok = question > 0
		return question, ok
	}

	n, convErr := strconv.Atoi(strings.TrimSpace(key.String()))
	if convErr != nil || n <= 0 {
		return question, ok
	}

	question, ok = n, true
	return question, ok
}

func parseBehavioral(section gjson.Result) (out map[int]scoring.Selection) {
	out = map[int]scoring.Selection{}

	section.ForEach(func(key, value gjson.Result) bool {
		question, ok := questionNumber(key)
		if !ok || !value.IsObject() {
			return true
		}

		sel := scoring.Selection{
			Most:  parseLetter(firstValue(value, mostKeys), "ABCD"),
			Least: parseLetter(firstValue(value, leastKeys), "ABCD"),
		}
		if sel.Most == "" && sel.Least == "" {
			return true
		}

		out[question] = sel
		return true
	})

	return out
}

func parsePreference(section gjson.Result) (out map[int]scoring.Level) {
	out = map[int]scoring.Level{}

	section.ForEach(func(key, value gjson.Result) bool {
		question, ok := questionNumber(key)
		if !ok {
			return true
		}

		level, ok := parseLevel(value)
		if !ok {
			return true
		}

		out[question] = level
		return true
	})

	return out
}

func parseEthics(section gjson.Result) (out map[int]scoring.Letter) {
	out = map[int]scoring.Letter{}

	section.ForEach(func(key, value gjson.Result) bool {
		question, ok := questionNumber(key)
		if !ok {
			return true
		}

		letter := parseLetter(value, "AB")
		if letter == "" {
			return true
		}

		out[question] = letter
		return true
	})

	return out
}

func parseAptitude(section gjson.Result) (out map[int]int) {
	out = map[int]int{}

	section.ForEach(func(key, value gjson.Result) bool {
		question, ok := questionNumber(key)
		if !ok {
			return true
		}

		out[question] = parseAptitudeLevel(value)
		return true
	})

	return out
}

func firstValue(obj gjson.Result, keys []string) (value gjson.Result) {
	for _, key := range keys {
		value = obj.Get(gjson.Escape(key))
		if value.Exists() {
			return value
		}
	}
	return value
}

// parseLetter returns the upper-cased letter when it is one of allowed.
func parseLetter(value gjson.Result, allowed string) (letter scoring.Letter) {
	if value.Type != gjson.String {
		return letter
	}

	s := strings.ToUpper(strings.TrimSpace(value.String()))
	if len(s) != 1 || !strings.Contains(allowed, s) {
		return letter
	}

	letter = scoring.Letter(s)
	return letter
}

func parseLevel(value gjson.Result) (level scoring.Level, ok bool) {
	switch value.Type {
	case gjson.Number:
		// Fractional or out-of-range ratings such as -1.9 are not on the scale.
		if value.Num != math.Trunc(value.Num) || math.Abs(value.Num) > 2 {
			return level, ok
		}
		level, ok = numericLevels[value.Int()]
	case gjson.String:
		key := strings.ToUpper(strings.TrimSpace(value.String()))
		key = strings.ReplaceAll(key, " ", "_")
		level, ok = levelAliases[key]
	}
	return level, ok
}

// parseAptitudeLevel reads a self-rating, clamping it into 0..4 and then
// truncating fractions. Anything that is not a number counts as 0.
func parseAptitudeLevel(value gjson.Result) (level int) {
	switch value.Type {
	case gjson.Number:
		level = clampAptitude(value.Num)
	case gjson.String:
		s := strings.TrimSpace(value.String())
		if f, convErr := strconv.ParseFloat(s, 64); convErr == nil {
			level = clampAptitude(f)
		}
	}

	return level
}

func clampAptitude(f float64) (level int) {
	switch {
	case math.IsNaN(f), f <= 0:
		level = 0
	case f >= maxAptitudeLevel:
		level = maxAptitudeLevel
	default:
		level = int(f)
	}
	return level
}
