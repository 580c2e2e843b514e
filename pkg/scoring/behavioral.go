package scoring

import (
	"math"
	"sort"
)

// Get returns the value of one axis.
func (p Profile) Get(axis Axis) (value int) {
	switch axis {
	case AxisD:
		value = p.D
	case AxisI:
		value = p.I
	case AxisS:
		value = p.S
	case AxisC:
		value = p.C
	}
	return value
}

func (p *Profile) add(axis Axis, delta int) {
	switch axis {
	case AxisD:
		p.D += delta
	case AxisI:
		p.I += delta
	case AxisS:
		p.S += delta
	case AxisC:
		p.C += delta
	}
}

// DominantType returns the two highest axes concatenated, highest first.
// Ties keep the D, I, S, C order.
func (p Profile) DominantType() (label string) {
	axes := make([]Axis, len(axisOrder))
	copy(axes, axisOrder)

	sort.SliceStable(axes, func(i, j int) bool {
		return p.Get(axes[i]) > p.Get(axes[j])
	})

	for _, a := range axes[:2] {
		label += string(a)
	}

	return label
}

// buildProfile counts the axis of each "most" selection. Question numbers
// outside the table and unknown letters are ignored.
func buildProfile(behavioral map[int]Selection) (profile Profile) {
	counts := Profile{}

	for question, sel := range behavioral {
		row, ok := behavioralAxisTable[sel.Most]
		if !ok {
			continue
		}

		idx := question - 1
		if idx < 0 || idx >= len(row) {
			continue
		}

		counts.add(row[idx], 1)
	}

	profile = Profile{
		D: normalizeAxis(counts.D),
		I: normalizeAxis(counts.I),
		S: normalizeAxis(counts.S),
		C: normalizeAxis(counts.C),
	}

	return profile
}

// normalizeAxis scales a raw count onto 0-10. The table already produces
// counts on a ten-question base, so this is a pass-through kept as-is.
func normalizeAxis(count int) (value int) {
	value = int(math.Round(float64(count) / 10 * 10))
	return value
}

// scoreBehavioral builds the profile and scores its distance from the ideal.
func scoreBehavioral(behavioral map[int]Selection, sectionMax int) (score float64, profile Profile, flags []Flag) {
	profile = buildProfile(behavioral)

	deviation := 0
	for _, axis := range axisOrder {
		rule := idealProfile[axis]
		diff := profile.Get(axis) - rule.Ideal
		if diff < 0 {
			diff = -diff
		}
		deviation += diff * rule.Weight
	}

	points := sectionMax - deviation
	if points < 0 {
		points = 0
	}
	score = float64(points)

	if profile.D > dominanceWarning {
		flags = append(flags, Flag{
			Severity:    SeverityWarning,
			Section:     SectionBehavioral,
			Description: "Highly dominant profile, may conflict with authority",
		})
	}

	if profile.S < stabilityWarning {
		flags = append(flags, Flag{
			Severity:    SeverityWarning,
			Section:     SectionBehavioral,
			Description: "Low stability, may struggle with routine",
		})
	}

	return score, profile, flags
}
