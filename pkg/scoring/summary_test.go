package scoring

import (
	"testing"
)

func TestSummarizeStrongCandidate(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Evaluate(strongCandidate())
	summary := engine.Summarize(result)

	if summary.Recommendation != RecommendationHire {
		t.Errorf("Expected HIRE, got %s", summary.Recommendation)
	}

	if summary.MaxTotal != 122 || summary.Total != 101 || summary.Percentage != 83 {
		t.Errorf("Expected 101/122 (83%%), got %v/%v (%d%%)", summary.Total, summary.MaxTotal, summary.Percentage)
	}

	wantStrengths := []string{
		"Excellent work attitudes",
		"High integrity and work ethic",
		"Good technical knowledge",
	}
	assertStrings(t, "strengths", wantStrengths, summary.Strengths)

	// 19/40 is below half.
	wantWeaknesses := []string{"Behavioral profile not aligned with the role"}
	assertStrings(t, "weaknesses", wantWeaknesses, summary.Weaknesses)
}

func TestSummarizeDisqualified(t *testing.T) {
	engine := newTestEngine(t)

	answers := strongCandidate()
	answers.Ethics[4] = LetterA
	answers.Preference[5] = StronglyDisagree

	summary := engine.Summarize(engine.Evaluate(answers))

	if len(summary.Strengths) != 0 {
		t.Errorf("Expected no strengths, got %v", summary.Strengths)
	}

	wantWeaknesses := []string{
		"Takes leftover material without permission - theft",
		"Would not follow safety rules",
	}
	assertStrings(t, "weaknesses", wantWeaknesses, summary.Weaknesses)

	if summary.FlagCount != 2 {
		t.Errorf("Expected 2 flags, got %d", summary.FlagCount)
	}
}

func TestSummarizeProfileStatements(t *testing.T) {
	engine := newTestEngine(t)

	result := Result{
		State:   StateScored,
		Scores:  SectionScores{Behavioral: 30, Preference: 20, Ethics: 20, Aptitude: 15},
		Profile: Profile{D: 8, S: 2, C: 9},
	}

	summary := engine.Summarize(result)

	assertStrings(t, "strengths", []string{"Oriented to quality and rules"}, summary.Strengths)
	assertStrings(t, "weaknesses", []string{"May have conflicts with authority", "Low tolerance for routine"}, summary.Weaknesses)
}

func TestSummarizeWeakSections(t *testing.T) {
	engine := newTestEngine(t)

	result := Result{
		State:   StateScored,
		Scores:  SectionScores{Behavioral: 19, Preference: 14, Ethics: 10, Aptitude: 13},
		Profile: Profile{S: 5},
	}

	summary := engine.Summarize(result)

	want := []string{
		"Behavioral profile not aligned with the role",
		"Questionable work attitudes",
		"Possible ethical issues",
		"Insufficient technical knowledge",
	}
	assertStrings(t, "weaknesses", want, summary.Weaknesses)
}

func assertStrings(t *testing.T, what string, want, got []string) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("Expected %d %s %v, got %d %v", len(want), what, want, len(got), got)
	}

	for i := range want {
		if want[i] != got[i] {
			t.Errorf("Expected %s[%d] %q, got %q", what, i, want[i], got[i])
		}
	}
}
