package store

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/pkg/errors"
)

// Status is where a candidate is in the assessment.
type Status string

// Record statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ErrNotFound is returned when no record exists for a token.
var ErrNotFound = errors.New("record not found")

// ErrInvalidToken is returned for tokens that cannot be used as keys.
var ErrInvalidToken = errors.New("invalid token")

//nolint:gochecknoglobals // Compiled once
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Record is a candidate's saved answers and, once submitted, the evaluation.
type Record struct {
	Token       string                    `json:"token"`
	Status      Status                    `json:"status"`
	Answers     scoring.AnswerSet         `json:"answers"`
	Result      *scoring.Result           `json:"result,omitempty"`
	Summary     *scoring.ExecutiveSummary `json:"summary,omitempty"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	SubmittedAt *time.Time                `json:"submitted_at,omitempty"`
}

// Store persists candidate records keyed by access token.
type Store interface {
	Get(ctx context.Context, token string) (Record, error)
	Put(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// ValidateToken checks that a token is non-empty and made of letters,
// digits, '-' and '_' only.
func ValidateToken(token string) (err error) {
	if !tokenPattern.MatchString(token) {
		err = errors.Wrapf(ErrInvalidToken, "%q", token)
		return err
	}
	return err
}

// NewRecord returns a pending record for token.
func NewRecord(token string) (record Record) {
	record = Record{
		Token:     token,
		Status:    StatusPending,
		UpdatedAt: time.Now().UTC(),
	}
	return record
}

// Completed reports whether the record has been submitted.
func (r Record) Completed() (result bool) {
	result = r.Status == StatusCompleted
	return result
}

// sortRecords orders records by token so listings are stable.
func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Token < records[j].Token
	})
}

// cloneRecord returns a copy of r that shares no maps, slices or pointers
// with it.
func cloneRecord(r Record) (out Record) {
	out = r
	out.Answers = cloneAnswers(r.Answers)

	if r.Result != nil {
		result := *r.Result
		result.Flags = cloneSlice(r.Result.Flags)
		result.Insights = cloneSlice(r.Result.Insights)
		if r.Result.Details != nil {
			details := *r.Result.Details
			result.Details = &details
		}
		out.Result = &result
	}

	if r.Summary != nil {
		summary := *r.Summary
		summary.Strengths = cloneSlice(r.Summary.Strengths)
		summary.Weaknesses = cloneSlice(r.Summary.Weaknesses)
		out.Summary = &summary
	}

	if r.SubmittedAt != nil {
		submitted := *r.SubmittedAt
		out.SubmittedAt = &submitted
	}

	return out
}

// cloneSlice copies in, keeping nil and empty slices distinct.
func cloneSlice[T any](in []T) (out []T) {
	if in == nil {
		return out
	}
	out = make([]T, len(in))
	copy(out, in)
	return out
}

// cloneAnswers copies the section maps so stored records do not alias the
// caller's maps.
func cloneAnswers(in scoring.AnswerSet) (out scoring.AnswerSet) {
	if in.Behavioral != nil {
		out.Behavioral = make(map[int]scoring.Selection, len(in.Behavioral))
		for k, v := range in.Behavioral {
			out.Behavioral[k] = v
		}
	}
	if in.Preference != nil {
		out.Preference = make(map[int]scoring.Level, len(in.Preference))
		for k, v := range in.Preference {
			out.Preference[k] = v
		}
	}
	if in.Ethics != nil {
		out.Ethics = make(map[int]scoring.Letter, len(in.Ethics))
		for k, v := range in.Ethics {
			out.Ethics[k] = v
		}
	}
	if in.Aptitude != nil {
		out.Aptitude = make(map[int]int, len(in.Aptitude))
		for k, v := range in.Aptitude {
			out.Aptitude[k] = v
		}
	}
	return out
}
