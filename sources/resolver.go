package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrEmpty marks a candidate whose response decoded fine but contained no
// rows. The resolver treats it exactly like a transport failure: move on to
// the next candidate.
var ErrEmpty = errors.New("well-formed but empty payload")

// Candidate is one fully-specified attempt against one source variant.
type Candidate struct {
	// Name identifies the variant for provenance and logging,
	// e.g. "jolpica current season" or "ergast mirror 2024".
	Name string
	// URL is the complete request URL for this variant.
	URL string
}

// Attempt records the outcome of one candidate for the aggregate error.
type Attempt struct {
	Candidate Candidate
	Err       error
}

// ResolveError aggregates every per-candidate failure after total exhaustion.
type ResolveError struct {
	Attempts []Attempt
}

func (e *ResolveError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Candidate.Name, a.Err))
	}
	return fmt.Sprintf("all %d candidates failed: %s", len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ResolveError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// FetchFunc attempts one candidate. Implementations capture their decoded
// payload themselves and must return ErrEmpty (or wrap it) when the response
// is well-formed but carries no usable rows.
type FetchFunc func(ctx context.Context, cand Candidate) error

// Resolve tries candidates strictly in order and returns the first one whose
// fetch succeeded. No candidate after the winning one is attempted. If every
// candidate fails, the returned error is a *ResolveError listing all of them;
// empty data is never silently passed off as success.
func Resolve(ctx context.Context, log *zap.Logger, cands []Candidate, fetch FetchFunc) (Candidate, error) {
	if len(cands) == 0 {
		return Candidate{}, &ResolveError{}
	}

	attempts := make([]Attempt, 0, len(cands))
	for _, cand := range cands {
		err := fetch(ctx, cand)
		if err == nil {
			return cand, nil
		}
		log.Debug("resolver candidate failed",
			zap.String("candidate", cand.Name),
			zap.Error(err))
		attempts = append(attempts, Attempt{Candidate: cand, Err: err})
	}
	return Candidate{}, &ResolveError{Attempts: attempts}
}
