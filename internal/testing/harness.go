// Package harness runs differential validation cases across engines.
package harness

import (
	"cmp"
	"errors"
	"slices"
)

var errNilEngine = errors.New("harness: nil engine or validator")

// Outcome is the engine-neutral result of validating one document.
type Outcome struct {
	// Keywords lists failing keywords when the engine reports them in this
	// module's vocabulary; nil means not comparable.
	Keywords []string
	Valid    bool
}

// Validator validates one JSON document.
type Validator interface {
	Validate(doc []byte) (Outcome, error)
}

// Engine compiles a schema and returns a validator.
type Engine interface {
	Load(schema []byte) (Validator, error)
}

// Case describes one differential validation scenario.
type Case struct {
	Name     string
	Schema   []byte
	Document []byte
}

// Result captures load and validate outcomes.
type Result struct {
	LoadErr     error
	ValidateErr error
	Outcome     Outcome
}

// Diff stores side-by-side outcomes.
type Diff struct {
	Left  Result
	Right Result
}

// Equal reports whether both sides are equivalent.
func (d Diff) Equal() bool {
	return Equivalent(d.Left, d.Right)
}

// RunCase executes one engine against one case.
func RunCase(engine Engine, tc Case) Result {
	if engine == nil {
		return Result{LoadErr: errNilEngine}
	}
	validator, err := engine.Load(tc.Schema)
	if err != nil {
		return Result{LoadErr: err}
	}
	if validator == nil {
		return Result{LoadErr: errNilEngine}
	}
	outcome, err := validator.Validate(tc.Document)
	return Result{Outcome: outcome, ValidateErr: err}
}

// Compare runs both engines and returns a diff.
func Compare(left, right Engine, tc Case) Diff {
	return Diff{
		Left:  RunCase(left, tc),
		Right: RunCase(right, tc),
	}
}

// Equivalent checks whether two results are behaviorally equivalent. Error
// texts differ between engines, so only the presence of errors is compared.
func Equivalent(left, right Result) bool {
	if (left.LoadErr == nil) != (right.LoadErr == nil) {
		return false
	}
	if left.LoadErr != nil {
		return true
	}
	if (left.ValidateErr == nil) != (right.ValidateErr == nil) {
		return false
	}
	if left.ValidateErr != nil {
		return true
	}
	if left.Outcome.Valid != right.Outcome.Valid {
		return false
	}
	if left.Outcome.Keywords == nil || right.Outcome.Keywords == nil {
		return true
	}
	return slices.Equal(sortedKeywords(left.Outcome.Keywords), sortedKeywords(right.Outcome.Keywords))
}

func sortedKeywords(keywords []string) []string {
	out := slices.Clone(keywords)
	slices.SortStableFunc(out, cmp.Compare[string])
	return out
}
