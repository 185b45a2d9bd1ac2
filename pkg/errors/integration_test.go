package errors_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// TestErrorWrappingCompatibility tests Go 1.13+ error wrapping with our custom types
func TestErrorWrappingCompatibility(t *testing.T) {
	originalErr := scigoErrors.NewNotFittedError("TestModel", "Predict")
	wrappedErr := fmt.Errorf("pipeline step failed: %w", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Errorf("errors.Is failed to identify wrapped error")
	}
	if !errors.Is(wrappedErr, scigoErrors.ErrNotFitted) {
		t.Errorf("errors.Is failed to match ErrNotFitted")
	}

	var notFittedErr *scigoErrors.NotFittedError
	if !errors.As(wrappedErr, &notFittedErr) {
		t.Fatalf("errors.As failed to extract NotFittedError")
	}
	if notFittedErr.ModelName != "TestModel" {
		t.Errorf("expected ModelName 'TestModel', got '%s'", notFittedErr.ModelName)
	}
}

// TestCombinedErrorTypes tests mixing custom and standard errors
func TestCombinedErrorTypes(t *testing.T) {
	stdErr := fmt.Errorf("standard error")
	customErr := scigoErrors.NewModelError("TestOp", "test failure", stdErr)
	wrappedErr := fmt.Errorf("operation context: %w", customErr)

	if !errors.Is(wrappedErr, stdErr) {
		t.Errorf("failed to find standard error in chain")
	}

	var modelErr *scigoErrors.ModelError
	if !errors.As(wrappedErr, &modelErr) {
		t.Fatalf("failed to extract ModelError")
	}
	if modelErr.Unwrap() != stdErr {
		t.Errorf("ModelError.Unwrap() didn't return expected error")
	}
}

// TestSentinelErrors tests that each error kind stays distinct
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant []error
	}{
		{
			name:    "invalid input",
			err:     scigoErrors.NewModelError("Trainer.Start", "empty", scigoErrors.ErrInvalidInput),
			want:    scigoErrors.ErrInvalidInput,
			notWant: []error{scigoErrors.ErrMissingLabel, scigoErrors.ErrMalformedRow},
		},
		{
			name:    "missing label",
			err:     scigoErrors.NewModelError("Trainer.Start", "no label", scigoErrors.ErrMissingLabel),
			want:    scigoErrors.ErrMissingLabel,
			notWant: []error{scigoErrors.ErrInvalidInput, scigoErrors.ErrMalformedRow},
		},
		{
			name:    "malformed row",
			err:     scigoErrors.NewModelError("NormalizeStrict", "bad cell", scigoErrors.ErrMalformedRow),
			want:    scigoErrors.ErrMalformedRow,
			notWant: []error{scigoErrors.ErrInvalidInput, scigoErrors.ErrMissingLabel},
		},
		{
			name:    "validation error is invalid input",
			err:     scigoErrors.NewValidationError("label", "must be 0 or 1", 2.0),
			want:    scigoErrors.ErrInvalidInput,
			notWant: []error{scigoErrors.ErrMissingLabel},
		},
		{
			name:    "dimension error is invalid input",
			err:     scigoErrors.NewDimensionError("AUC", 4, 3, 0),
			want:    scigoErrors.ErrInvalidInput,
			notWant: []error{scigoErrors.ErrNotFitted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.want) {
				t.Errorf("expected %v in chain of %v", tt.want, wrapped)
			}
			for _, other := range tt.notWant {
				if errors.Is(wrapped, other) {
					t.Errorf("unexpected %v in chain of %v", other, wrapped)
				}
			}
		})
	}
}

func TestRecover(t *testing.T) {
	f := func() (err error) {
		defer scigoErrors.Recover(&err, "Op")
		var m map[string]int
		m["x"] = 1 // panics
		return nil
	}
	if err := f(); err == nil {
		t.Fatal("expected panic to be converted to an error")
	}

	g := func() (err error) {
		defer scigoErrors.Recover(&err, "Op")
		return nil
	}
	if err := g(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckScalarAndWarn(t *testing.T) {
	if err := scigoErrors.CheckScalar("w", 1.5, 1); err != nil {
		t.Errorf("finite value rejected: %v", err)
	}
	if err := scigoErrors.CheckScalar("w", math.NaN(), 1); err == nil {
		t.Error("NaN accepted")
	}
	if err := scigoErrors.CheckScalar("w", math.Inf(-1), 1); err == nil {
		t.Error("-Inf accepted")
	}

	prev := scigoErrors.WarningHandler
	defer func() { scigoErrors.WarningHandler = prev }()

	var got []error
	scigoErrors.WarningHandler = func(err error) { got = append(got, err) }
	scigoErrors.Warn(nil)
	scigoErrors.Warn(scigoErrors.NewConvergenceWarning("LogisticRegression", 100, "maximum number of iterations reached"))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
}
