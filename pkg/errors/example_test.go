package errors_test

import (
	"errors"
	"fmt"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Example demonstrates matching an error kind through wrapping
func Example() {
	// Create a typed error tied to a sentinel
	baseErr := scigoErrors.NewModelError("Trainer.Start", "training data is empty", scigoErrors.ErrInvalidInput)

	// Wrap it with caller context
	opErr := fmt.Errorf("train command: %w", baseErr)

	// Use errors.Is to find the kind
	if errors.Is(opErr, scigoErrors.ErrInvalidInput) {
		fmt.Println("Found invalid input in chain")
	}
	fmt.Println(opErr)

	// Output: Found invalid input in chain
	// train command: combustion: Trainer.Start: training data is empty: invalid input
}

// Example_customErrorTypes demonstrates custom error type handling
func Example_customErrorTypes() {
	// Create a custom error using our error constructors
	dimErr := scigoErrors.NewDimensionError("StandardScaler.Transform", 16, 3, 1)

	// Wrap it with additional context
	wrappedErr := fmt.Errorf("scoring failed: %w", dimErr)

	// Check if error is of specific type using errors.As
	var dimensionErr *scigoErrors.DimensionError
	if errors.As(wrappedErr, &dimensionErr) {
		fmt.Printf("Dimension error: expected %d, got %d\n",
			dimensionErr.Expected, dimensionErr.Got)
	}

	// Output: Dimension error: expected 16, got 3
}

// Example_errorComparison demonstrates error comparison patterns
func Example_errorComparison() {
	notFittedErr := scigoErrors.NewNotFittedError("LogisticRegression", "PredictProba")
	valueErr := scigoErrors.NewValueError("ComputeMetrics", "totalSamples must be positive, got 0")

	var notFitted *scigoErrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Model %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var valErr *scigoErrors.ValueError
	if errors.As(valueErr, &valErr) {
		fmt.Printf("Value error in %s: %s\n", valErr.Op, valErr.Message)
	}

	// Every ValueError is an invalid input
	fmt.Println(errors.Is(valueErr, scigoErrors.ErrInvalidInput))

	// Output: Model LogisticRegression is not fitted for PredictProba
	// Value error in ComputeMetrics: totalSamples must be positive, got 0
	// true
}

// Example_errorLogging demonstrates the message of a chained model error
func Example_errorLogging() {
	baseErr := scigoErrors.NewModelError("LogisticRegression", "convergence failure",
		scigoErrors.ErrNotImplemented)

	opErr := fmt.Errorf("fold 3: %w", baseErr)

	// slog.Error("Detailed error", "error", fmt.Sprintf("%+v", opErr)) // Stack trace with cockroachdb/errors

	fmt.Printf("Error occurred in cross-validation: %v\n", opErr)

	// Output: Error occurred in cross-validation: fold 3: combustion: LogisticRegression: convergence failure: not implemented
}
