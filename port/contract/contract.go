package contract

import (
	"testing"

	"go.llib.dev/testcase"
)

// Make func meant to create a new instance of the testing subject.
type Make[Subject any] = func(tb testing.TB) Subject

// Contract represents a behavioural specification of a role interface.
//
// Any expectation a consumer makes towards a supplied implementation
// should be defined in a contract, so different implementations
// can be validated against the same behavioural requirements.
type Contract interface {
	testcase.Suite
	// Test is the function that asserts the expected behavioural requirements from a supplier implementation.
	Test(*testing.T)
	// Benchmark will help with what to measure.
	Benchmark(*testing.B)
}
