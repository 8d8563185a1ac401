// Package testutil provides shared test utilities for chessboy packages:
// go-cmp based assertions and well-known positions with their perft counts.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equalOpts treats nil and empty slices and maps as equal, so a decoded
// JSON "[]" matches a nil history.
var equalOpts = []cmp.Option{cmpopts.EquateEmpty()}

// AssertEqual reports a go-cmp diff when got and want differ. The
// optional msgAndArgs is a format string and its arguments.
func AssertEqual(tb testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	tb.Helper()
	if diff := cmp.Diff(want, got, equalOpts...); diff != "" {
		fail(tb, "mismatch (-want +got):\n"+diff, msgAndArgs)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(tb testing.TB, err error, msgAndArgs ...interface{}) {
	tb.Helper()
	if err != nil {
		fail(tb, fmt.Sprintf("unexpected error: %v", err), msgAndArgs)
	}
}

// AssertError fails if err is nil.
func AssertError(tb testing.TB, err error, msgAndArgs ...interface{}) {
	tb.Helper()
	if err == nil {
		fail(tb, "expected an error, got nil", msgAndArgs)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(tb testing.TB, err, target error, msgAndArgs ...interface{}) {
	tb.Helper()
	if !errors.Is(err, target) {
		fail(tb, fmt.Sprintf("error %v does not match %v", err, target), msgAndArgs)
	}
}

// AssertContains fails if substr is not in got.
func AssertContains(tb testing.TB, got, substr string, msgAndArgs ...interface{}) {
	tb.Helper()
	if !strings.Contains(got, substr) {
		fail(tb, fmt.Sprintf("%q does not contain %q", got, substr), msgAndArgs)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(tb testing.TB, condition bool, msgAndArgs ...interface{}) {
	tb.Helper()
	if !condition {
		fail(tb, "condition is false", msgAndArgs)
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(tb testing.TB, condition bool, msgAndArgs ...interface{}) {
	tb.Helper()
	if condition {
		fail(tb, "condition is true", msgAndArgs)
	}
}

func fail(tb testing.TB, problem string, msgAndArgs []interface{}) {
	tb.Helper()
	if msg := message(msgAndArgs); msg != "" {
		problem = msg + ": " + problem
	}
	tb.Error(problem)
}

// message renders msgAndArgs. A leading string is used as a format.
func message(msgAndArgs []interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprint(msgAndArgs[0])
	}
	if len(msgAndArgs) == 1 {
		return format
	}
	return fmt.Sprintf(format, msgAndArgs[1:]...)
}
