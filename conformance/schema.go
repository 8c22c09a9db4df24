// Package conformance runs YAML-described statement sequences against
// a fresh repl.Driver and checks each statement's printed output
// against an expected line, grounded on the teacher's
// conformance/schema.go + conformance/loader.go + conformance/runner.go
// trio, repurposed from MOO code/expect-value test cases to damasc
// statement/expect-output-line sequences (spec.md §8's scenarios are
// inherently multi-statement — S4, S6, S7 each set up state across
// several lines before the line under test — so a TestCase here is a
// whole transcript, not one expression).
package conformance

// TestSuite is one YAML file: a named group of related test cases.
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase runs Statements against a fresh driver in order; Expect[i]
// is the printed form (Output.String()) the statement at Statements[i]
// must produce. Setup runs first against the same driver with its
// output discarded — for state a test needs in place (an inserted
// item, a created bag) that isn't itself under test.
//
// ExpectError, when non-empty at index i, means Statements[i] is
// expected to fail rather than produce output — Run checks the
// returned error's message contains ExpectError[i] instead of
// comparing Output.String() (§7's AssignmentError cycle case, among
// others, has no Output to compare since Execute itself returns a
// non-nil error for it).
type TestCase struct {
	Name        string   `yaml:"name"`
	Skip        bool     `yaml:"skip,omitempty"`
	SkipReason  string   `yaml:"skip_reason,omitempty"`
	Setup       []string `yaml:"setup,omitempty"`
	Statements  []string `yaml:"statements"`
	Expect      []string `yaml:"expect"`
	ExpectError []string `yaml:"expect_error,omitempty"`
}

// expectedError returns the ExpectError entry for statement index i,
// or "" if none was given (meaning Run should not expect an error).
func (tc TestCase) expectedError(i int) string {
	if i >= len(tc.ExpectError) {
		return ""
	}
	return tc.ExpectError[i]
}

// IsSkipped reports whether this case should be skipped, and why.
func (tc TestCase) IsSkipped() (bool, string) {
	if !tc.Skip {
		return false, ""
	}
	if tc.SkipReason == "" {
		return true, "skipped"
	}
	return true, tc.SkipReason
}
