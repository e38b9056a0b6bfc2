// Package report turns a go test -json event stream into run
// artifacts: a machine-readable summary, a JUnit-style result file, an
// HTML report, and optionally rows in a run-history database.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Test outcome values
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// TestResult is the outcome of one test function
type TestResult struct {
	Name     string        `json:"name"`
	Package  string        `json:"package"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	// Output holds the test's log lines; kept only for failures to
	// keep summaries small
	Output []string `json:"output,omitempty"`
	// Flaky marks a test that failed and then passed on a rerun
	Flaky bool `json:"flaky,omitempty"`
}

// RunSummary aggregates one suite execution for one run profile
type RunSummary struct {
	Profile  string        `json:"profile"`
	BaseURL  string        `json:"base_url"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Tests    []TestResult  `json:"tests"`
}

// FailedTestNames returns the names of all failed tests, sorted
func (s *RunSummary) FailedTestNames() []string {
	var names []string
	for _, tr := range s.Tests {
		if tr.Status == StatusFailed {
			names = append(names, tr.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Merge folds rerun results into the summary: a test that now passes
// replaces its earlier failure and is marked flaky.
func (s *RunSummary) Merge(rerun *RunSummary) {
	byName := make(map[string]int, len(s.Tests))
	for i, tr := range s.Tests {
		byName[tr.Name] = i
	}

	for _, tr := range rerun.Tests {
		i, seen := byName[tr.Name]
		if !seen {
			s.Tests = append(s.Tests, tr)
			continue
		}
		if s.Tests[i].Status == StatusFailed && tr.Status == StatusPassed {
			tr.Flaky = true
		}
		s.Tests[i] = tr
	}

	s.Duration += rerun.Duration
	s.recount()
}

func (s *RunSummary) recount() {
	s.Passed, s.Failed, s.Skipped = 0, 0, 0
	for _, tr := range s.Tests {
		switch tr.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
}

// testEvent is one line of go test -json output (test2json format)
type testEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// ParseStream consumes a go test -json event stream and builds a run
// summary. Test output lines are echoed to echo as they arrive so the
// operator still sees live progress; pass io.Discard to silence them.
func ParseStream(r io.Reader, echo io.Writer) (*RunSummary, error) {
	summary := &RunSummary{Started: time.Now()}
	outputs := make(map[string][]string)
	packages := make(map[string]string)

	started := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event testEvent
		if err := json.Unmarshal(line, &event); err != nil {
			// Non-JSON lines appear when the build itself fails;
			// surface them and move on
			fmt.Fprintln(echo, string(line))
			continue
		}

		if !started && !event.Time.IsZero() {
			summary.Started = event.Time
			started = true
		}

		if event.Output != "" {
			fmt.Fprint(echo, event.Output)
		}

		// Package-level events have no Test field
		if event.Test == "" {
			continue
		}

		switch event.Action {
		case "output":
			outputs[event.Test] = append(outputs[event.Test], strings.TrimRight(event.Output, "\n"))
			packages[event.Test] = event.Package
		case "pass", "fail", "skip":
			result := TestResult{
				Name:     event.Test,
				Package:  event.Package,
				Duration: time.Duration(event.Elapsed * float64(time.Second)),
			}
			switch event.Action {
			case "pass":
				result.Status = StatusPassed
			case "fail":
				result.Status = StatusFailed
				result.Output = outputs[event.Test]
			case "skip":
				result.Status = StatusSkipped
			}
			summary.Tests = append(summary.Tests, result)
			summary.Duration += result.Duration
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test event stream: %w", err)
	}

	summary.recount()
	return summary, nil
}

// WriteJSON writes the summary as indented JSON
func WriteJSON(w io.Writer, summary *RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	return nil
}
