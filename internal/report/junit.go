package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// JUnit result-file shapes, matching what CI systems ingest
type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *struct{}     `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes the summary as a JUnit-style XML result file, one
// testsuite per run profile
func WriteJUnit(w io.Writer, summary *RunSummary) error {
	suite := junitTestSuite{
		Name:     summary.Profile,
		Tests:    len(summary.Tests),
		Failures: summary.Failed,
		Skipped:  summary.Skipped,
		Time:     fmt.Sprintf("%.3f", summary.Duration.Seconds()),
	}

	for _, tr := range summary.Tests {
		testCase := junitTestCase{
			Name:      tr.Name,
			ClassName: tr.Package,
			Time:      fmt.Sprintf("%.3f", tr.Duration.Seconds()),
		}
		switch tr.Status {
		case StatusFailed:
			testCase.Failure = &junitFailure{
				Message: fmt.Sprintf("%s failed", tr.Name),
				Body:    strings.Join(tr.Output, "\n"),
			}
		case StatusSkipped:
			testCase.Skipped = &struct{}{}
		}
		suite.Cases = append(suite.Cases, testCase)
	}

	doc := junitTestSuites{
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Skipped:  suite.Skipped,
		Time:     suite.Time,
		Suites:   []junitTestSuite{suite},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write junit header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode junit report: %w", err)
	}
	return nil
}
