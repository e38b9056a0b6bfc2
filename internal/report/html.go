package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Journey run: {{.Profile}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
.counts span { margin-right: 1.5em; font-weight: bold; }
.passed { color: #2e7d32; }
.failed { color: #c62828; }
.skipped { color: #f9a825; }
.flaky { color: #ef6c00; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { text-align: left; padding: 0.4em 0.8em; border-bottom: 1px solid #ddd; }
pre { background: #f5f5f5; padding: 0.8em; overflow-x: auto; }
</style>
</head>
<body>
<h1>Journey run: {{.Profile}}</h1>
<p>{{.BaseURL}} | started {{.Started.Format "2006-01-02 15:04:05"}} | {{.DurationText}}</p>
<p class="counts">
<span class="passed">{{.Passed}} passed</span>
<span class="failed">{{.Failed}} failed</span>
<span class="skipped">{{.Skipped}} skipped</span>
</p>
<table>
<tr><th>Test</th><th>Status</th><th>Duration</th></tr>
{{range .Tests}}
<tr>
<td>{{.Name}}</td>
<td class="{{.Status}}">{{.Status}}{{if .Flaky}} <span class="flaky">(flaky)</span>{{end}}</td>
<td>{{.DurationText}}</td>
</tr>
{{end}}
</table>
{{range .Tests}}{{if .Output}}
<h2 class="failed">{{.Name}}</h2>
<pre>{{.OutputText}}</pre>
{{end}}{{end}}
</body>
</html>`

var htmlReport = template.Must(template.New("report").Parse(htmlReportTemplate))

type htmlTest struct {
	TestResult
	DurationText string
	OutputText   string
}

type htmlData struct {
	*RunSummary
	DurationText string
	Tests        []htmlTest
}

// WriteHTML renders the summary as a standalone HTML report
func WriteHTML(w io.Writer, summary *RunSummary) error {
	data := htmlData{
		RunSummary:   summary,
		DurationText: roundDuration(summary.Duration),
	}
	for _, tr := range summary.Tests {
		data.Tests = append(data.Tests, htmlTest{
			TestResult:   tr,
			DurationText: roundDuration(tr.Duration),
			OutputText:   strings.Join(tr.Output, "\n"),
		})
	}

	if err := htmlReport.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}

func roundDuration(d time.Duration) string {
	return d.Round(10 * time.Millisecond).String()
}
