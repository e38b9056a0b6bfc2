package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/urfave/cli/v2"

	"github.com/storefrontqa/journey/internal/config"
	"github.com/storefrontqa/journey/internal/report"
)

var version = "0.1.0"

// RunCommand returns the run command, which executes the e2e suite for
// one profile and writes the run artifacts
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the purchase-journey suite for one run profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Value: config.DefaultProfile,
				Usage: "run profile (see 'journey profiles')",
			},
			&cli.StringFlag{
				Name:  "grep",
				Usage: "only run tests matching this go test -run pattern",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig(os.Getenv)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			profile, err := config.ProfileByName(c.String("profile"))
			if err != nil {
				return err
			}

			summary, err := runSuite(cfg, profile, c.String("grep"))
			if err != nil {
				return err
			}

			// Rerun failed tests up to the configured retry count;
			// tests that recover are recorded as flaky, not failed
			for attempt := 1; attempt <= cfg.RetryCount && summary.Failed > 0; attempt++ {
				failed := summary.FailedTestNames()
				log.Printf("retry %d/%d for %d failed test(s): %s",
					attempt, cfg.RetryCount, len(failed), strings.Join(failed, ", "))

				rerun, err := runSuite(cfg, profile, runPattern(failed))
				if err != nil {
					return err
				}
				summary.Merge(rerun)
			}

			if err := writeArtifacts(cfg, profile, summary); err != nil {
				return err
			}
			if err := recordRun(profile, summary); err != nil {
				log.Printf("failed to record run history: %v", err)
			}

			log.Printf("%s: %d passed, %d failed, %d skipped in %s",
				profile.Name, summary.Passed, summary.Failed, summary.Skipped, summary.Duration.Round(0))
			if summary.Failed > 0 {
				return cli.Exit(fmt.Sprintf("%d test(s) failed", summary.Failed), 1)
			}
			return nil
		},
	}
}

// runSuite executes go test -json over the e2e package with the
// profile injected through the environment and parses the event stream
func runSuite(cfg config.Config, profile config.Profile, pattern string) (*report.RunSummary, error) {
	args := []string{
		"test", "-json", "-count=1",
		"-timeout", cfg.SuiteTimeout.String(),
		"-parallel", fmt.Sprintf("%d", cfg.Workers),
	}
	if pattern != "" {
		args = append(args, "-run", pattern)
	}
	args = append(args, "./e2e")

	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"JOURNEY_PROFILE="+profile.Name,
		"JOURNEY_BASE_URL="+cfg.BaseURL,
	)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open test output pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start go test: %w", err)
	}

	summary, parseErr := report.ParseStream(stdout, os.Stdout)

	// go test exits non-zero when tests fail; that is not a runner
	// error, the summary carries the failures
	if err := cmd.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, fmt.Errorf("go test did not run: %w", err)
		}
	}
	if parseErr != nil {
		return nil, parseErr
	}

	summary.Profile = profile.Name
	summary.BaseURL = cfg.BaseURL
	return summary, nil
}

// runPattern builds a go test -run expression matching exactly the
// given test names
func runPattern(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return "^(" + strings.Join(quoted, "|") + ")$"
}

// writeArtifacts writes the summary JSON, JUnit XML, and HTML report
// under the profile's artifact directory
func writeArtifacts(cfg config.Config, profile config.Profile, summary *report.RunSummary) error {
	dir := filepath.Join(cfg.ArtifactsDir, profile.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(*os.File) error
	}{
		{"summary.json", func(f *os.File) error { return report.WriteJSON(f, summary) }},
		{"junit.xml", func(f *os.File) error { return report.WriteJUnit(f, summary) }},
		{"report.html", func(f *os.File) error { return report.WriteHTML(f, summary) }},
	}

	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := w.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

// recordRun inserts the run into the history database when one is
// configured; without RESULTS_HOSTNAME it is a no-op
func recordRun(profile config.Profile, summary *report.RunSummary) error {
	if !config.ResultsSinkEnabled(os.Getenv) {
		return nil
	}

	resultsCfg, err := config.LoadResultsConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("incomplete results configuration: %w", err)
	}

	sink, err := report.OpenPostgresSink(resultsCfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sink.EnsureSchema(); err != nil {
		return err
	}

	// Surface recurring breakage on this profile before adding the
	// new rows, so the operator can tell a fresh failure from a known
	// flaky test
	if recent, err := sink.RecentFailures(profile.Name, 10); err != nil {
		log.Printf("failed to query recent failures: %v", err)
	} else if len(recent) > 0 {
		log.Printf("recent failures on %s: %s", profile.Name, strings.Join(recent, ", "))
	}

	runID, err := sink.RecordRun(summary)
	if err != nil {
		return err
	}
	log.Printf("recorded run %s", runID)
	return nil
}

// ProfilesCommand returns the profiles command, which lists the
// browser and viewport matrix
func ProfilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List the available run profiles",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENGINE\tVIEWPORT\tMOBILE")
			for _, p := range config.Profiles() {
				viewport := fmt.Sprintf("%dx%d", p.Viewport.Width, p.Viewport.Height)
				if p.Device != "" {
					viewport = p.Device
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", p.Name, p.Engine, viewport, p.Mobile)
			}
			return w.Flush()
		},
	}
}

// InstallCommand returns the install command, which downloads the
// browser builds Playwright drives
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the Playwright browsers used by the run profiles",
		Action: func(c *cli.Context) error {
			return playwright.Install(&playwright.RunOptions{
				Browsers: []string{"chromium", "firefox", "webkit"},
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "journey",
		Usage:   "Storefront purchase-journey end-to-end suite runner",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ProfilesCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
