package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/storefrontqa/journey/internal/config"
)

// Fixture owns the Playwright driver and one browser for the selected
// run profile. Tests create isolated contexts from it; nothing is
// shared between contexts.
type Fixture struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	profile config.Profile
	cfg     config.Config
}

// Launch starts Playwright and the profile's engine. Browsers must be
// installed first (journey install, or the playwright-go install
// command).
func Launch(cfg config.Config, profile config.Profile) (*Fixture, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch profile.Engine {
	case config.EngineChromium:
		browserType = pw.Chromium
	case config.EngineFirefox:
		browserType = pw.Firefox
	case config.EngineWebKit:
		browserType = pw.WebKit
	default:
		pw.Stop()
		return nil, fmt.Errorf("unknown browser engine %q", profile.Engine)
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", profile.Engine, err)
	}

	return &Fixture{pw: pw, browser: browser, profile: profile, cfg: cfg}, nil
}

// Profile returns the run profile this fixture was launched for
func (f *Fixture) Profile() config.Profile {
	return f.profile
}

// NewContext creates an isolated browser context configured for the
// profile: a device preset for mobile profiles that name one, a fixed
// viewport otherwise.
func (f *Fixture) NewContext() (playwright.BrowserContext, error) {
	options := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(f.cfg.IgnoreHTTPSErrors),
	}

	if f.profile.Device != "" {
		device, ok := f.pw.Devices[f.profile.Device]
		if !ok {
			return nil, fmt.Errorf("unknown device preset %q", f.profile.Device)
		}
		options.UserAgent = playwright.String(device.UserAgent)
		options.Viewport = device.Viewport
		options.DeviceScaleFactor = playwright.Float(device.DeviceScaleFactor)
		options.IsMobile = playwright.Bool(device.IsMobile)
		options.HasTouch = playwright.Bool(device.HasTouch)
	} else {
		options.Viewport = &playwright.Size{
			Width:  f.profile.Viewport.Width,
			Height: f.profile.Viewport.Height,
		}
	}

	if f.cfg.CaptureVideo {
		options.RecordVideo = &playwright.RecordVideo{
			Dir: f.ArtifactPath("video"),
		}
	}

	context, err := f.browser.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	return context, nil
}

// NewPage creates a fresh context and page pair. The returned cleanup
// closes both and takes the test's failure state: videos and traces
// are kept for failed tests and discarded for passing ones. Cleanup
// failures are logged, not raised.
func (f *Fixture) NewPage() (playwright.Page, func(failed bool), error) {
	context, err := f.NewContext()
	if err != nil {
		return nil, nil, err
	}

	if f.cfg.CaptureTrace {
		if err := context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		}); err != nil {
			context.Close()
			return nil, nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}

	cleanup := func(failed bool) {
		if f.cfg.CaptureTrace {
			// Stop with no path discards the trace
			var paths []string
			if failed {
				paths = append(paths, f.ArtifactPath("traces", fmt.Sprintf("trace-%d.zip", time.Now().UnixNano())))
			}
			if err := context.Tracing().Stop(paths...); err != nil {
				log.Printf("failed to stop tracing: %v", err)
			}
		}

		video := page.Video()
		if err := page.Close(); err != nil {
			log.Printf("failed to close page: %v", err)
		}
		if err := context.Close(); err != nil {
			log.Printf("failed to close context: %v", err)
		}

		// The video file only exists once the page is closed
		if video != nil && !failed {
			if err := video.Delete(); err != nil {
				log.Printf("failed to delete video of passing test: %v", err)
			}
		}
	}
	return page, cleanup, nil
}

// ArtifactPath joins path elements under the profile's artifact
// directory, creating parents as needed
func (f *Fixture) ArtifactPath(elem ...string) string {
	parts := append([]string{f.cfg.ArtifactsDir, f.profile.Name}, elem...)
	out := filepath.Join(parts...)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Printf("failed to create artifact dir for %s: %v", out, err)
	}
	return out
}

// Close releases the browser and the driver
func (f *Fixture) Close() error {
	var firstErr error
	if err := f.browser.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close browser: %w", err)
	}
	if err := f.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop playwright: %w", err)
	}
	return firstErr
}
