package browser

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefrontqa/journey/internal/config"
)

// launchCaptureFixture starts a chromium fixture with video and trace
// capture enabled, writing into a per-test artifact dir
func launchCaptureFixture(t *testing.T) *Fixture {
	t.Helper()

	cfg := config.LoadConfig(func(string) string { return "" })
	cfg.ArtifactsDir = t.TempDir()
	cfg.CaptureVideo = true
	cfg.CaptureTrace = true

	profile, err := config.ProfileByName(config.DefaultProfile)
	if err != nil {
		t.Fatalf("failed to resolve default profile: %v", err)
	}

	f, err := Launch(cfg, profile)
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func countArtifacts(t *testing.T, dir, ext string) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk artifact dir: %v", err)
	}
	return count
}

func TestNewPageDiscardsArtifactsOnPass(t *testing.T) {
	f := launchCaptureFixture(t)

	page, cleanup, err := f.NewPage()
	if err != nil {
		t.Fatalf("failed to open page: %v", err)
	}
	if _, err := page.Goto("about:blank"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	cleanup(false)

	if n := countArtifacts(t, f.cfg.ArtifactsDir, ".webm"); n != 0 {
		t.Errorf("passing test left %d video file(s) behind", n)
	}
	if n := countArtifacts(t, f.cfg.ArtifactsDir, ".zip"); n != 0 {
		t.Errorf("passing test left %d trace file(s) behind", n)
	}
}

func TestNewPageKeepsArtifactsOnFailure(t *testing.T) {
	f := launchCaptureFixture(t)

	page, cleanup, err := f.NewPage()
	if err != nil {
		t.Fatalf("failed to open page: %v", err)
	}
	if _, err := page.Goto("about:blank"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	cleanup(true)

	if n := countArtifacts(t, f.cfg.ArtifactsDir, ".webm"); n != 1 {
		t.Errorf("failed test kept %d video file(s), want 1", n)
	}
	if n := countArtifacts(t, f.cfg.ArtifactsDir, ".zip"); n != 1 {
		t.Errorf("failed test kept %d trace file(s), want 1", n)
	}
}
