package config

import "fmt"

// Engine identifies a browser engine
type Engine string

// Supported engines
const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
)

// Viewport is a fixed window size in CSS pixels
type Viewport struct {
	Width  int
	Height int
}

// MobileWidthThreshold is the viewport width below which the suite
// treats the layout as mobile
const MobileWidthThreshold = 768

// Profile is one (engine, viewport) execution target. Device names a
// Playwright device preset; when set it wins over Viewport.
type Profile struct {
	Name     string
	Engine   Engine
	Viewport Viewport
	Device   string
	Mobile   bool
}

var desktopViewport = Viewport{Width: 1920, Height: 1080}

var profiles = []Profile{
	{Name: "desktop-chromium", Engine: EngineChromium, Viewport: desktopViewport},
	{Name: "desktop-firefox", Engine: EngineFirefox, Viewport: desktopViewport},
	{Name: "desktop-webkit", Engine: EngineWebKit, Viewport: desktopViewport},
	{Name: "mobile-chrome", Engine: EngineChromium, Device: "Pixel 5", Mobile: true},
	{Name: "mobile-safari", Engine: EngineWebKit, Device: "iPhone 13", Mobile: true},
	{Name: "mobile-custom", Engine: EngineChromium, Viewport: Viewport{Width: 375, Height: 812}, Mobile: true},
}

// DefaultProfile is used when no profile is selected
const DefaultProfile = "desktop-chromium"

// Profiles returns all run profiles in declaration order
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ProfileByName resolves a profile by its name
func ProfileByName(name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q", name)
}
