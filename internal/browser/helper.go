package browser

import (
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/storefrontqa/journey/internal/config"
)

// Helper provides the resilient interaction primitives every page
// object composes. It is bound to one live page; nothing here touches
// generator or configuration state.
type Helper struct {
	page playwright.Page
	cfg  config.Config
}

// NewHelper binds a helper to a page
func NewHelper(page playwright.Page, cfg config.Config) *Helper {
	return &Helper{page: page, cfg: cfg}
}

// Page exposes the underlying page for operations the helper does not
// wrap (URL checks, frame handling)
func (h *Helper) Page() playwright.Page {
	return h.page
}

// BaseURL returns the storefront root the suite is pointed at
func (h *Helper) BaseURL() string {
	return h.cfg.BaseURL
}

// actionTimeout returns the configured interaction budget in
// Playwright's millisecond float convention
func (h *Helper) actionTimeout() float64 {
	return float64(h.cfg.ActionTimeout.Milliseconds())
}

// Goto navigates to a path under the base URL and waits for the page
// to settle
func (h *Helper) Goto(path string) error {
	url := strings.TrimRight(h.cfg.BaseURL, "/") + path
	if _, err := h.page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(h.cfg.NavigationTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return h.WaitForPageLoad()
}

// WaitForElement blocks until the element is visible or the action
// timeout expires
func (h *Helper) WaitForElement(selector string) error {
	if err := h.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(h.actionTimeout()),
	}); err != nil {
		return fmt.Errorf("element %q did not become visible: %w", selector, err)
	}
	return nil
}

// WaitForReady blocks until a page's gating element is visible or the
// assertion timeout expires. Readiness gates run before assertions, so
// they get the assertion budget rather than the interaction one.
func (h *Helper) WaitForReady(selector string) error {
	if err := h.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(h.cfg.AssertionTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("element %q did not become visible: %w", selector, err)
	}
	return nil
}

// Click waits for visibility, then performs a non-forced click
func (h *Helper) Click(selector string) error {
	if err := h.WaitForElement(selector); err != nil {
		return err
	}
	if err := h.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	}); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// Fill waits for visibility, clears any existing content, and sets
// the given text
func (h *Helper) Fill(selector, text string) error {
	if err := h.WaitForElement(selector); err != nil {
		return err
	}
	locator := h.page.Locator(selector).First()
	if err := locator.Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	}); err != nil {
		return fmt.Errorf("failed to clear %q: %w", selector, err)
	}
	if err := locator.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	}); err != nil {
		return fmt.Errorf("failed to fill %q: %w", selector, err)
	}
	return nil
}

// SelectOption waits for visibility and selects the option matching
// value; fails when no option matched
func (h *Helper) SelectOption(selector, value string) error {
	if err := h.WaitForElement(selector); err != nil {
		return err
	}
	selected, err := h.page.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}, playwright.LocatorSelectOptionOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	})
	if err != nil {
		return fmt.Errorf("failed to select %q in %q: %w", value, selector, err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("no option matching %q found in %q", value, selector)
	}
	return nil
}

// TextContent waits for visibility and returns the trimmed text, or
// an empty string when the node has none
func (h *Helper) TextContent(selector string) (string, error) {
	if err := h.WaitForElement(selector); err != nil {
		return "", err
	}
	text, err := h.page.Locator(selector).First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// InputValue waits for visibility and returns the current value of a
// form control
func (h *Helper) InputValue(selector string) (string, error) {
	if err := h.WaitForElement(selector); err != nil {
		return "", err
	}
	value, err := h.page.Locator(selector).First().InputValue(playwright.LocatorInputValueOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read value of %q: %w", selector, err)
	}
	return value, nil
}

// IsVisible reports element visibility and never fails: lookup errors
// read as not visible
func (h *Helper) IsVisible(selector string) bool {
	visible, err := h.page.Locator(selector).First().IsVisible()
	if err != nil {
		return false
	}
	return visible
}

// ScrollIntoView scrolls the element into the viewport if needed
func (h *Helper) ScrollIntoView(selector string) error {
	if err := h.page.Locator(selector).First().ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(h.actionTimeout()),
	}); err != nil {
		return fmt.Errorf("failed to scroll %q into view: %w", selector, err)
	}
	return nil
}

// Count returns how many nodes match the selector
func (h *Helper) Count(selector string) (int, error) {
	count, err := h.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", selector, err)
	}
	return count, nil
}

// IsMobileViewport reports whether the current viewport is below the
// mobile width threshold
func (h *Helper) IsMobileViewport() bool {
	size := h.page.ViewportSize()
	if size == nil {
		return false
	}
	return size.Width > 0 && size.Width < config.MobileWidthThreshold
}

// WaitForPageLoad waits for DOM-ready, then gives background network
// activity a shorter budget to settle. The storefront keeps ad and
// analytics requests in flight, so network-idle expiry is logged and
// tolerated rather than raised.
func (h *Helper) WaitForPageLoad() error {
	if err := h.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(float64(h.cfg.NavigationTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("page did not reach DOM-ready: %w", err)
	}

	if err := h.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(h.cfg.NetworkIdleTimeout.Milliseconds())),
	}); err != nil {
		log.Printf("network did not go idle within %v, continuing: %v", h.cfg.NetworkIdleTimeout, err)
	}
	return nil
}

// Screenshot captures the full page to the given path
func (h *Helper) Screenshot(path string) error {
	if _, err := h.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to capture screenshot to %s: %w", path, err)
	}
	return nil
}

// RetryClick retries a click with the default backoff, absorbing
// transient detachment and timeout errors
func (h *Helper) RetryClick(selector string) error {
	return RetryVoid(func() error {
		return h.Click(selector)
	}, DefaultBackoff())
}
