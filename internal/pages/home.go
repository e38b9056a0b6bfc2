// Package pages wraps each screen of the storefront behind a fixed
// set of locators and user-action methods. Page objects hold no
// cross-page state; anything that must flow between stages is threaded
// by the test that drives them.
package pages

import (
	"fmt"

	"github.com/storefrontqa/journey/internal/browser"
)

// Home page selectors
const (
	homeSlider            = "#slider"
	homeHeader            = "#header"
	navProductsLink       = "a[href='/products']"
	navSignupLoginLink    = "a[href='/login']"
	navCartLink           = "a[href='/view_cart']"
	navLogoutLink         = "a[href='/logout']"
	navDeleteAccountLink  = "a[href='/delete_account']"
	navLoggedInIndicator  = "a:has-text('Logged in as')"
	subscriptionEmail     = "#susbscribe_email"
	subscriptionButton    = "#subscribe"
	subscriptionSuccess   = "#success-subscribe .alert-success"
	subscriptionHeading   = ".single-widget h2"
	recommendedItemsBlock = ".recommended_items"
)

// Home wraps the storefront landing page
type Home struct {
	h *browser.Helper
}

// NewHome binds the home page to a helper
func NewHome(h *browser.Helper) *Home {
	return &Home{h: h}
}

// Open navigates to the storefront root and waits for readiness
func (p *Home) Open() error {
	if err := p.h.Goto("/"); err != nil {
		return err
	}
	return p.WaitReady()
}

// WaitReady gates all other methods on the page being usable
func (p *Home) WaitReady() error {
	if err := p.h.WaitForReady(homeHeader); err != nil {
		return fmt.Errorf("home page not ready: %w", err)
	}
	return nil
}

// IsLoaded reports whether the landing carousel rendered
func (p *Home) IsLoaded() bool {
	return p.h.IsVisible(homeSlider)
}

// ClickProducts navigates to the product listing
func (p *Home) ClickProducts() error {
	return p.h.Click(navProductsLink)
}

// ClickSignupLogin navigates to the signup / login page
func (p *Home) ClickSignupLogin() error {
	return p.h.Click(navSignupLoginLink)
}

// ClickCart navigates to the cart
func (p *Home) ClickCart() error {
	return p.h.Click(navCartLink)
}

// ClickLogout logs the current user out
func (p *Home) ClickLogout() error {
	return p.h.Click(navLogoutLink)
}

// ClickDeleteAccount starts account deletion for the current user
func (p *Home) ClickDeleteAccount() error {
	return p.h.Click(navDeleteAccountLink)
}

// LoggedInAs returns the header's logged-in indicator text, empty when
// no user is signed in
func (p *Home) LoggedInAs() string {
	if !p.h.IsVisible(navLoggedInIndicator) {
		return ""
	}
	text, err := p.h.TextContent(navLoggedInIndicator)
	if err != nil {
		return ""
	}
	return text
}

// SubscribeToNewsletter scrolls to the footer widget and submits the
// given email
func (p *Home) SubscribeToNewsletter(email string) error {
	if err := p.h.ScrollIntoView(subscriptionEmail); err != nil {
		return err
	}
	if err := p.h.Fill(subscriptionEmail, email); err != nil {
		return err
	}
	return p.h.Click(subscriptionButton)
}

// SubscriptionSuccessText returns the confirmation shown after
// subscribing
func (p *Home) SubscriptionSuccessText() (string, error) {
	return p.h.TextContent(subscriptionSuccess)
}

// HasRecommendedItems reports whether the recommendations block is
// present; it is absent on some mobile layouts
func (p *Home) HasRecommendedItems() bool {
	return p.h.IsVisible(recommendedItemsBlock)
}
