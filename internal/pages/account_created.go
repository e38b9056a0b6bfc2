package pages

import (
	"fmt"

	"github.com/storefrontqa/journey/internal/browser"
)

// Account confirmation selectors
const (
	accountCreatedTitle = "[data-qa='account-created']"
	accountDeletedTitle = "[data-qa='account-deleted']"
	continueButton      = "[data-qa='continue-button']"
)

// AccountCreated wraps the post-registration confirmation page
type AccountCreated struct {
	h *browser.Helper
}

// NewAccountCreated binds the confirmation page to a helper
func NewAccountCreated(h *browser.Helper) *AccountCreated {
	return &AccountCreated{h: h}
}

// WaitReady gates on the confirmation heading
func (p *AccountCreated) WaitReady() error {
	if err := p.h.WaitForReady(accountCreatedTitle); err != nil {
		return fmt.Errorf("account created page not ready: %w", err)
	}
	return nil
}

// Title returns the "Account Created!" heading text
func (p *AccountCreated) Title() (string, error) {
	return p.h.TextContent(accountCreatedTitle)
}

// Continue proceeds back into the storefront as the new user
func (p *AccountCreated) Continue() error {
	return p.h.Click(continueButton)
}

// AccountDeleted wraps the post-deletion confirmation page shown when
// a journey cleans up after itself
type AccountDeleted struct {
	h *browser.Helper
}

// NewAccountDeleted binds the deletion confirmation page to a helper
func NewAccountDeleted(h *browser.Helper) *AccountDeleted {
	return &AccountDeleted{h: h}
}

// WaitReady gates on the deletion heading
func (p *AccountDeleted) WaitReady() error {
	if err := p.h.WaitForReady(accountDeletedTitle); err != nil {
		return fmt.Errorf("account deleted page not ready: %w", err)
	}
	return nil
}

// Title returns the "Account Deleted!" heading text
func (p *AccountDeleted) Title() (string, error) {
	return p.h.TextContent(accountDeletedTitle)
}

// Continue returns to the storefront
func (p *AccountDeleted) Continue() error {
	return p.h.Click(continueButton)
}
