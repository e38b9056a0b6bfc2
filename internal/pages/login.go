package pages

import (
	"fmt"

	"github.com/storefrontqa/journey/internal/browser"
)

// Login page selectors; the site tags its auth form controls with
// data-qa attributes, which are the stable contract here
const (
	signupHeading    = ".signup-form h2"
	signupNameInput  = "[data-qa='signup-name']"
	signupEmailInput = "[data-qa='signup-email']"
	signupButton     = "[data-qa='signup-button']"
	signupError      = ".signup-form p"
	loginHeading     = ".login-form h2"
	loginEmailInput  = "[data-qa='login-email']"
	loginPassword    = "[data-qa='login-password']"
	loginButton      = "[data-qa='login-button']"
	loginError       = ".login-form p"
)

// Login wraps the combined signup / login page
type Login struct {
	h *browser.Helper
}

// NewLogin binds the login page to a helper
func NewLogin(h *browser.Helper) *Login {
	return &Login{h: h}
}

// Open navigates directly to the signup / login page
func (p *Login) Open() error {
	if err := p.h.Goto("/login"); err != nil {
		return err
	}
	return p.WaitReady()
}

// WaitReady gates on the signup form being visible
func (p *Login) WaitReady() error {
	if err := p.h.WaitForReady(signupNameInput); err != nil {
		return fmt.Errorf("login page not ready: %w", err)
	}
	return nil
}

// SignupHeading returns the "New User Signup!" heading text
func (p *Login) SignupHeading() (string, error) {
	return p.h.TextContent(signupHeading)
}

// LoginHeading returns the "Login to your account" heading text
func (p *Login) LoginHeading() (string, error) {
	return p.h.TextContent(loginHeading)
}

// StartSignup submits the name and email that seed a new registration
func (p *Login) StartSignup(name, email string) error {
	if err := p.h.Fill(signupNameInput, name); err != nil {
		return err
	}
	if err := p.h.Fill(signupEmailInput, email); err != nil {
		return err
	}
	return p.h.Click(signupButton)
}

// SignupErrorText returns the error shown when the email is already
// registered, empty when none is displayed
func (p *Login) SignupErrorText() string {
	if !p.h.IsVisible(signupError) {
		return ""
	}
	text, err := p.h.TextContent(signupError)
	if err != nil {
		return ""
	}
	return text
}

// LoginWith submits existing credentials
func (p *Login) LoginWith(email, password string) error {
	if err := p.h.Fill(loginEmailInput, email); err != nil {
		return err
	}
	if err := p.h.Fill(loginPassword, password); err != nil {
		return err
	}
	return p.h.Click(loginButton)
}

// LoginErrorText returns the invalid-credentials error, empty when
// none is displayed
func (p *Login) LoginErrorText() string {
	if !p.h.IsVisible(loginError) {
		return ""
	}
	text, err := p.h.TextContent(loginError)
	if err != nil {
		return ""
	}
	return text
}
