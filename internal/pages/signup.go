package pages

import (
	"fmt"

	"github.com/storefrontqa/journey/internal/browser"
	"github.com/storefrontqa/journey/internal/fixtures"
)

// Account information form selectors
const (
	accountInfoHeading = ".login-form h2 b"
	titleMrRadio       = "#id_gender1"
	titleMrsRadio      = "#id_gender2"
	accountNameInput   = "[data-qa='name']"
	accountEmailInput  = "[data-qa='email']"
	accountPassword    = "[data-qa='password']"
	dobDaySelect       = "[data-qa='days']"
	dobMonthSelect     = "[data-qa='months']"
	dobYearSelect      = "[data-qa='years']"
	newsletterCheckbox = "#newsletter"
	offersCheckbox     = "#optin"
	firstNameInput     = "[data-qa='first_name']"
	lastNameInput      = "[data-qa='last_name']"
	companyInput       = "[data-qa='company']"
	address1Input      = "[data-qa='address']"
	address2Input      = "[data-qa='address2']"
	countrySelect      = "[data-qa='country']"
	stateInput         = "[data-qa='state']"
	cityInput          = "[data-qa='city']"
	zipcodeInput       = "[data-qa='zipcode']"
	mobileNumberInput  = "[data-qa='mobile_number']"
	createAccountBtn   = "[data-qa='create-account']"
)

// SignUp wraps the account information form shown after starting a
// registration
type SignUp struct {
	h *browser.Helper
}

// NewSignUp binds the signup form to a helper
func NewSignUp(h *browser.Helper) *SignUp {
	return &SignUp{h: h}
}

// WaitReady gates on the account information form
func (p *SignUp) WaitReady() error {
	if err := p.h.WaitForReady(accountInfoHeading); err != nil {
		return fmt.Errorf("account information form not ready: %w", err)
	}
	return nil
}

// Heading returns the "Enter Account Information" heading text
func (p *SignUp) Heading() (string, error) {
	return p.h.TextContent(accountInfoHeading)
}

// ValidateNameAndEmail checks the pre-populated name and email fields
// against the values the registration was started with. Boolean, not
// an error: this is a business assertion the flow decides how to treat.
func (p *SignUp) ValidateNameAndEmail(expectedName, expectedEmail string) bool {
	name, err := p.h.InputValue(accountNameInput)
	if err != nil {
		return false
	}
	email, err := p.h.InputValue(accountEmailInput)
	if err != nil {
		return false
	}
	return name == expectedName && email == expectedEmail
}

// SelectTitle picks the Mr/Mrs radio matching the user's title
func (p *SignUp) SelectTitle(title string) error {
	selector := titleMrRadio
	if title == "Mrs" {
		selector = titleMrsRadio
	}
	return p.h.Click(selector)
}

// FillAccountInfo completes the account half of the form: title,
// password, and date of birth
func (p *SignUp) FillAccountInfo(user fixtures.User) error {
	if err := p.SelectTitle(user.Title); err != nil {
		return err
	}
	if err := p.h.Fill(accountPassword, user.Password); err != nil {
		return err
	}
	if err := p.h.SelectOption(dobDaySelect, user.DateOfBirth.Day); err != nil {
		return err
	}
	if err := p.h.SelectOption(dobMonthSelect, user.DateOfBirth.Month); err != nil {
		return err
	}
	return p.h.SelectOption(dobYearSelect, user.DateOfBirth.Year)
}

// CheckNewsletter opts into the newsletter
func (p *SignUp) CheckNewsletter() error {
	return p.h.Click(newsletterCheckbox)
}

// CheckSpecialOffers opts into partner offers
func (p *SignUp) CheckSpecialOffers() error {
	return p.h.Click(offersCheckbox)
}

// FillAddressInfo completes the address half of the form
func (p *SignUp) FillAddressInfo(user fixtures.User) error {
	steps := []struct {
		selector string
		value    string
	}{
		{firstNameInput, user.FirstName},
		{lastNameInput, user.LastName},
		{companyInput, user.Company},
		{address1Input, user.Address1},
		{address2Input, user.Address2},
		{stateInput, user.State},
		{cityInput, user.City},
		{zipcodeInput, user.Zipcode},
		{mobileNumberInput, user.MobileNumber},
	}

	for _, step := range steps {
		if err := p.h.Fill(step.selector, step.value); err != nil {
			return err
		}
	}
	return p.h.SelectOption(countrySelect, user.Country)
}

// CreateAccount submits the completed form
func (p *SignUp) CreateAccount() error {
	if err := p.h.ScrollIntoView(createAccountBtn); err != nil {
		return err
	}
	return p.h.Click(createAccountBtn)
}
