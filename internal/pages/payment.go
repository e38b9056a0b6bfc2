package pages

import (
	"fmt"

	"github.com/storefrontqa/journey/internal/browser"
	"github.com/storefrontqa/journey/internal/fixtures"
)

// Payment page selectors
const (
	nameOnCardInput   = "[data-qa='name-on-card']"
	cardNumberInput   = "[data-qa='card-number']"
	cardCVCInput      = "[data-qa='cvc']"
	expiryMonthInput  = "[data-qa='expiry-month']"
	expiryYearInput   = "[data-qa='expiry-year']"
	payButton         = "[data-qa='pay-button']"
	orderPlacedTitle  = "[data-qa='order-placed']"
	downloadInvoice   = "a:has-text('Download Invoice')"
	paymentContinue   = "[data-qa='continue-button']"
	orderConfirmation = "#form section p"
)

// Payment wraps the card entry page and the order confirmation that
// follows submission
type Payment struct {
	h *browser.Helper
}

// NewPayment binds the payment page to a helper
func NewPayment(h *browser.Helper) *Payment {
	return &Payment{h: h}
}

// WaitReady gates on the card form
func (p *Payment) WaitReady() error {
	if err := p.h.WaitForReady(cardNumberInput); err != nil {
		return fmt.Errorf("payment page not ready: %w", err)
	}
	return nil
}

// FillCardDetails enters the user's synthetic card
func (p *Payment) FillCardDetails(user fixtures.User) error {
	steps := []struct {
		selector string
		value    string
	}{
		{nameOnCardInput, user.Name},
		{cardNumberInput, user.Card.Number},
		{cardCVCInput, user.Card.CVV},
		{expiryMonthInput, user.Card.ExpiryMonthString()},
		{expiryYearInput, user.Card.ExpiryYearString()},
	}

	for _, step := range steps {
		if err := p.h.Fill(step.selector, step.value); err != nil {
			return err
		}
	}
	return nil
}

// SubmitPayment clicks pay and waits for the confirmation heading
func (p *Payment) SubmitPayment() error {
	if err := p.h.Click(payButton); err != nil {
		return err
	}
	return p.h.WaitForElement(orderPlacedTitle)
}

// SuccessMessage returns the "Order Placed!" heading text
func (p *Payment) SuccessMessage() (string, error) {
	return p.h.TextContent(orderPlacedTitle)
}

// ConfirmationText returns the congratulatory paragraph under the
// heading, empty when absent
func (p *Payment) ConfirmationText() string {
	if !p.h.IsVisible(orderConfirmation) {
		return ""
	}
	text, err := p.h.TextContent(orderConfirmation)
	if err != nil {
		return ""
	}
	return text
}

// DownloadInvoiceVisible reports whether the invoice link rendered
func (p *Payment) DownloadInvoiceVisible() bool {
	return p.h.IsVisible(downloadInvoice)
}

// Continue returns to the storefront after a placed order
func (p *Payment) Continue() error {
	return p.h.Click(paymentContinue)
}
