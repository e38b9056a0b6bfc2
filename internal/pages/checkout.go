package pages

import (
	"fmt"
	"strings"

	"github.com/storefrontqa/journey/internal/browser"
	"github.com/storefrontqa/journey/internal/fixtures"
)

// Checkout page selectors
const (
	deliveryAddressBox = "#address_delivery"
	invoiceAddressBox  = "#address_invoice"
	reviewOrderTable   = "#cart_info"
	orderCommentArea   = "textarea[name='message']"
	placeOrderLink     = "a[href='/payment']"
)

// Checkout wraps the address-review-and-order page
type Checkout struct {
	h *browser.Helper
}

// NewCheckout binds the checkout page to a helper
func NewCheckout(h *browser.Helper) *Checkout {
	return &Checkout{h: h}
}

// WaitReady gates on the delivery address block
func (p *Checkout) WaitReady() error {
	if err := p.h.WaitForReady(deliveryAddressBox); err != nil {
		return fmt.Errorf("checkout page not ready: %w", err)
	}
	return nil
}

// DeliveryAddressText returns the full rendered delivery address
func (p *Checkout) DeliveryAddressText() (string, error) {
	return p.h.TextContent(deliveryAddressBox)
}

// InvoiceAddressText returns the full rendered billing address
func (p *Checkout) InvoiceAddressText() (string, error) {
	return p.h.TextContent(invoiceAddressBox)
}

// VerifyDeliveryAddress checks the rendered address against the
// registered user's details. Boolean: an assertion point for the flow.
func (p *Checkout) VerifyDeliveryAddress(user fixtures.User) bool {
	text, err := p.DeliveryAddressText()
	if err != nil {
		return false
	}
	for _, want := range []string{user.FirstName, user.LastName, user.Address1, user.City, user.Country} {
		if !strings.Contains(text, want) {
			return false
		}
	}
	return true
}

// HasOrderReview reports whether the order review table rendered
func (p *Checkout) HasOrderReview() bool {
	return p.h.IsVisible(reviewOrderTable)
}

// AddOrderComment types a note into the order comment box
func (p *Checkout) AddOrderComment(comment string) error {
	if err := p.h.ScrollIntoView(orderCommentArea); err != nil {
		return err
	}
	return p.h.Fill(orderCommentArea, comment)
}

// PlaceOrder proceeds to the payment page
func (p *Checkout) PlaceOrder() error {
	if err := p.h.ScrollIntoView(placeOrderLink); err != nil {
		return err
	}
	return p.h.Click(placeOrderLink)
}
