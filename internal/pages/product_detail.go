package pages

import (
	"fmt"
	"strconv"

	"github.com/storefrontqa/journey/internal/browser"
)

// Product detail selectors
const (
	detailInfo          = ".product-information"
	detailName          = ".product-information h2"
	detailCategory      = ".product-information p"
	detailPrice         = ".product-information span span"
	detailQuantityInput = "#quantity"
	detailAddToCart     = "button.cart"
	detailCartModal     = "#cartModal .modal-content"
	detailViewCartLink  = "#cartModal a[href='/view_cart']"
	detailCloseModal    = "#cartModal .close-modal"
	reviewNameInput     = "#name"
	reviewEmailInput    = "#email"
	reviewTextArea      = "#review"
	reviewSubmitButton  = "#button-review"
	reviewSuccessAlert  = "#review-form .alert-success span"
)

// QuantityMismatchError reports a failed quantity round-trip: the
// field did not hold the requested value after filling. This guards
// against the site's input handler normalizing or dropping keystrokes.
type QuantityMismatchError struct {
	Requested string
	Observed  string
}

func (e *QuantityMismatchError) Error() string {
	return fmt.Sprintf("quantity round-trip failed: requested %q, field holds %q", e.Requested, e.Observed)
}

// ProductDetail wraps a single product's detail page
type ProductDetail struct {
	h *browser.Helper
}

// NewProductDetail binds the detail page to a helper
func NewProductDetail(h *browser.Helper) *ProductDetail {
	return &ProductDetail{h: h}
}

// WaitReady gates on the product information panel
func (p *ProductDetail) WaitReady() error {
	if err := p.h.WaitForReady(detailInfo); err != nil {
		return fmt.Errorf("product detail page not ready: %w", err)
	}
	return nil
}

// Name returns the product name
func (p *ProductDetail) Name() (string, error) {
	return p.h.TextContent(detailName)
}

// Category returns the product's category line
func (p *ProductDetail) Category() (string, error) {
	return p.h.TextContent(detailCategory)
}

// Price returns the displayed price
func (p *ProductDetail) Price() (string, error) {
	return p.h.TextContent(detailPrice)
}

// SetQuantity fills the quantity field, then reads it back and fails
// with a QuantityMismatchError if the observed value does not equal
// the requested one exactly. The value is passed through as typed; the
// site's own validation decides what it accepts.
func (p *ProductDetail) SetQuantity(n int) error {
	requested := strconv.Itoa(n)
	if err := p.h.Fill(detailQuantityInput, requested); err != nil {
		return err
	}

	observed, err := p.h.InputValue(detailQuantityInput)
	if err != nil {
		return err
	}
	if observed != requested {
		return &QuantityMismatchError{Requested: requested, Observed: observed}
	}
	return nil
}

// Quantity reads the current quantity field value
func (p *ProductDetail) Quantity() (string, error) {
	return p.h.InputValue(detailQuantityInput)
}

// AddToCart clicks the add-to-cart button, retrying through transient
// detachment, and waits for the confirmation modal
func (p *ProductDetail) AddToCart() error {
	if err := p.h.RetryClick(detailAddToCart); err != nil {
		return err
	}
	return p.h.WaitForElement(detailCartModal)
}

// IsAddedModalVisible reports whether the added-to-cart modal is shown
func (p *ProductDetail) IsAddedModalVisible() bool {
	return p.h.IsVisible(detailCartModal)
}

// ViewCartFromModal follows the modal's "View Cart" link
func (p *ProductDetail) ViewCartFromModal() error {
	return p.h.Click(detailViewCartLink)
}

// ContinueShopping dismisses the added-to-cart modal
func (p *ProductDetail) ContinueShopping() error {
	return p.h.Click(detailCloseModal)
}

// SubmitReview scrolls to the review form and submits a review
func (p *ProductDetail) SubmitReview(name, email, text string) error {
	if err := p.h.ScrollIntoView(reviewNameInput); err != nil {
		return err
	}
	if err := p.h.Fill(reviewNameInput, name); err != nil {
		return err
	}
	if err := p.h.Fill(reviewEmailInput, email); err != nil {
		return err
	}
	if err := p.h.Fill(reviewTextArea, text); err != nil {
		return err
	}
	return p.h.Click(reviewSubmitButton)
}

// ReviewSuccessText returns the confirmation shown after submitting a
// review
func (p *ProductDetail) ReviewSuccessText() (string, error) {
	return p.h.TextContent(reviewSuccessAlert)
}
