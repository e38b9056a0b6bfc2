package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/storefrontqa/journey/internal/browser"
)

// Cart page selectors
const (
	cartTable          = "#cart_info_table"
	cartRow            = "#cart_info_table tbody tr"
	cartRowName        = ".cart_description h4 a"
	cartRowPrice       = ".cart_price p"
	cartRowQuantity    = ".cart_quantity button"
	cartRowTotal       = ".cart_total_price"
	cartRowDelete      = ".cart_quantity_delete"
	cartEmptyBanner    = "#empty_cart"
	proceedToCheckout  = "a.check_out"
	checkoutModal      = "#checkoutModal .modal-content"
	modalRegisterLogin = "#checkoutModal a[href='/login']"
	pageRegisterLogin  = "a[href='/login']"
)

// Cart wraps the shopping cart page. The register/login transition out
// of it is the one place the site is allowed two implementations: a
// modal overlay or a full navigation to /login. Both are tolerated.
type Cart struct {
	h *browser.Helper
}

// NewCart binds the cart page to a helper
func NewCart(h *browser.Helper) *Cart {
	return &Cart{h: h}
}

// Open navigates directly to the cart
func (p *Cart) Open() error {
	if err := p.h.Goto("/view_cart"); err != nil {
		return err
	}
	return p.WaitReady()
}

// WaitReady gates on the cart table or the empty-cart banner
func (p *Cart) WaitReady() error {
	if p.h.IsVisible(cartEmptyBanner) {
		return nil
	}
	if err := p.h.WaitForReady(cartTable); err != nil {
		return fmt.Errorf("cart page not ready: %w", err)
	}
	return nil
}

// IsEmpty reports whether the cart shows its empty state
func (p *Cart) IsEmpty() bool {
	return p.h.IsVisible(cartEmptyBanner)
}

// ItemCount returns the number of line items
func (p *Cart) ItemCount() (int, error) {
	if p.IsEmpty() {
		return 0, nil
	}
	return p.h.Count(cartRow)
}

// ItemName returns the product name of the line item at index
func (p *Cart) ItemName(index int) (string, error) {
	return p.rowText(index, cartRowName)
}

// ItemPrice returns the unit price of the line item at index
func (p *Cart) ItemPrice(index int) (string, error) {
	return p.rowText(index, cartRowPrice)
}

// ItemQuantity returns the quantity of the line item at index, as the
// string the site renders
func (p *Cart) ItemQuantity(index int) (string, error) {
	return p.rowText(index, cartRowQuantity)
}

// ItemTotal returns the line total of the item at index
func (p *Cart) ItemTotal(index int) (string, error) {
	return p.rowText(index, cartRowTotal)
}

// RemoveItem deletes the line item at index and waits for the row to
// go away
func (p *Cart) RemoveItem(index int) error {
	row := p.h.Page().Locator(cartRow).Nth(index)
	if err := row.Locator(cartRowDelete).Click(); err != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", index, err)
	}
	return p.h.WaitForPageLoad()
}

// rowText reads a cell of the line item at index
func (p *Cart) rowText(index int, selector string) (string, error) {
	text, err := p.h.Page().Locator(cartRow).Nth(index).Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read %q of cart item %d: %w", selector, index, err)
	}
	return strings.TrimSpace(text), nil
}

// ProceedToCheckout clicks through to checkout. Depending on auth
// state the site either navigates or raises the register/login modal;
// callers check IsRegisterLoginVisible afterwards. The click retries:
// the sticky cart footer re-renders under it on slow loads.
func (p *Cart) ProceedToCheckout() error {
	if err := p.h.ScrollIntoView(proceedToCheckout); err != nil {
		return err
	}
	if err := p.h.RetryClick(proceedToCheckout); err != nil {
		return err
	}
	// Give the modal or navigation a moment to materialize
	return p.h.WaitForPageLoad()
}

// IsRegisterLoginVisible reports whether the checkout flow is blocked
// on authentication: either the modal is showing, or the site chose a
// full navigation and the URL already points at the login page.
func (p *Cart) IsRegisterLoginVisible() bool {
	if p.h.IsVisible(checkoutModal) {
		return true
	}
	return strings.Contains(p.h.Page().URL(), "/login")
}

// ClickRegisterLogin follows the register/login link, preferring the
// modal-scoped one when the modal is up and falling back to the
// page-level link otherwise.
func (p *Cart) ClickRegisterLogin() error {
	if p.h.IsVisible(checkoutModal) {
		if err := p.h.Click(modalRegisterLogin); err != nil {
			return err
		}
	} else if err := p.h.Click(pageRegisterLogin); err != nil {
		return err
	}

	if err := p.h.Page().WaitForURL("**/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		return fmt.Errorf("did not reach login page: %w", err)
	}
	return nil
}
