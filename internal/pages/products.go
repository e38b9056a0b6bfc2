package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/storefrontqa/journey/internal/browser"
)

// Products page selectors
const (
	productsList        = ".features_items"
	productsTitle       = ".features_items h2.title"
	productCard         = ".features_items .single-products"
	productViewLink     = ".choose a[href^='/product_details/']"
	searchInput         = "#search_product"
	searchButton        = "#submit_search"
	productAddToCart    = ".productinfo a.add-to-cart"
	productCardModal    = "#cartModal .modal-content"
	continueShoppingBtn = "#cartModal .close-modal"
	viewCartModalLink   = "#cartModal a[href='/view_cart']"
)

// Products wraps the "All Products" listing and its search results
type Products struct {
	h *browser.Helper
}

// NewProducts binds the products page to a helper
func NewProducts(h *browser.Helper) *Products {
	return &Products{h: h}
}

// Open navigates directly to the product listing
func (p *Products) Open() error {
	if err := p.h.Goto("/products"); err != nil {
		return err
	}
	return p.WaitReady()
}

// WaitReady gates on the product grid being visible
func (p *Products) WaitReady() error {
	if err := p.h.WaitForReady(productsList); err != nil {
		return fmt.Errorf("products page not ready: %w", err)
	}
	return nil
}

// Title returns the listing heading ("All Products" or
// "Searched Products")
func (p *Products) Title() (string, error) {
	return p.h.TextContent(productsTitle)
}

// ProductCount returns how many product cards are on the page
func (p *Products) ProductCount() (int, error) {
	return p.h.Count(productCard)
}

// Search submits a search term and waits for the result grid
func (p *Products) Search(term string) error {
	if err := p.h.Fill(searchInput, term); err != nil {
		return err
	}
	if err := p.h.Click(searchButton); err != nil {
		return err
	}
	return p.WaitReady()
}

// ViewProduct opens the detail page of the product at the given
// zero-based index in the grid
func (p *Products) ViewProduct(index int) error {
	link := p.h.Page().Locator(productViewLink).Nth(index)
	if err := link.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("failed to scroll product %d into view: %w", index, err)
	}
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to open product %d: %w", index, err)
	}
	return p.h.WaitForPageLoad()
}

// AddToCartFromGrid adds the product at the given index straight from
// the listing and waits for the confirmation modal. The gesture
// retries as one unit: the grid's hover overlay detaches the button
// mid-click when the carousel is still settling.
func (p *Products) AddToCartFromGrid(index int) error {
	err := browser.RetryVoid(func() error {
		card := p.h.Page().Locator(productAddToCart).Nth(index)
		if err := card.ScrollIntoViewIfNeeded(); err != nil {
			return fmt.Errorf("failed to scroll add-to-cart %d into view: %w", index, err)
		}
		if err := card.Click(); err != nil {
			return fmt.Errorf("failed to add product %d to cart: %w", index, err)
		}
		return nil
	}, browser.DefaultBackoff())
	if err != nil {
		return err
	}
	return p.h.WaitForElement(productCardModal)
}

// IsAddedModalVisible reports whether the added-to-cart modal is shown
func (p *Products) IsAddedModalVisible() bool {
	return p.h.IsVisible(productCardModal)
}

// ContinueShopping dismisses the added-to-cart modal
func (p *Products) ContinueShopping() error {
	if err := p.h.Click(continueShoppingBtn); err != nil {
		return err
	}
	// The modal fades out; wait for it to detach before the next gesture
	return p.h.Page().Locator(productCardModal).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateHidden,
	})
}

// ViewCartFromModal follows the modal's "View Cart" link
func (p *Products) ViewCartFromModal() error {
	return p.h.Click(viewCartModalLink)
}
