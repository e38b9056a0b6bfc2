package e2e

import (
	"strings"
	"testing"

	"github.com/storefrontqa/journey/internal/fixtures"
	"github.com/storefrontqa/journey/internal/pages"
)

// TestHomeNewsletterSubscription covers the footer subscription widget
// Feature: Newsletter subscription
//
//	Scenario: Subscribe with a fresh email
//	  Given I am on the homepage
//	  When I submit an email in the subscription widget
//	  Then I see a success confirmation
func TestHomeNewsletterSubscription(t *testing.T) {
	t.Parallel()
	h := newPage(t)
	gen := fixtures.New()

	home := pages.NewHome(h)
	if err := home.Open(); err != nil {
		t.Fatalf("Failed to open homepage: %v", err)
	}

	if err := home.SubscribeToNewsletter(gen.UniqueEmail("newsletter")); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	text, err := home.SubscriptionSuccessText()
	if err != nil {
		t.Fatalf("Failed to read subscription confirmation: %v", err)
	}
	if !strings.Contains(text, "successfully subscribed") {
		t.Errorf("Subscription confirmation = %q, want success message", text)
	}
}

// TestProductSearch covers searching the listing with a vocabulary term
// Feature: Product search
//
//	Scenario: Search for a known category term
//	  Given I am on the products page
//	  When I search for a term from the fixed vocabulary
//	  Then I see the "Searched Products" heading
//	  And at least one result card
func TestProductSearch(t *testing.T) {
	t.Parallel()
	h := newPage(t)
	gen := fixtures.New()

	products := pages.NewProducts(h)
	if err := products.Open(); err != nil {
		t.Fatalf("Failed to open products page: %v", err)
	}

	term := gen.SearchTerm()
	if err := products.Search(term); err != nil {
		t.Fatalf("Failed to search for %q: %v", term, err)
	}

	title, err := products.Title()
	if err != nil {
		t.Fatalf("Failed to read listing title: %v", err)
	}
	if !strings.Contains(strings.ToUpper(title), "SEARCHED PRODUCTS") {
		t.Errorf("Listing title = %q, want 'Searched Products'", title)
	}

	count, err := products.ProductCount()
	if err != nil {
		t.Fatalf("Failed to count results: %v", err)
	}
	if count == 0 {
		t.Errorf("Search for %q returned no results", term)
	}
}

// TestCartAddAndRemove covers cart mutation without authentication
// Feature: Cart management
//
//	Scenario: Add a product from the grid and remove it
//	  Given I added a product to the cart from the listing
//	  When I remove it on the cart page
//	  Then the cart shows its empty state
func TestCartAddAndRemove(t *testing.T) {
	t.Parallel()
	h := newPage(t)

	products := pages.NewProducts(h)
	if err := products.Open(); err != nil {
		t.Fatalf("Failed to open products page: %v", err)
	}
	if err := products.AddToCartFromGrid(0); err != nil {
		t.Fatalf("Failed to add product to cart: %v", err)
	}
	if !products.IsAddedModalVisible() {
		t.Fatal("Added-to-cart modal is not visible")
	}
	if err := products.ViewCartFromModal(); err != nil {
		t.Fatalf("Failed to open cart: %v", err)
	}

	cart := pages.NewCart(h)
	if err := cart.WaitReady(); err != nil {
		t.Fatal(err)
	}
	count, err := cart.ItemCount()
	if err != nil {
		t.Fatalf("Failed to count cart items: %v", err)
	}
	if count != 1 {
		t.Fatalf("Cart has %d items, want 1", count)
	}

	if err := cart.RemoveItem(0); err != nil {
		t.Fatalf("Failed to remove cart item: %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("Cart is not empty after removing its only item")
	}
}

// TestProductReview covers the review form on a product detail page
// Feature: Product review
//
//	Scenario: Submit a review
//	  Given I am viewing a product
//	  When I submit a name, email, and review text
//	  Then I see the thank-you confirmation
func TestProductReview(t *testing.T) {
	t.Parallel()
	h := newPage(t)
	gen := fixtures.New()

	products := pages.NewProducts(h)
	if err := products.Open(); err != nil {
		t.Fatalf("Failed to open products page: %v", err)
	}
	if err := products.ViewProduct(0); err != nil {
		t.Fatalf("Failed to open product: %v", err)
	}

	detail := pages.NewProductDetail(h)
	if err := detail.WaitReady(); err != nil {
		t.Fatal(err)
	}

	user := gen.User()
	if err := detail.SubmitReview(user.Name, user.Email, gen.ReviewText()); err != nil {
		t.Fatalf("Failed to submit review: %v", err)
	}

	text, err := detail.ReviewSuccessText()
	if err != nil {
		t.Fatalf("Failed to read review confirmation: %v", err)
	}
	if !strings.Contains(text, "Thank you") {
		t.Errorf("Review confirmation = %q, want thank-you message", text)
	}
}

// TestMobileLayoutDetection pins the helper's viewport classification
// for the active profile
func TestMobileLayoutDetection(t *testing.T) {
	t.Parallel()
	h := newPage(t)

	home := pages.NewHome(h)
	if err := home.Open(); err != nil {
		t.Fatalf("Failed to open homepage: %v", err)
	}

	if fixture.Profile().Mobile != h.IsMobileViewport() {
		t.Errorf("profile mobile=%v but helper reports mobile=%v",
			fixture.Profile().Mobile, h.IsMobileViewport())
	}
}
