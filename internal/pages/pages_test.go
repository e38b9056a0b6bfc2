package pages

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/storefrontqa/journey/internal/browser"
	"github.com/storefrontqa/journey/internal/config"
)

var (
	pw        *playwright.Playwright
	pwBrowser playwright.Browser
	pwErr     error
)

// TestMain launches one shared Chromium for all page tests. Browsers
// must be installed first (journey install); tests skip when the
// driver is unavailable so unit-only environments stay green.
func TestMain(m *testing.M) {
	pw, pwErr = playwright.Run()
	if pwErr == nil {
		pwBrowser, pwErr = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
		})
	}

	code := m.Run()

	if pwBrowser != nil {
		pwBrowser.Close()
	}
	if pw != nil {
		pw.Stop()
	}
	os.Exit(code)
}

// newTestHelper opens a fresh page against the given test server
func newTestHelper(t *testing.T, server *httptest.Server) *browser.Helper {
	t.Helper()

	cfg := config.LoadConfig(func(string) string { return "" })
	cfg.BaseURL = server.URL
	cfg.ActionTimeout = 5 * time.Second
	cfg.AssertionTimeout = 5 * time.Second
	cfg.NetworkIdleTimeout = 2 * time.Second

	return newTestHelperWithConfig(t, cfg)
}

func newTestHelperWithConfig(t *testing.T, cfg config.Config) *browser.Helper {
	t.Helper()
	if pwErr != nil {
		t.Skipf("playwright unavailable: %v", pwErr)
	}

	context, err := pwBrowser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	require.NoError(t, err, "failed to create browser context")
	t.Cleanup(func() { context.Close() })

	page, err := context.NewPage()
	require.NoError(t, err, "failed to create page")

	return browser.NewHelper(page, cfg)
}

func serveHTML(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, body)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

const cartWithModalHTML = `<!DOCTYPE html>
<html><body>
<table id="cart_info_table"><tbody>
<tr><td class="cart_description"><h4><a href="#">Blue Top</a></h4></td>
<td class="cart_price"><p>Rs. 500</p></td>
<td class="cart_quantity"><button class="disabled">7</button></td>
<td class="cart_total_price">Rs. 3500</td></tr>
</tbody></table>
<a class="check_out" href="#">Proceed To Checkout</a>
<div id="checkoutModal" style="display:block"><div class="modal-content">
<p>Register / Login account to proceed on checkout.</p>
<a href="/login">Register / Login</a>
</div></div>
</body></html>`

const cartPlainHTML = `<!DOCTYPE html>
<html><body>
<table id="cart_info_table"><tbody>
<tr><td class="cart_description"><h4><a href="#">Blue Top</a></h4></td>
<td class="cart_price"><p>Rs. 500</p></td>
<td class="cart_quantity"><button class="disabled">3</button></td>
<td class="cart_total_price">Rs. 1500</td></tr>
</tbody></table>
<a class="check_out" href="#">Proceed To Checkout</a>
</body></html>`

const loginPageHTML = `<!DOCTYPE html>
<html><body>
<div class="signup-form"><h2>New User Signup!</h2>
<input data-qa="signup-name"><input data-qa="signup-email">
<button data-qa="signup-button">Signup</button></div>
<div class="login-form"><h2>Login to your account</h2>
<input data-qa="login-email"><input data-qa="login-password" type="password">
<button data-qa="login-button">Login</button></div>
</body></html>`

func TestCartRegisterLoginVisibleWithModal(t *testing.T) {
	server := serveHTML(t, map[string]string{"/view_cart": cartWithModalHTML})
	h := newTestHelper(t, server)

	cart := NewCart(h)
	require.NoError(t, cart.Open())

	// Modal node present and visible, URL unchanged
	require.True(t, cart.IsRegisterLoginVisible(),
		"visible modal should read as register/login prompt")
}

func TestCartRegisterLoginVisibleViaURLNavigation(t *testing.T) {
	server := serveHTML(t, map[string]string{
		"/view_cart": cartPlainHTML,
		"/login":     loginPageHTML,
	})
	h := newTestHelper(t, server)

	cart := NewCart(h)
	require.NoError(t, cart.Open())

	// No modal yet
	require.False(t, cart.IsRegisterLoginVisible(),
		"plain cart page should not read as register/login prompt")

	// Site implemented the transition as a full navigation
	require.NoError(t, h.Goto("/login"))
	require.True(t, cart.IsRegisterLoginVisible(),
		"/login URL should read as register/login prompt even without a modal")
}

func TestCartClickRegisterLoginPrefersModal(t *testing.T) {
	server := serveHTML(t, map[string]string{
		"/view_cart": cartWithModalHTML,
		"/login":     loginPageHTML,
	})
	h := newTestHelper(t, server)

	cart := NewCart(h)
	require.NoError(t, cart.Open())
	require.NoError(t, cart.ClickRegisterLogin())

	login := NewLogin(h)
	require.NoError(t, login.WaitReady())

	heading, err := login.SignupHeading()
	require.NoError(t, err)
	require.Equal(t, "New User Signup!", heading)
}

func TestCartReadsLineItems(t *testing.T) {
	server := serveHTML(t, map[string]string{"/view_cart": cartPlainHTML})
	h := newTestHelper(t, server)

	cart := NewCart(h)
	require.NoError(t, cart.Open())

	count, err := cart.ItemCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	name, err := cart.ItemName(0)
	require.NoError(t, err)
	require.Equal(t, "Blue Top", name)

	quantity, err := cart.ItemQuantity(0)
	require.NoError(t, err)
	require.Equal(t, "3", quantity)
}

const productDetailHTML = `<!DOCTYPE html>
<html><body>
<div class="product-information">
<h2>Blue Top</h2>
<p>Category: Women &gt; Tops</p>
<span><span>Rs. 500</span></span>
<input id="quantity" type="number" value="1"
 oninput="if(parseInt(this.value)>20)this.value='20'">
<button class="cart" onclick="document.getElementById('cartModal').style.display='block'">Add to cart</button>
</div>
<div id="cartModal" style="display:none"><div class="modal-content">
<p>Your product has been added to cart.</p>
<a href="/view_cart">View Cart</a>
</div></div>
</body></html>`

func TestSetQuantityRoundTrip(t *testing.T) {
	server := serveHTML(t, map[string]string{"/product_details/1": productDetailHTML})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/product_details/1"))

	detail := NewProductDetail(h)
	require.NoError(t, detail.WaitReady())

	for _, n := range []int{1, 7, 20} {
		require.NoError(t, detail.SetQuantity(n), "in-range quantity %d should round-trip", n)

		value, err := detail.Quantity()
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%d", n), value)
	}
}

func TestSetQuantityMismatchWhenFieldNormalizes(t *testing.T) {
	server := serveHTML(t, map[string]string{"/product_details/1": productDetailHTML})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/product_details/1"))

	detail := NewProductDetail(h)
	require.NoError(t, detail.WaitReady())

	// The field clamps anything above 20, so the round-trip must fail
	err := detail.SetQuantity(25)
	var mismatch *QuantityMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "25", mismatch.Requested)
	require.Equal(t, "20", mismatch.Observed)
}

func TestProductDetailAddToCartShowsModal(t *testing.T) {
	server := serveHTML(t, map[string]string{"/product_details/1": productDetailHTML})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/product_details/1"))

	detail := NewProductDetail(h)
	require.NoError(t, detail.WaitReady())
	require.False(t, detail.IsAddedModalVisible())

	require.NoError(t, detail.AddToCart())
	require.True(t, detail.IsAddedModalVisible())
}

const signupFormHTML = `<!DOCTYPE html>
<html><body>
<div class="login-form"><h2><b>Enter Account Information</b></h2>
<input type="radio" id="id_gender1" name="title"><input type="radio" id="id_gender2" name="title">
<input data-qa="name" value="Jane Doe">
<input data-qa="email" value="jane.doe@example.com" disabled>
<input data-qa="password" type="password">
</div>
</body></html>`

func TestSignUpValidateNameAndEmail(t *testing.T) {
	server := serveHTML(t, map[string]string{"/signup": signupFormHTML})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/signup"))

	signup := NewSignUp(h)
	require.NoError(t, signup.WaitReady())

	require.True(t, signup.ValidateNameAndEmail("Jane Doe", "jane.doe@example.com"))
	require.False(t, signup.ValidateNameAndEmail("Jane Doe", "other@example.com"))
	require.False(t, signup.ValidateNameAndEmail("John Doe", "jane.doe@example.com"))
}

func TestHelperIsVisibleNeverErrors(t *testing.T) {
	server := serveHTML(t, map[string]string{"/": `<html><body><p id="here">x</p></body></html>`})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/"))

	require.True(t, h.IsVisible("#here"))
	require.False(t, h.IsVisible("#nowhere"))
	require.False(t, h.IsVisible("!!not-a-selector!!"))
}

func TestHelperTextContentTrims(t *testing.T) {
	server := serveHTML(t, map[string]string{"/": `<html><body><p id="padded">
	  padded text
	</p></body></html>`})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/"))

	text, err := h.TextContent("#padded")
	require.NoError(t, err)
	require.Equal(t, "padded text", text)
}

func TestHelperWaitForElementTimesOut(t *testing.T) {
	server := serveHTML(t, map[string]string{"/": `<html><body></body></html>`})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/"))

	err := h.WaitForElement("#never")
	require.Error(t, err)
	require.Contains(t, err.Error(), "did not become visible")
}

const lateButtonHTML = `<!DOCTYPE html>
<html><body>
<button id="late" style="display:none"
 onclick="document.getElementById('state').textContent='clicked'">Go</button>
<p id="state">pending</p>
<script>
setTimeout(function(){document.getElementById('late').style.display='inline'}, 2000)
</script>
</body></html>`

func TestRetryClickAbsorbsSlowElement(t *testing.T) {
	server := serveHTML(t, map[string]string{"/": lateButtonHTML})

	cfg := config.LoadConfig(func(string) string { return "" })
	cfg.BaseURL = server.URL
	cfg.ActionTimeout = 500 * time.Millisecond
	cfg.AssertionTimeout = 5 * time.Second
	cfg.NetworkIdleTimeout = 2 * time.Second
	h := newTestHelperWithConfig(t, cfg)
	require.NoError(t, h.Goto("/"))

	// A single click gives up before the button appears
	require.Error(t, h.Click("#late"))

	// The retrying click survives the late reveal
	require.NoError(t, h.RetryClick("#late"))

	state, err := h.TextContent("#state")
	require.NoError(t, err)
	require.Equal(t, "clicked", state)
}

func TestWaitReadyUsesAssertionBudget(t *testing.T) {
	server := serveHTML(t, map[string]string{"/products": `<html><body><p>bare</p></body></html>`})

	cfg := config.LoadConfig(func(string) string { return "" })
	cfg.BaseURL = server.URL
	cfg.ActionTimeout = 30 * time.Second
	cfg.AssertionTimeout = 500 * time.Millisecond
	cfg.NetworkIdleTimeout = 2 * time.Second
	h := newTestHelperWithConfig(t, cfg)
	require.NoError(t, h.Goto("/products"))

	start := time.Now()
	err := NewProducts(h).WaitReady()
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Contains(t, err.Error(), "not ready")
	require.Less(t, elapsed, 5*time.Second,
		"readiness gate must give up on the assertion budget, not the interaction one")
}

func TestHelperIsMobileViewport(t *testing.T) {
	server := serveHTML(t, map[string]string{"/": `<html><body></body></html>`})
	h := newTestHelper(t, server)
	require.NoError(t, h.Goto("/"))

	require.False(t, h.IsMobileViewport(), "1280px wide viewport is not mobile")

	require.NoError(t, h.Page().SetViewportSize(375, 812))
	require.True(t, h.IsMobileViewport(), "375px wide viewport is mobile")
}
