package handlers

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeqa/storefront-suite/internal/models"
	"github.com/storeqa/storefront-suite/internal/productinfo"
	"github.com/storeqa/storefront-suite/internal/repository"
	"github.com/storeqa/storefront-suite/internal/services"
)

const (
	demoEmail    = "demo.shopper@storeqa.test"
	demoPassword = "Shopper@2024"
)

func newTestStore(t *testing.T) *httptest.Server {
	t.Helper()
	store := repository.NewMemoryStore(models.SeedProducts())
	accounts := services.NewAccountService(store)
	_, err := accounts.Register(context.Background(), demoEmail, demoPassword, "Demo", "Shopper")
	require.NoError(t, err)

	handler, err := NewStoreHandler(services.NewCatalogService(store), accounts)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/image/", ImageHandler{})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newBrowserClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getDocument(t *testing.T, client *http.Client, rawURL string) (*goquery.Document, *http.Response) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc, resp
}

func login(t *testing.T, client *http.Client, serverURL, email, password string) (*goquery.Document, *http.Response) {
	t.Helper()
	resp, err := client.PostForm(serverURL+RouteURL(RouteLogin, nil), url.Values{
		"email":    {email},
		"password": {password},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc, resp
}

func TestStoreHandler_LoginPage(t *testing.T) {
	server := newTestStore(t)
	doc, resp := getDocument(t, server.Client(), server.URL+RouteURL(RouteLogin, nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Account Login", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("#input-email").Length())
	assert.Equal(t, 1, doc.Find("#input-password").Length())
	assert.Equal(t, "Login", doc.Find(`input[type="submit"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find(".alert-danger").Length())
}

func TestStoreHandler_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		expectedTitle string
		loggedIn      bool
	}{
		{name: "valid credentials", email: demoEmail, password: demoPassword, expectedTitle: "My Account", loggedIn: true},
		{name: "email case ignored", email: strings.ToUpper(demoEmail), password: demoPassword, expectedTitle: "My Account", loggedIn: true},
		{name: "wrong password", email: demoEmail, password: "wrong", expectedTitle: "Account Login"},
		{name: "unknown account", email: "ghost@storeqa.test", password: "x", expectedTitle: "Account Login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestStore(t)
			client := newBrowserClient(t)

			doc, resp := login(t, client, server.URL, tt.email, tt.password)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expectedTitle, doc.Find("title").Text())

			editLink := doc.Find("#content a").FilterFunction(func(_ int, s *goquery.Selection) bool {
				return s.Text() == "Edit Account"
			})
			warning := doc.Find(".alert-danger")
			if tt.loggedIn {
				assert.Equal(t, 1, editLink.Length())
				assert.Equal(t, 0, warning.Length())
				assert.Equal(t, "account/account", resp.Request.URL.Query().Get("route"))
			} else {
				assert.Equal(t, 0, editLink.Length())
				assert.Equal(t, LoginWarning, warning.Text())
			}
		})
	}
}

func TestStoreHandler_AccountRequiresLogin(t *testing.T) {
	server := newTestStore(t)
	client := server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := client.Get(server.URL + RouteURL(RouteAccount, nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, RouteURL(RouteLogin, nil), resp.Header.Get("Location"))
}

func TestStoreHandler_Logout(t *testing.T) {
	server := newTestStore(t)
	client := newBrowserClient(t)
	login(t, client, server.URL, demoEmail, demoPassword)

	doc, _ := getDocument(t, client, server.URL+RouteURL(RouteLogout, nil))
	assert.Equal(t, "Account Logout", doc.Find("title").Text())

	// the account page now bounces back to login
	doc, _ = getDocument(t, client, server.URL+RouteURL(RouteAccount, nil))
	assert.Equal(t, "Account Login", doc.Find("title").Text())
}

func TestStoreHandler_Search(t *testing.T) {
	tests := []struct {
		term     string
		expected []string
	}{
		{term: "macbook", expected: []string{"MacBook", "MacBook Air", "MacBook Pro"}},
		{term: "Samsung", expected: []string{"Samsung Galaxy Tab 10.1", "Samsung SyncMaster 941BW"}},
		{term: "unicorn", expected: nil},
	}

	server := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			doc, resp := getDocument(t, server.Client(),
				server.URL+RouteURL(RouteSearch, url.Values{"search": {tt.term}}))

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Search - "+tt.term, doc.Find("title").Text())

			var names []string
			doc.Find(".product-thumb").Each(func(_ int, s *goquery.Selection) {
				names = append(names, s.Find(".caption h4 a").Text())
				assert.Equal(t, s.Find(".caption h4 a").Text(), s.Find(".image img").AttrOr("alt", ""))
			})
			assert.Equal(t, tt.expected, names)
			assert.Equal(t, tt.term, doc.Find(`input[placeholder="Search"]`).AttrOr("value", ""))
			assert.Equal(t, 1, doc.Find(".btn.btn-default.btn-lg").Length())
		})
	}
}

func TestStoreHandler_SearchFormSubmitsToSearchRoute(t *testing.T) {
	server := newTestStore(t)
	doc, _ := getDocument(t, server.Client(), server.URL+RouteURL(RouteHome, nil))

	form := doc.Find("form#search")
	assert.Equal(t, "get", form.AttrOr("method", ""))
	assert.Equal(t, "/index.php", form.AttrOr("action", ""))
	assert.Equal(t, RouteSearch, form.Find(`input[name="route"]`).AttrOr("value", ""))
	assert.Equal(t, "submit", form.Find(".btn.btn-default.btn-lg").AttrOr("type", ""))
}

func TestStoreHandler_ProductPage(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		expected  map[string]string
		missing   []string
	}{
		{
			name:      "MacBook Pro",
			productID: "45",
			expected: map[string]string{
				productinfo.KeyHeader:       "MacBook Pro",
				productinfo.KeyImageCount:   "4",
				productinfo.KeyBrand:        "Apple",
				productinfo.KeyProductCode:  "Product 18",
				productinfo.KeyRewardPoints: "800",
				productinfo.KeyAvailability: "Out Of Stock",
				productinfo.KeyPrice:        "$2,000.00",
				productinfo.KeyExTaxPrice:   "$2,000.00",
			},
		},
		{
			name:      "Samsung Galaxy Tab 10.1",
			productID: "49",
			expected: map[string]string{
				productinfo.KeyHeader:       "Samsung Galaxy Tab 10.1",
				productinfo.KeyImageCount:   "7",
				productinfo.KeyProductCode:  "SAM1",
				productinfo.KeyRewardPoints: "1000",
				productinfo.KeyAvailability: "Pre-Order",
				productinfo.KeyPrice:        "$241.99",
				productinfo.KeyExTaxPrice:   "$199.99",
			},
			missing: []string{productinfo.KeyBrand},
		},
		{
			name:      "Samsung SyncMaster has no reward points",
			productID: "33",
			expected: map[string]string{
				productinfo.KeyHeader:       "Samsung SyncMaster 941BW",
				productinfo.KeyImageCount:   "1",
				productinfo.KeyProductCode:  "Product 6",
				productinfo.KeyAvailability: "2-3 Days",
				productinfo.KeyPrice:        "$242.00",
				productinfo.KeyExTaxPrice:   "$200.00",
			},
			missing: []string{productinfo.KeyBrand, productinfo.KeyRewardPoints},
		},
	}

	server := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := server.Client().Get(server.URL + RouteURL(RouteProduct, url.Values{"product_id": {tt.productID}}))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			info, err := productinfo.FromHTML(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, info.Map())
			for _, key := range tt.missing {
				_, ok := info.Get(key)
				assert.False(t, ok, "unexpected key %s", key)
			}
		})
	}
}

func TestStoreHandler_NotFound(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "unknown route", path: RouteURL("account/wishlist", nil)},
		{name: "missing product", path: RouteURL(RouteProduct, url.Values{"product_id": {"999"}})},
		{name: "bad product id", path: RouteURL(RouteProduct, url.Values{"product_id": {"abc"}})},
		{name: "unknown path", path: "/admin/index.php"},
	}

	server := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, resp := getDocument(t, server.Client(), server.URL+tt.path)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "Page not found!", doc.Find("title").Text())
		})
	}
}

func TestStoreHandler_MethodNotAllowed(t *testing.T) {
	server := newTestStore(t)

	req, err := http.NewRequest(http.MethodDelete, server.URL+RouteURL(RouteSearch, nil), nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET", resp.Header.Get("Allow"))
}

func TestImageHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/image/catalog/demo/macbook_pro_1.jpg", nil)
	w := httptest.NewRecorder()

	ImageHandler{}.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "macbook_pro_1")
}
