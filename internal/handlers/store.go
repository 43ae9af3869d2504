package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/storeqa/storefront-suite/internal/models"
	"github.com/storeqa/storefront-suite/internal/services"
	"github.com/storeqa/storefront-suite/templates"
)

// SessionCookie carries the storefront login session
const SessionCookie = "OCSESSID"

// LoginWarning is rendered when credentials do not match an account
const LoginWarning = "Warning: No match for E-Mail Address and/or Password."

// Storefront routes dispatched on the route query parameter
const (
	RouteHome     = "common/home"
	RouteLogin    = "account/login"
	RouteLogout   = "account/logout"
	RouteAccount  = "account/account"
	RouteSearch   = "product/search"
	RouteProduct  = "product/product"
	routeNotFound = "error/not_found"
)

// RouteURL returns the storefront path for route with extra query values
func RouteURL(route string, params url.Values) string {
	q := url.Values{"route": {route}}
	for k, v := range params {
		q[k] = v
	}
	return "/index.php?" + q.Encode()
}

// pageData is the view model shared by every storefront template
type pageData struct {
	Title    string
	LoggedIn bool
	Search   string
	Warning  string
	Email    string
	Customer *models.Customer
	Product  *models.Product
	Products []models.Product
}

// StoreHandler renders the storefront pages on /index.php
type StoreHandler struct {
	catalog  services.CatalogService
	accounts services.AccountService
	pages    map[string]*template.Template
}

// NewStoreHandler creates a StoreHandler with the embedded templates
func NewStoreHandler(catalog services.CatalogService, accounts services.AccountService) (*StoreHandler, error) {
	pages := make(map[string]*template.Template)
	for route, file := range map[string]string{
		RouteHome:     "home.html",
		RouteLogin:    "login.html",
		RouteLogout:   "logout.html",
		RouteAccount:  "account.html",
		RouteSearch:   "search.html",
		RouteProduct:  "product.html",
		routeNotFound: "not_found.html",
	} {
		tmpl, err := templates.Parse(file)
		if err != nil {
			return nil, err
		}
		pages[route] = tmpl
	}

	return &StoreHandler{
		catalog:  catalog,
		accounts: accounts,
		pages:    pages,
	}, nil
}

// ServeHTTP dispatches on the route query parameter
func (h *StoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.php" {
		h.notFound(w, r)
		return
	}

	route := r.URL.Query().Get("route")
	switch route {
	case "", RouteHome:
		h.home(w, r)
	case RouteLogin:
		h.login(w, r)
	case RouteLogout:
		h.logout(w, r)
	case RouteAccount:
		h.account(w, r)
	case RouteSearch:
		h.search(w, r)
	case RouteProduct:
		h.product(w, r)
	default:
		h.notFound(w, r)
	}
}

func (h *StoreHandler) home(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	products, err := h.catalog.List(r.Context())
	if err != nil {
		log.Printf("Failed to load products: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	data := h.newPageData(r, "Your Store")
	data.Products = products
	h.render(w, RouteHome, http.StatusOK, data)
}

func (h *StoreHandler) login(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	data := h.newPageData(r, "Account Login")
	if r.Method == http.MethodGet {
		if data.LoggedIn {
			http.Redirect(w, r, RouteURL(RouteAccount, nil), http.StatusFound)
			return
		}
		h.render(w, RouteLogin, http.StatusOK, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	token, err := h.accounts.Login(r.Context(), email, r.PostForm.Get("password"))
	if errors.Is(err, models.ErrInvalidCredentials) {
		log.Printf("Rejected login for %s", email)
		data.Warning = LoginWarning
		data.Email = email
		h.render(w, RouteLogin, http.StatusOK, data)
		return
	}
	if err != nil {
		log.Printf("Login failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, RouteURL(RouteAccount, nil), http.StatusFound)
}

func (h *StoreHandler) logout(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.accounts.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})

	data := h.newPageData(r, "Account Logout")
	data.LoggedIn = false
	h.render(w, RouteLogout, http.StatusOK, data)
}

func (h *StoreHandler) account(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	customer := h.customer(r)
	if customer == nil {
		http.Redirect(w, r, RouteURL(RouteLogin, nil), http.StatusFound)
		return
	}
	data := h.newPageData(r, "My Account")
	data.Customer = customer
	h.render(w, RouteAccount, http.StatusOK, data)
}

func (h *StoreHandler) search(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	term := strings.TrimSpace(r.URL.Query().Get("search"))
	products, err := h.catalog.Search(r.Context(), term)
	if err != nil {
		log.Printf("Search failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	title := "Search"
	if term != "" {
		title = "Search - " + term
	}
	data := h.newPageData(r, title)
	data.Search = term
	data.Products = products
	h.render(w, RouteSearch, http.StatusOK, data)
}

func (h *StoreHandler) product(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	id, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Failed to load product %d: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := h.newPageData(r, product.Name)
	data.Search = r.URL.Query().Get("search")
	data.Product = product
	h.render(w, RouteProduct, http.StatusOK, data)
}

func (h *StoreHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, routeNotFound, http.StatusNotFound, h.newPageData(r, "Page not found!"))
}

func (h *StoreHandler) newPageData(r *http.Request, title string) pageData {
	return pageData{Title: title, LoggedIn: h.customer(r) != nil}
}

func (h *StoreHandler) customer(r *http.Request) *models.Customer {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	customer, err := h.accounts.CustomerForSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return customer
}

// render executes the page into a buffer before writing status
func (h *StoreHandler) render(w http.ResponseWriter, route string, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[route].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Failed to render %s: %v", route, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// ImageHandler serves a placeholder SVG for every catalog image path
type ImageHandler struct{}

func (ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	name := strings.TrimSuffix(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], ".jpg")
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="228" height="228"><rect width="100%%" height="100%%" fill="#eee"/><text x="50%%" y="50%%" text-anchor="middle" font-size="14">%s</text></svg>`,
		template.HTMLEscapeString(name))
}
