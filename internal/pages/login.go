package pages

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/elementutil"
)

// InvalidLoginWarning is shown when the credentials do not match an account.
const InvalidLoginWarning = "Warning: No match for E-Mail Address and/or Password."

// ErrNotLoggedIn is returned by LoginAs when the account page never shows up.
var ErrNotLoggedIn = errors.New("logged-in indicator not visible after login")

// LoginPage is the account login form.
type LoginPage struct {
	base
	emailID        elementutil.Target
	password       elementutil.Target
	loginButton    elementutil.Target
	warningMessage elementutil.Target
}

// NewLoginPage builds the login page object for page.
func NewLoginPage(page Page, timeout time.Duration) *LoginPage {
	b := newBase(page, timeout)
	return &LoginPage{
		base:     b,
		emailID:  elementutil.Selector("#input-email"),
		password: elementutil.Selector("#input-password"),
		loginButton: elementutil.Of(page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
			Name: "Login",
		}), "Login button"),
		warningMessage: elementutil.Of(page.GetByText(InvalidLoginWarning, playwright.PageGetByTextOptions{
			Exact: playwright.Bool(true),
		}), "login warning"),
	}
}

// Goto opens the login route of the storefront at baseURL.
func (p *LoginPage) Goto(baseURL string) error {
	url := config.LoginURL(baseURL)
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("failed to open login page %s: %w", url, err)
	}
	return nil
}

// Login submits the form and returns the page the user lands on.
func (p *LoginPage) Login(username, password string) (*HomePage, error) {
	if err := p.eleUtil.Fill(p.emailID, username); err != nil {
		return nil, err
	}
	if err := p.eleUtil.Fill(p.password, password); err != nil {
		return nil, err
	}
	if err := p.eleUtil.Click(p.loginButton); err != nil {
		return nil, err
	}
	if err := p.eleUtil.WaitForLoadState(elementutil.LoadStateLoad); err != nil {
		return nil, err
	}
	return NewHomePage(p.page, p.timeout), nil
}

// WarningMessage returns the failed-login warning text.
func (p *LoginPage) WarningMessage() (string, error) {
	msg, err := p.eleUtil.Text(p.warningMessage)
	if err != nil {
		return "", err
	}
	log.Printf("Failed login warning: %s", msg)
	return msg, nil
}

// LoginAs opens the login page, signs in and checks the account page is shown.
func LoginAs(page Page, baseURL, username, password string, timeout time.Duration) (*HomePage, error) {
	loginPage := NewLoginPage(page, timeout)
	if err := loginPage.Goto(baseURL); err != nil {
		return nil, err
	}
	home, err := loginPage.Login(username, password)
	if err != nil {
		return nil, err
	}
	loggedIn, err := home.IsUserLoggedIn()
	if err != nil {
		return nil, err
	}
	if !loggedIn {
		return nil, fmt.Errorf("%w: %s", ErrNotLoggedIn, username)
	}
	return home, nil
}
