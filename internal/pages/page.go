// Package pages holds the page objects for the storefront: each one owns the
// locators of a single view and returns the next page object in the flow.
package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/storeqa/storefront-suite/internal/elementutil"
)

// Page is the subset of playwright.Page the page objects use.
type Page interface {
	elementutil.Page
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator
	GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator
	Title() (string, error)
}

// base is embedded by every page object.
type base struct {
	page    Page
	eleUtil *elementutil.ElementUtil
	timeout time.Duration
}

func newBase(page Page, timeout time.Duration) base {
	util := elementutil.New(page, timeout)
	return base{page: page, eleUtil: util, timeout: util.Timeout()}
}

// Title returns the document title of the current page.
func (b base) Title() (string, error) {
	return b.page.Title()
}

func (b base) roleLink(name string) elementutil.Target {
	return elementutil.Of(b.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: name,
	}), "link "+name)
}
