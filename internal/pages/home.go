package pages

import (
	"time"

	"github.com/storeqa/storefront-suite/internal/elementutil"
)

// HomePage is the landing page after login (the "My Account" view).
type HomePage struct {
	base
	editAccountLink elementutil.Target
	searchBar       elementutil.Target
	searchIcon      elementutil.Target
}

func NewHomePage(page Page, timeout time.Duration) *HomePage {
	b := newBase(page, timeout)
	return &HomePage{
		base:            b,
		editAccountLink: b.roleLink("Edit Account"),
		searchBar:       elementutil.Selector("input[placeholder='Search']"),
		searchIcon:      elementutil.Selector(".btn.btn-default.btn-lg"),
	}
}

// IsUserLoggedIn reports whether the Edit Account link is visible.
func (p *HomePage) IsUserLoggedIn() (bool, error) {
	return p.eleUtil.IsVisible(p.editAccountLink)
}

// Search runs a catalog search from the header search bar.
func (p *HomePage) Search(term string) (*SearchResultsPage, error) {
	if err := p.eleUtil.Fill(p.searchBar, term); err != nil {
		return nil, err
	}
	if err := p.eleUtil.Click(p.searchIcon); err != nil {
		return nil, err
	}
	if err := p.eleUtil.WaitForLoadState(elementutil.LoadStateLoad); err != nil {
		return nil, err
	}
	return NewSearchResultsPage(p.page, p.timeout), nil
}
