package pages

import (
	"time"

	"github.com/storeqa/storefront-suite/internal/elementutil"
)

type SearchResultsPage struct {
	base
	results elementutil.Target
}

func NewSearchResultsPage(page Page, timeout time.Duration) *SearchResultsPage {
	return &SearchResultsPage{
		base:    newBase(page, timeout),
		results: elementutil.Selector(".product-thumb"),
	}
}

// ResultCount returns the number of product tiles on the page.
func (p *SearchResultsPage) ResultCount() (int, error) {
	return p.eleUtil.Count(p.results)
}

// SelectProduct opens the first link whose accessible name matches productName.
func (p *SearchResultsPage) SelectProduct(productName string) (*ProductDetailsPage, error) {
	if err := p.eleUtil.Click(p.roleLink(productName)); err != nil {
		return nil, err
	}
	if err := p.eleUtil.WaitForLoadState(elementutil.LoadStateLoad); err != nil {
		return nil, err
	}
	return NewProductDetailsPage(p.page, p.timeout), nil
}
