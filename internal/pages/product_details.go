package pages

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/storeqa/storefront-suite/internal/elementutil"
	"github.com/storeqa/storefront-suite/internal/productinfo"
)

// ProductDetailsPage is a single product view.
type ProductDetailsPage struct {
	base
	header          elementutil.Target
	images          elementutil.Target
	productMetaData elementutil.Target
	productPricing  elementutil.Target
}

func NewProductDetailsPage(page Page, timeout time.Duration) *ProductDetailsPage {
	return &ProductDetailsPage{
		base:            newBase(page, timeout),
		header:          elementutil.Selector("h1"),
		images:          elementutil.Selector(`//div[@id="content"]//img`),
		productMetaData: elementutil.Selector(`(//div[@id="content"]//ul[@class="list-unstyled"])[1]/li`),
		productPricing:  elementutil.Selector(`(//div[@id="content"]//ul[@class="list-unstyled"])[2]/li`),
	}
}

// Header returns the trimmed product name heading.
func (p *ProductDetailsPage) Header() (string, error) {
	header, err := p.eleUtil.InnerText(p.header)
	if err != nil {
		return "", err
	}
	header = strings.TrimSpace(header)
	log.Printf("Product header is %s", header)
	return header, nil
}

// ImageCount returns how many images the product content area shows.
func (p *ProductDetailsPage) ImageCount() (int, error) {
	n, err := p.eleUtil.Count(p.images)
	if err != nil {
		return 0, err
	}
	log.Printf("Product images: %d", n)
	return n, nil
}

// ProductInformation scrapes the header, image count, meta list and pricing
// list into a new productinfo.Info.
func (p *ProductDetailsPage) ProductInformation() (productinfo.Info, error) {
	header, err := p.Header()
	if err != nil {
		return productinfo.Info{}, err
	}
	images, err := p.ImageCount()
	if err != nil {
		return productinfo.Info{}, err
	}
	meta, err := p.eleUtil.AllInnerTexts(p.productMetaData)
	if err != nil {
		return productinfo.Info{}, err
	}
	pricing, err := p.eleUtil.AllInnerTexts(p.productPricing)
	if err != nil {
		return productinfo.Info{}, err
	}

	info, err := productinfo.Build(header, images, meta, pricing)
	if err != nil {
		return productinfo.Info{}, fmt.Errorf("failed to read product information for %s: %w", header, err)
	}
	info.Log()
	return info, nil
}
