package productinfo

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors shared with the browser-side page object.
const (
	contentSelector  = "#content"
	detailsSelector  = "#content ul.list-unstyled"
	imageSelector    = "#content img"
	headerSelector   = "h1"
	whitespaceCutset = " \t\r\n"
)

// FromHTML extracts an Info from a rendered product page without a browser.
func FromHTML(r io.Reader) (Info, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Info{}, fmt.Errorf("failed to parse product page: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument extracts an Info from an already parsed product page.
func FromDocument(doc *goquery.Document) (Info, error) {
	if doc.Find(contentSelector).Length() == 0 {
		return Info{}, fmt.Errorf("product page has no %s element", contentSelector)
	}

	lists := doc.Find(detailsSelector)
	if lists.Length() < 2 {
		return Info{}, fmt.Errorf("%w: found %d detail lists", ErrMissingPricing, lists.Length())
	}

	header := collapse(doc.Find(headerSelector).First().Text())
	images := doc.Find(imageSelector).Length()

	return Build(header, images, itemTexts(lists.Eq(0)), itemTexts(lists.Eq(1)))
}

func itemTexts(list *goquery.Selection) []string {
	var texts []string
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		texts = append(texts, collapse(li.Text()))
	})
	return texts
}

// collapse approximates innerText for the simple inline markup of the details lists.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.Trim(s, whitespaceCutset)), " ")
}
