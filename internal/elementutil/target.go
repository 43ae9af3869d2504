package elementutil

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Target identifies the element(s) an action works on: either a selector
// resolved against the page, or a locator the caller already built.
type Target struct {
	selector string
	locator  playwright.Locator
	name     string
	index    int
	indexed  bool
}

// Selector targets the elements matching a CSS/XPath/Playwright selector.
func Selector(selector string) Target {
	return Target{selector: selector}
}

// Of targets an existing locator. name is used in logs and errors.
func Of(locator playwright.Locator, name string) Target {
	return Target{locator: locator, name: name}
}

// Nth returns a copy of t that resolves to the zero-based index-th match.
func (t Target) Nth(index int) Target {
	t.index = index
	t.indexed = true
	return t
}

// Index reports the explicit index, if any.
func (t Target) Index() (int, bool) {
	return t.index, t.indexed
}

func (t Target) String() string {
	label := t.name
	if t.locator == nil {
		label = fmt.Sprintf("%q", t.selector)
	} else if label == "" {
		label = "locator"
	}
	if t.indexed {
		return fmt.Sprintf("%s[%d]", label, t.index)
	}
	return label
}
