// Package playwrighttest provides an in-memory stand-in for the parts of
// playwright-go the page objects touch, so element and page logic can be
// tested without a browser.
package playwrighttest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// ErrNoElement is returned when an action targets an index with no match.
var ErrNoElement = errors.New("no element matches locator")

// Element is one matched node.
type Element struct {
	Text     string
	Visible  bool
	Checked  bool
	Disabled bool
}

// Call records one forwarded action.
type Call struct {
	Action  string
	Key     string
	Index   int
	Value   string
	Options any
}

// FakePage maps locator keys to elements. Keys are selectors as given,
// RoleKey(...) for GetByRole and TextKey(...) for GetByText.
type FakePage struct {
	mu       sync.Mutex
	elements map[string][]Element
	calls    []Call
	url      string
	title    string

	// OnAction runs after every recorded action and may rewire the page,
	// e.g. to emulate navigation after a click.
	OnAction func(p *FakePage, c Call)
}

// NewFakePage creates an empty page.
func NewFakePage() *FakePage {
	return &FakePage{elements: make(map[string][]Element)}
}

// RoleKey is the key GetByRole(role, name) resolves to.
func RoleKey(role, name string) string {
	return fmt.Sprintf("role=%s[name=%q]", role, name)
}

// TextKey is the key GetByText(text) resolves to.
func TextKey(text string) string {
	return fmt.Sprintf("text=%q", text)
}

// Set replaces the elements matched by key.
func (p *FakePage) Set(key string, elements ...Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[key] = elements
}

// Reset removes every element, keeping recorded calls.
func (p *FakePage) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = make(map[string][]Element)
}

// SetTitle sets the document title.
func (p *FakePage) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// Calls returns a copy of the recorded actions.
func (p *FakePage) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallsOf returns the recorded actions with the given name.
func (p *FakePage) CallsOf(action string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

func (p *FakePage) record(c Call) {
	p.mu.Lock()
	p.calls = append(p.calls, c)
	hook := p.OnAction
	p.mu.Unlock()
	if hook != nil {
		hook(p, c)
	}
}

func (p *FakePage) lookup(key string) []Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elements[key]
}

func (p *FakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return &FakeLocator{page: p, key: selector, index: -1}
}

func (p *FakePage) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	var name string
	if len(options) > 0 && options[0].Name != nil {
		name = fmt.Sprint(options[0].Name)
	}
	return &FakeLocator{page: p, key: RoleKey(string(role), name), index: -1}
}

func (p *FakePage) GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator {
	return &FakeLocator{page: p, key: TextKey(fmt.Sprint(text)), index: -1}
}

func (p *FakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	p.url = url
	p.mu.Unlock()
	p.record(Call{Action: "goto", Value: url})
	return nil, nil
}

func (p *FakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *FakePage) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, nil
}

func (p *FakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	var state string
	if len(options) > 0 && options[0].State != nil {
		state = string(*options[0].State)
	}
	p.record(Call{Action: "waitForLoadState", Value: state})
	return nil
}

// unimplementedLocator is embedded under its own name so the fake keeps the
// Locator(...) method of the interface.
type unimplementedLocator = playwright.Locator

// FakeLocator is a lazily evaluated query against a FakePage. Methods not
// overridden here panic through the nil embedded interface.
type FakeLocator struct {
	unimplementedLocator
	page  *FakePage
	key   string
	index int // -1 means all matches
}

// Key returns the locator key.
func (l *FakeLocator) Key() string { return l.key }

func (l *FakeLocator) First() playwright.Locator {
	return &FakeLocator{page: l.page, key: l.key, index: 0}
}

func (l *FakeLocator) Nth(index int) playwright.Locator {
	return &FakeLocator{page: l.page, key: l.key, index: index}
}

func (l *FakeLocator) element() (Element, error) {
	elements := l.page.lookup(l.key)
	i := l.index
	if i < 0 {
		if len(elements) != 1 {
			return Element{}, fmt.Errorf("strict mode violation: %s matched %d elements", l.key, len(elements))
		}
		i = 0
	}
	if i >= len(elements) {
		return Element{}, fmt.Errorf("%w: %s[%d]", ErrNoElement, l.key, i)
	}
	return elements[i], nil
}

func (l *FakeLocator) act(action, value string, options any) error {
	if _, err := l.element(); err != nil {
		return err
	}
	l.page.record(Call{Action: action, Key: l.key, Index: l.index, Value: value, Options: options})
	return nil
}

func (l *FakeLocator) Count() (int, error) {
	return len(l.page.lookup(l.key)), nil
}

func (l *FakeLocator) AllInnerTexts() ([]string, error) {
	var texts []string
	for _, e := range l.page.lookup(l.key) {
		texts = append(texts, e.Text)
	}
	return texts, nil
}

func (l *FakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	return l.act("fill", value, first(options))
}

func (l *FakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	return l.act("click", "", first(options))
}

func (l *FakeLocator) Dblclick(options ...playwright.LocatorDblclickOptions) error {
	return l.act("dblclick", "", first(options))
}

func (l *FakeLocator) PressSequentially(text string, options ...playwright.LocatorPressSequentiallyOptions) error {
	return l.act("pressSequentially", text, first(options))
}

func (l *FakeLocator) SelectOption(values playwright.SelectOptionValues, options ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	if err := l.act("selectOption", "", values); err != nil {
		return nil, err
	}
	return nil, nil
}

func (l *FakeLocator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	e, err := l.element()
	return e.Text, err
}

func (l *FakeLocator) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	e, err := l.element()
	return e.Text, err
}

func (l *FakeLocator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	e, err := l.element()
	if err != nil {
		return false, nil
	}
	return e.Visible, nil
}

func (l *FakeLocator) IsHidden(options ...playwright.LocatorIsHiddenOptions) (bool, error) {
	visible, err := l.IsVisible()
	return !visible, err
}

func (l *FakeLocator) IsChecked(options ...playwright.LocatorIsCheckedOptions) (bool, error) {
	e, err := l.element()
	return e.Checked, err
}

func (l *FakeLocator) IsEnabled(options ...playwright.LocatorIsEnabledOptions) (bool, error) {
	e, err := l.element()
	return !e.Disabled, err
}

func (l *FakeLocator) IsDisabled(options ...playwright.LocatorIsDisabledOptions) (bool, error) {
	e, err := l.element()
	return e.Disabled, err
}

func (l *FakeLocator) IsEditable(options ...playwright.LocatorIsEditableOptions) (bool, error) {
	e, err := l.element()
	return !e.Disabled, err
}

func (l *FakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	e, err := l.element()
	if err != nil {
		return err
	}
	if !e.Visible {
		return fmt.Errorf("timeout waiting for %s to be visible", l.key)
	}
	return nil
}

func first[T any](options []T) any {
	if len(options) == 0 {
		return nil
	}
	return options[0]
}
