// Package elementutil is the shared layer between page objects and playwright-go.
// Each method resolves a Target to a single locator and forwards one call,
// injecting the default timeout.
package elementutil

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeout is used when an ElementUtil is created without one.
const DefaultTimeout = 30 * time.Second

// DefaultTypingDelay is the pause between key presses in PressSequentially.
const DefaultTypingDelay = 300 * time.Millisecond

// Page is the part of playwright.Page the element utility needs.
type Page interface {
	Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator
	WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error
}

// LoadState names the page lifecycle events WaitForLoadState understands.
type LoadState string

const (
	LoadStateLoad             LoadState = "load"
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

// ClickOptions tunes a single click.
type ClickOptions struct {
	Force   bool
	Timeout time.Duration
}

// ElementUtil forwards element actions for one page.
type ElementUtil struct {
	page    Page
	timeout time.Duration
}

// New creates an ElementUtil. A non-positive timeout selects DefaultTimeout.
func New(page Page, timeout time.Duration) *ElementUtil {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ElementUtil{page: page, timeout: timeout}
}

// Timeout returns the timeout injected into each action.
func (u *ElementUtil) Timeout() time.Duration {
	return u.timeout
}

// Locator returns every element matched by t, ignoring any index.
func (u *ElementUtil) Locator(t Target) playwright.Locator {
	if t.locator != nil {
		return t.locator
	}
	return u.page.Locator(t.selector)
}

// Resolve returns the single element an action on t operates on: the nth
// match when t carries an index, otherwise the first.
func (u *ElementUtil) Resolve(t Target) playwright.Locator {
	all := u.Locator(t)
	if i, ok := t.Index(); ok {
		return all.Nth(i)
	}
	return all.First()
}

// Fill replaces the value of an input. The value itself is not logged.
func (u *ElementUtil) Fill(t Target, value string) error {
	if err := u.Resolve(t).Fill(value, playwright.LocatorFillOptions{
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("fill %s: %w", t, err)
	}
	log.Printf("Filled %s (%d chars)", t, len(value))
	return nil
}

// Click clicks the element. Options override force and timeout.
func (u *ElementUtil) Click(t Target, opts ...ClickOptions) error {
	var o ClickOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = u.timeout
	}
	if err := u.Resolve(t).Click(playwright.LocatorClickOptions{
		Force:   playwright.Bool(o.Force),
		Timeout: u.ms(timeout),
	}); err != nil {
		return fmt.Errorf("click %s: %w", t, err)
	}
	log.Printf("Clicked %s", t)
	return nil
}

// PressSequentially types value one key at a time. A non-positive delay
// selects DefaultTypingDelay.
func (u *ElementUtil) PressSequentially(t Target, value string, delay time.Duration) error {
	if delay <= 0 {
		delay = DefaultTypingDelay
	}
	if err := u.Resolve(t).PressSequentially(value, playwright.LocatorPressSequentiallyOptions{
		Delay:   u.ms(delay),
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("type into %s: %w", t, err)
	}
	log.Printf("Typed into %s sequentially", t)
	return nil
}

// RightClick opens the context menu on the element.
func (u *ElementUtil) RightClick(t Target) error {
	if err := u.Resolve(t).Click(playwright.LocatorClickOptions{
		Button:  playwright.MouseButtonRight,
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("right click %s: %w", t, err)
	}
	return nil
}

// DoubleClick double-clicks the element.
func (u *ElementUtil) DoubleClick(t Target) error {
	if err := u.Resolve(t).Dblclick(playwright.LocatorDblclickOptions{
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("double click %s: %w", t, err)
	}
	return nil
}

// SelectByValue picks the dropdown option whose value attribute matches.
func (u *ElementUtil) SelectByValue(t Target, value string) error {
	return u.selectOption(t, playwright.SelectOptionValues{Values: playwright.StringSlice(value)})
}

// SelectByLabel picks the dropdown option whose visible label matches.
func (u *ElementUtil) SelectByLabel(t Target, label string) error {
	return u.selectOption(t, playwright.SelectOptionValues{Labels: playwright.StringSlice(label)})
}

// SelectByIndex picks the dropdown option at a zero-based position.
func (u *ElementUtil) SelectByIndex(t Target, index int) error {
	return u.selectOption(t, playwright.SelectOptionValues{Indexes: &[]int{index}})
}

func (u *ElementUtil) selectOption(t Target, values playwright.SelectOptionValues) error {
	if _, err := u.Resolve(t).SelectOption(values, playwright.LocatorSelectOptionOptions{
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("select option in %s: %w", t, err)
	}
	return nil
}

// Text returns the element's textContent.
func (u *ElementUtil) Text(t Target) (string, error) {
	text, err := u.Resolve(t).TextContent(playwright.LocatorTextContentOptions{
		Timeout: u.ms(u.timeout),
	})
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", t, err)
	}
	return text, nil
}

// InnerText returns the rendered text of the element.
func (u *ElementUtil) InnerText(t Target) (string, error) {
	text, err := u.Resolve(t).InnerText(playwright.LocatorInnerTextOptions{
		Timeout: u.ms(u.timeout),
	})
	if err != nil {
		return "", fmt.Errorf("inner text of %s: %w", t, err)
	}
	return text, nil
}

// AllInnerTexts returns the rendered text of every element matched by t.
func (u *ElementUtil) AllInnerTexts(t Target) ([]string, error) {
	texts, err := u.Locator(t).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("inner texts of %s: %w", t, err)
	}
	return texts, nil
}

// Count returns how many elements t matches right now.
func (u *ElementUtil) Count(t Target) (int, error) {
	n, err := u.Locator(t).Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t, err)
	}
	return n, nil
}

func (u *ElementUtil) IsChecked(t Target) (bool, error) {
	return u.Resolve(t).IsChecked(playwright.LocatorIsCheckedOptions{Timeout: u.ms(u.timeout)})
}

func (u *ElementUtil) IsVisible(t Target) (bool, error) {
	return u.Resolve(t).IsVisible()
}

func (u *ElementUtil) IsEnabled(t Target) (bool, error) {
	return u.Resolve(t).IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: u.ms(u.timeout)})
}

func (u *ElementUtil) IsDisabled(t Target) (bool, error) {
	return u.Resolve(t).IsDisabled(playwright.LocatorIsDisabledOptions{Timeout: u.ms(u.timeout)})
}

func (u *ElementUtil) IsEditable(t Target) (bool, error) {
	return u.Resolve(t).IsEditable(playwright.LocatorIsEditableOptions{Timeout: u.ms(u.timeout)})
}

func (u *ElementUtil) IsHidden(t Target) (bool, error) {
	return u.Resolve(t).IsHidden()
}

// WaitForVisible waits up to the default timeout for the element to become
// visible. Any failure, a timeout included, is reported as false.
func (u *ElementUtil) WaitForVisible(t Target) bool {
	err := u.Resolve(t).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: u.ms(u.timeout),
	})
	if err != nil {
		log.Printf("%s not visible: %v", t, err)
		return false
	}
	return true
}

// WaitForLoadState waits for the page to reach state. An empty state means load.
func (u *ElementUtil) WaitForLoadState(state LoadState) error {
	var ls *playwright.LoadState
	switch state {
	case "", LoadStateLoad:
		ls = playwright.LoadStateLoad
	case LoadStateDOMContentLoaded:
		ls = playwright.LoadStateDomcontentloaded
	case LoadStateNetworkIdle:
		ls = playwright.LoadStateNetworkidle
	default:
		return fmt.Errorf("unknown load state %q", state)
	}
	if err := u.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   ls,
		Timeout: u.ms(u.timeout),
	}); err != nil {
		return fmt.Errorf("wait for %s: %w", state, err)
	}
	return nil
}

func (u *ElementUtil) ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
