package elementutil

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/storeqa/storefront-suite/internal/playwrighttest"
)

func newFixture(t *testing.T, selector string, texts ...string) (*playwrighttest.FakePage, *ElementUtil) {
	t.Helper()
	page := playwrighttest.NewFakePage()
	var elements []playwrighttest.Element
	for _, text := range texts {
		elements = append(elements, playwrighttest.Element{Text: text, Visible: true})
	}
	page.Set(selector, elements...)
	return page, New(page, 0)
}

func TestNew_DefaultTimeout(t *testing.T) {
	util := New(playwrighttest.NewFakePage(), 0)
	assert.Equal(t, 30*time.Second, util.Timeout())

	util = New(playwrighttest.NewFakePage(), 2*time.Second)
	assert.Equal(t, 2*time.Second, util.Timeout())
}

func TestResolve_IndexSelectsNthMatch(t *testing.T) {
	_, util := newFixture(t, ".item", "first", "second", "third")

	text, err := util.Text(Selector(".item").Nth(2))
	require.NoError(t, err)
	assert.Equal(t, "third", text)

	text, err = util.Text(Selector(".item"))
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	text, err = util.Text(Selector(".item").Nth(0))
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestResolve_ResolvedLocator(t *testing.T) {
	page, util := newFixture(t, "li", "a", "b")

	target := Of(page.Locator("li"), "list item")
	text, err := util.InnerText(target.Nth(1))
	require.NoError(t, err)
	assert.Equal(t, "b", text)

	text, err = util.InnerText(target)
	require.NoError(t, err)
	assert.Equal(t, "a", text)
}

func TestResolve_NoMatchPropagates(t *testing.T) {
	_, util := newFixture(t, ".item", "only")

	_, err := util.Text(Selector(".item").Nth(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, playwrighttest.ErrNoElement)

	err = util.Click(Selector(".missing"))
	assert.ErrorIs(t, err, playwrighttest.ErrNoElement)
}

func TestResolve_IndexProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "matches")
		i := rapid.IntRange(0, n-1).Draw(rt, "index")

		page := playwrighttest.NewFakePage()
		elements := make([]playwrighttest.Element, n)
		for k := range elements {
			elements[k] = playwrighttest.Element{Text: string(rune('a' + k)), Visible: true}
		}
		page.Set("#x", elements...)
		util := New(page, 0)

		if err := util.Click(Selector("#x").Nth(i)); err != nil {
			rt.Fatalf("click: %v", err)
		}
		calls := page.CallsOf("click")
		if len(calls) != 1 || calls[0].Index != i {
			rt.Fatalf("expected click on index %d, got %+v", i, calls)
		}
	})
}

func TestFill_PassesIndexAndTimeout(t *testing.T) {
	page, util := newFixture(t, "input", "", "")

	require.NoError(t, util.Fill(Selector("input").Nth(1), "hello"))

	calls := page.CallsOf("fill")
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Index)
	assert.Equal(t, "hello", calls[0].Value)
	opts := calls[0].Options.(playwright.LocatorFillOptions)
	assert.Equal(t, float64(30000), *opts.Timeout)
}

func TestClick_Options(t *testing.T) {
	page, util := newFixture(t, "button", "Go")

	require.NoError(t, util.Click(Selector("button")))
	require.NoError(t, util.Click(Selector("button"), ClickOptions{Force: true, Timeout: 5 * time.Second}))

	calls := page.CallsOf("click")
	require.Len(t, calls, 2)

	def := calls[0].Options.(playwright.LocatorClickOptions)
	assert.False(t, *def.Force)
	assert.Equal(t, float64(30000), *def.Timeout)

	custom := calls[1].Options.(playwright.LocatorClickOptions)
	assert.True(t, *custom.Force)
	assert.Equal(t, float64(5000), *custom.Timeout)
}

func TestRightAndDoubleClick(t *testing.T) {
	page, util := newFixture(t, "#row", "row")

	require.NoError(t, util.RightClick(Selector("#row")))
	require.NoError(t, util.DoubleClick(Selector("#row")))

	right := page.CallsOf("click")
	require.Len(t, right, 1)
	opts := right[0].Options.(playwright.LocatorClickOptions)
	assert.Equal(t, playwright.MouseButtonRight, opts.Button)

	assert.Len(t, page.CallsOf("dblclick"), 1)
}

func TestPressSequentially_DefaultDelay(t *testing.T) {
	page, util := newFixture(t, "#q", "")

	require.NoError(t, util.PressSequentially(Selector("#q"), "abc", 0))
	require.NoError(t, util.PressSequentially(Selector("#q"), "abc", 50*time.Millisecond))

	calls := page.CallsOf("pressSequentially")
	require.Len(t, calls, 2)
	assert.Equal(t, float64(300), *calls[0].Options.(playwright.LocatorPressSequentiallyOptions).Delay)
	assert.Equal(t, float64(50), *calls[1].Options.(playwright.LocatorPressSequentiallyOptions).Delay)
}

func TestSelectOption_Variants(t *testing.T) {
	page, util := newFixture(t, "select", "")

	require.NoError(t, util.SelectByValue(Selector("select"), "2"))
	require.NoError(t, util.SelectByLabel(Selector("select"), "Two"))
	require.NoError(t, util.SelectByIndex(Selector("select"), 1))

	calls := page.CallsOf("selectOption")
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"2"}, *calls[0].Options.(playwright.SelectOptionValues).Values)
	assert.Equal(t, []string{"Two"}, *calls[1].Options.(playwright.SelectOptionValues).Labels)
	assert.Equal(t, []int{1}, *calls[2].Options.(playwright.SelectOptionValues).Indexes)
}

func TestStatePredicates(t *testing.T) {
	page := playwrighttest.NewFakePage()
	page.Set("#terms", playwrighttest.Element{Visible: true, Checked: true})
	page.Set("#locked", playwrighttest.Element{Visible: false, Disabled: true})
	util := New(page, 0)

	checked, err := util.IsChecked(Selector("#terms"))
	require.NoError(t, err)
	assert.True(t, checked)

	visible, err := util.IsVisible(Selector("#locked"))
	require.NoError(t, err)
	assert.False(t, visible)

	hidden, err := util.IsHidden(Selector("#locked"))
	require.NoError(t, err)
	assert.True(t, hidden)

	enabled, err := util.IsEnabled(Selector("#locked"))
	require.NoError(t, err)
	assert.False(t, enabled)

	disabled, err := util.IsDisabled(Selector("#locked"))
	require.NoError(t, err)
	assert.True(t, disabled)

	editable, err := util.IsEditable(Selector("#terms"))
	require.NoError(t, err)
	assert.True(t, editable)
}

func TestWaitForVisible_DemotesFailureToFalse(t *testing.T) {
	page := playwrighttest.NewFakePage()
	page.Set("#shown", playwrighttest.Element{Visible: true})
	page.Set("#hidden", playwrighttest.Element{Visible: false})
	util := New(page, time.Second)

	assert.True(t, util.WaitForVisible(Selector("#shown")))
	assert.False(t, util.WaitForVisible(Selector("#hidden")))
	assert.False(t, util.WaitForVisible(Selector("#absent")))
}

func TestCountAndAllInnerTexts(t *testing.T) {
	_, util := newFixture(t, ".product-thumb", "MacBook", "MacBook Air", "MacBook Pro")

	n, err := util.Count(Selector(".product-thumb"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	texts, err := util.AllInnerTexts(Selector(".product-thumb").Nth(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"MacBook", "MacBook Air", "MacBook Pro"}, texts)
}

func TestWaitForLoadState(t *testing.T) {
	page := playwrighttest.NewFakePage()
	util := New(page, 0)

	require.NoError(t, util.WaitForLoadState(""))
	require.NoError(t, util.WaitForLoadState(LoadStateNetworkIdle))
	require.Error(t, util.WaitForLoadState("settled"))

	calls := page.CallsOf("waitForLoadState")
	require.Len(t, calls, 2)
	assert.Equal(t, "load", calls[0].Value)
	assert.Equal(t, "networkidle", calls[1].Value)
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, `"#input-email"`, Selector("#input-email").String())
	assert.Equal(t, `".item"[2]`, Selector(".item").Nth(2).String())
	assert.Equal(t, "Login button", Of(playwrighttest.NewFakePage().Locator("x"), "Login button").String())

	idx, ok := Selector("a").Index()
	assert.False(t, ok)
	assert.Zero(t, idx)
}
