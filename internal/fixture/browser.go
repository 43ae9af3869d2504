// Package fixture starts the browser for a test run and hands each test a
// fresh page, optionally already logged in.
package fixture

import (
	"fmt"
	"log"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/pages"
)

// Browser is one launched browser shared by every test in a package.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.SuiteConfig
}

// Launch starts Playwright and the browser engine named in cfg.
func Launch(cfg config.SuiteConfig) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := selectBrowserType(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	log.Printf("Launched %s (headless=%t)", cfg.Browser, cfg.Headless)
	return &Browser{pw: pw, browser: browser, cfg: cfg}, nil
}

func selectBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", config.BrowserChromium:
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// OpenPage opens a page in its own browser context with the configured
// timeouts. The returned func closes the context.
func (b *Browser) OpenPage() (playwright.Page, func(), error) {
	ctx, err := b.browser.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("could not create browser context: %w", err)
	}
	timeoutMS := float64(b.cfg.Timeout.Milliseconds())
	ctx.SetDefaultTimeout(timeoutMS)
	ctx.SetDefaultNavigationTimeout(timeoutMS)
	closeContext := func() {
		if err := ctx.Close(); err != nil {
			log.Printf("Failed to close browser context: %v", err)
		}
	}

	page, err := ctx.NewPage()
	if err != nil {
		closeContext()
		return nil, nil, fmt.Errorf("could not create page: %w", err)
	}
	return page, closeContext, nil
}

// NewPage is OpenPage for tests. The context is closed when the test ends.
func (b *Browser) NewPage(t testing.TB) playwright.Page {
	t.Helper()

	page, closeContext, err := b.OpenPage()
	if err != nil {
		t.Fatalf("%v", err)
	}
	t.Cleanup(closeContext)
	return page
}

// Close shuts down the browser and the Playwright driver.
func (b *Browser) Close() error {
	if err := b.browser.Close(); err != nil {
		_ = b.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return b.pw.Stop()
}

// LoggedInHome logs in with the configured credentials and fails the test
// unless the account page reports a logged-in user.
func LoggedInHome(t testing.TB, page pages.Page, cfg config.SuiteConfig) *pages.HomePage {
	t.Helper()

	home, err := pages.LoginAs(page, cfg.BaseURL, cfg.Username, cfg.Password, cfg.Timeout)
	if err != nil {
		t.Fatalf("login as %s failed: %v", cfg.Username, err)
	}
	return home
}
