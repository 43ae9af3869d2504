//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeqa/storefront-suite/internal/fixture"
	"github.com/storeqa/storefront-suite/internal/pages"
)

// TestLoginWithValidCredentials
// Feature: Account Login
//
//	Scenario: Log in with valid credentials
//	  Given I am on the account login page
//	  When I log in with the configured credentials
//	  Then I should see the "My Account" page
//	  And the "Edit Account" link should be visible
func TestLoginWithValidCredentials(t *testing.T) {
	requireBrowser(t)
	page := browser.NewPage(t)

	// Given/When
	home := fixture.LoggedInHome(t, page, suite)

	// Then
	title, err := home.Title()
	require.NoError(t, err)
	assert.Equal(t, "My Account", title)

	// And
	loggedIn, err := home.IsUserLoggedIn()
	require.NoError(t, err)
	assert.True(t, loggedIn, "Edit Account link is not visible")
}

// TestLoginWithInvalidCredentials
// Feature: Account Login
//
//	Scenario: Log in with a wrong password
//	  Given I am on the account login page
//	  When I log in with a wrong password
//	  Then I should see the no-match warning
func TestLoginWithInvalidCredentials(t *testing.T) {
	requireBrowser(t)
	page := browser.NewPage(t)
	loginPage := pages.NewLoginPage(page, suite.Timeout)

	// Given
	require.NoError(t, loginPage.Goto(suite.BaseURL))

	// When
	_, err := loginPage.Login(suite.Username, "not-"+suite.Password)
	require.NoError(t, err)

	// Then
	warning, err := loginPage.WarningMessage()
	require.NoError(t, err)
	assert.Equal(t, pages.InvalidLoginWarning, warning)
}
