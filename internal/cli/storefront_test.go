package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/gorest"
	"github.com/storeqa/storefront-suite/internal/handlers"
	"github.com/storeqa/storefront-suite/internal/models"
	"github.com/storeqa/storefront-suite/internal/productinfo"
	"github.com/storeqa/storefront-suite/internal/repository"
)

// startStorefront runs the real storefront over a memory store on a free port
func startStorefront(t *testing.T) (string, config.ServerConfig) {
	t.Helper()
	cfg := config.LoadServerConfig(func(string) string { return "" })
	cfg.Port = "0"

	deps, err := BuildServerDependencies(context.Background(), cfg, repository.NewMemoryStore(models.SeedProducts()))
	require.NoError(t, err)

	listener, server, err := StartServer(deps)
	require.NoError(t, err)
	t.Cleanup(func() {
		server.Close()
		listener.Close()
	})
	return BaseURL(listener), cfg
}

func TestBuildServerDependencies_DemoCustomerCanLogIn(t *testing.T) {
	baseURL, cfg := startStorefront(t)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.PostForm(config.LoginURL(baseURL), map[string][]string{
		"email":    {cfg.DemoEmail},
		"password": {cfg.DemoPassword},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == handlers.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
}

func TestBuildServerDependencies_DuplicateDemoCustomer(t *testing.T) {
	cfg := config.LoadServerConfig(func(string) string { return "" })
	store := repository.NewMemoryStore(nil)

	_, err := BuildServerDependencies(context.Background(), cfg, store)
	require.NoError(t, err)

	_, err = BuildServerDependencies(context.Background(), cfg, store)
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestScrapeProduct(t *testing.T) {
	baseURL, _ := startStorefront(t)

	tests := []struct {
		name     string
		query    ProductQuery
		expected map[string]string
		wantErr  bool
	}{
		{
			name:  "MacBook Pro",
			query: ProductQuery{SearchTerm: "macbook", ProductName: "MacBook Pro"},
			expected: map[string]string{
				productinfo.KeyHeader:       "MacBook Pro",
				productinfo.KeyImageCount:   "4",
				productinfo.KeyBrand:        "Apple",
				productinfo.KeyProductCode:  "Product 18",
				productinfo.KeyRewardPoints: "800",
				productinfo.KeyAvailability: "Out Of Stock",
				productinfo.KeyPrice:        "$2,000.00",
				productinfo.KeyExTaxPrice:   "$2,000.00",
			},
		},
		{
			name:  "Samsung Galaxy Tab",
			query: ProductQuery{SearchTerm: "Samsung", ProductName: "Samsung Galaxy Tab 10.1"},
			expected: map[string]string{
				productinfo.KeyHeader:       "Samsung Galaxy Tab 10.1",
				productinfo.KeyImageCount:   "7",
				productinfo.KeyProductCode:  "SAM1",
				productinfo.KeyRewardPoints: "1000",
				productinfo.KeyAvailability: "Pre-Order",
				productinfo.KeyPrice:        "$241.99",
				productinfo.KeyExTaxPrice:   "$199.99",
			},
		},
		{
			name:    "product not among results",
			query:   ProductQuery{SearchTerm: "macbook", ProductName: "iPhone"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ScrapeProduct(context.Background(), nil, baseURL, tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, info.Map())
		})
	}
}

func TestWriteProductReport(t *testing.T) {
	info, err := productinfo.Build("MacBook Pro", 4, []string{"Brand: Apple"}, []string{"$2,000.00", "Ex Tax: $2,000.00"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteProductReport(&out, info))

	assert.Equal(t, strings.Join([]string{
		"header: MacBook Pro",
		"imagecount: 4",
		"Brand: Apple",
		"extaxprice: $2,000.00",
		"productprice: $2,000.00",
	}, "\n")+"\n", out.String())
}

func TestRunUserLifecycle(t *testing.T) {
	baseURL, cfg := startStorefront(t)
	usersURL := strings.TrimSuffix(baseURL, "/index.php") + handlers.UsersPath

	client := gorest.NewClient(&config.GorestConfig{BaseURL: usersURL, Token: cfg.APIToken}, nil)
	var out bytes.Buffer

	steps, err := RunUserLifecycle(context.Background(), client, &out)
	require.NoError(t, err)

	require.Len(t, steps, 5)
	for _, step := range steps {
		assert.Equal(t, step.Expected, step.Actual, step.Name)
	}
	assert.Equal(t, []int{201, 200, 200, 204, 404}, []int{
		steps[0].Actual, steps[1].Actual, steps[2].Actual, steps[3].Actual, steps[4].Actual,
	})
	assert.Contains(t, out.String(), "delete")
}

func TestRunUserLifecycle_StopsOnUnexpectedStatus(t *testing.T) {
	baseURL, _ := startStorefront(t)
	usersURL := strings.TrimSuffix(baseURL, "/index.php") + handlers.UsersPath

	client := gorest.NewClient(&config.GorestConfig{BaseURL: usersURL, Token: "wrong"}, nil)
	var out bytes.Buffer

	steps, err := RunUserLifecycle(context.Background(), client, &out)
	require.Error(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, http.StatusUnauthorized, steps[0].Actual)
}

func TestRunUserLifecycle_RejectsMissingID(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"Storefront QA","status":"inactive"}`))
	}))
	defer server.Close()

	client := gorest.NewClient(&config.GorestConfig{BaseURL: server.URL, Token: "t"}, nil)
	var out bytes.Buffer

	steps, err := RunUserLifecycle(context.Background(), client, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id 0")
	require.Len(t, steps, 1)
	assert.Equal(t, http.StatusCreated, steps[0].Actual)
	assert.Equal(t, 1, requests, "lifecycle must stop before the get step")
}
