//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/civicGenAi/tanzania-fish-hub-sub001/test/pact"

	cataloghttp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application"
	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	catalogdomain "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetProducts(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *catalogmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := catalogmemory.NewRepository()
	service := catalogapp.NewService(repo)
	responder := sharederrors.NewResponder("", cataloghttp.ErrorMapper)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	cataloghttp.NewHandler(service, responder).Register(v1)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetProducts(t testing.TB) {
	t.Helper()
	products, err := a.repo.List(context.Background(), catalogtypes.ProductFilters{})
	require.NoError(t, err)
	for _, product := range products {
		_ = a.repo.Delete(context.Background(), product.ID)
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB, id string) {
	t.Helper()
	_, err := a.repo.Create(context.Background(), &catalogdomain.Product{
		ID:       id,
		SellerID: pacttest.SellerID,
		Name:     "Fresh Lake Tilapia",
		Price:    decimal.RequireFromString("12.50"),
		Unit:     "kg",
		Stock:    40,
		Images:   []string{"https://example.pact/catalog/tilapia.png"},
		Status:   catalogdomain.StatusActive,
	})
	require.NoError(t, err)
}
