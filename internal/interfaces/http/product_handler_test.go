package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jhoicas/product-catalog/docs"
	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/internal/infrastructure/feed"
	"github.com/jhoicas/product-catalog/internal/infrastructure/gormstore"
	"github.com/jhoicas/product-catalog/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/product-catalog/internal/interfaces/http"
	"github.com/jhoicas/product-catalog/pkg/config"
	"github.com/jhoicas/product-catalog/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// failingStore simula un almacén caído.
type failingStore struct{}

func (failingStore) List(context.Context) ([]*entity.Product, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Create(context.Context, *entity.Product) error {
	return errors.New("connection refused")
}
func (failingStore) ClassifyError(error) repository.ErrorClass { return repository.ErrorClassOther }

func sqliteStore(t *testing.T) repository.ProductStore {
	t.Helper()
	db, err := gormstore.Open(config.DBConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	require.NoError(t, gormstore.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormstore.NewProductStore(db)
}

// buildTestApp arma la app Fiber con el mismo router que main.
func buildTestApp(store repository.ProductStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestID())
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(store, nil, nil),
		ExportUC:  usecase.NewExportUseCase(store, pdf.NewCatalogGenerator("Catálogo"), feed.NewBuilder(), nil),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productBody struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/products
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_EmptyIsArray(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCreateProduct_ReturnsFieldsAndID(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodPost, "/api/products",
		`{"name":"Widget","description":"Azul","price":9.99,"stock":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decode[productBody](t, resp)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Widget", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Azul", *got.Description)
	assert.Equal(t, "9.99", got.Price)
	assert.Equal(t, 5, got.Stock)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	cases := map[string]string{
		"sin nombre":      `{"price":1,"stock":1}`,
		"nombre vacío":    `{"name":"","price":1,"stock":1}`,
		"sin precio":      `{"name":"A","stock":1}`,
		"precio null":     `{"name":"A","price":null,"stock":1}`,
		"sin stock":       `{"name":"A","price":1}`,
		"objeto vacío":    `{}`,
		"con descripción": `{"description":"x","stock":3}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/products", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[errorBody](t, resp)
			assert.Equal(t, "VALIDATION", got.Code)
			assert.Equal(t, apphttp.MsgMissingFields, got.Message)
		})
	}

	list := decode[[]productBody](t, doRequest(t, app, http.MethodGet, "/api/products", ""))
	assert.Empty(t, list, "ninguna validación fallida inserta filas")
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodPost, "/api/products", `{"name":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	got := decode[errorBody](t, resp)
	assert.Equal(t, "INVALID_BODY", got.Code)
	assert.Equal(t, apphttp.MsgInvalidBody, got.Message)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	app := buildTestApp(sqliteStore(t))
	body := `{"name":"Widget","price":"9.99","stock":5}`

	first := doRequest(t, app, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := doRequest(t, app, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusConflict, second.StatusCode)
	got := decode[errorBody](t, second)
	assert.Equal(t, "DUPLICATE", got.Code)
	assert.Equal(t, apphttp.MsgDuplicateName, got.Message)
}

func TestListProducts_AfterCreates(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	names := []string{"Widget", "Gadget", "Sprocket"}
	ids := map[int64]bool{}
	for _, n := range names {
		resp := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"`+n+`","price":1,"stock":0}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids[decode[productBody](t, resp).ID] = true
	}
	assert.Len(t, ids, len(names), "ids únicos")

	list := decode[[]productBody](t, doRequest(t, app, http.MethodGet, "/api/products", ""))
	require.Len(t, list, len(names))
	got := make([]string, 0, len(list))
	for _, p := range list {
		assert.True(t, ids[p.ID])
		got = append(got, p.Name)
	}
	assert.ElementsMatch(t, names, got)
}

func TestStoreFailure_IsInternal(t *testing.T) {
	app := buildTestApp(failingStore{})

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPost, `{"name":"Widget","price":1,"stock":1}`},
	} {
		resp := doRequest(t, app, tc.method, "/api/products", tc.body)
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		got := decode[errorBody](t, resp)
		assert.Equal(t, "INTERNAL", got.Code)
		assert.Equal(t, apphttp.MsgInternal, got.Message)
		assert.NotContains(t, got.Message, "connection refused")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones y sistema
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogPDF(t *testing.T) {
	app := buildTestApp(sqliteStore(t))
	doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Widget","price":1,"stock":1}`)

	resp := doRequest(t, app, http.MethodGet, "/api/products/catalog.pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestFeed_ETagAndNotModified(t *testing.T) {
	app := buildTestApp(sqliteStore(t))
	doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Widget","price":1,"stock":1}`)

	resp := doRequest(t, app, http.MethodGet, "/api/products/feed.xml", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<name>Widget</name>")

	req := httptest.NewRequest(http.MethodGet, "/api/products/feed.xml", nil)
	req.Header.Set("If-None-Match", etag)
	cached, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodGet, "/api/products", "")
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestUnknownRoute_IsJSONError(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	got := decode[errorBody](t, resp)
	assert.Equal(t, "HTTP_404", got.Code)
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("product-catalog"))

	resp := doRequest(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", got["status"])
}

func TestOpenAPI_ServesRegisteredDoc(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodGet, "/api/openapi.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]interface{}](t, resp)
	info := got["info"].(map[string]interface{})
	assert.Equal(t, "Product Catalog API", info["title"])
	assert.Contains(t, got["paths"], "/api/products")
}

func TestListProducts_MatchesCreateResponse(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	created := map[int64]productBody{}
	for _, body := range []string{
		`{"name":"Grande","price":"12345678901234567.89","stock":1}`,
		`{"name":"Decenas","price":"10.50","stock":2}`,
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/products", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		p := decode[productBody](t, resp)
		created[p.ID] = p
	}

	list := decode[[]productBody](t, doRequest(t, app, http.MethodGet, "/api/products", ""))
	require.Len(t, list, 2)
	for _, p := range list {
		assert.Equal(t, created[p.ID], p)
	}
	for _, p := range created {
		if p.Name == "Grande" {
			assert.Equal(t, "12345678901234567.89", p.Price)
		}
	}
}

func TestCreateProduct_StockAsNumericString(t *testing.T) {
	app := buildTestApp(sqliteStore(t))

	resp := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"A","price":"1.5","stock":"5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 5, decode[productBody](t, resp).Stock)

	resp = doRequest(t, app, http.MethodPost, "/api/products", `{"name":"B","price":"1.5","stock":"cinco"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[errorBody](t, resp).Code)
}
