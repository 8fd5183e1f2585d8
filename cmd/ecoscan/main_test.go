package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/ecoscan/config"
	"github.com/fekuna/ecoscan/internal/catalog/repository"
	"github.com/fekuna/ecoscan/internal/compare"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/fekuna/ecoscan/internal/scan"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is a minimal EcoScan API keeping one cart in memory.
type backend struct {
	mu     sync.Mutex
	nextID int
	lines  []map[string]any
	adds   []string
}

func (b *backend) handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/login", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": 7, "username": "ana", "email": "ana@example.com"},
		})
	}).Methods(http.MethodPost)

	api := r.PathPrefix("/api/cart").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") != "Bearer tok" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	api.HandleFunc("", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.lines)
	}).Methods(http.MethodGet)
	api.HandleFunc("", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.adds = append(b.adds, body.ProductID)
		for _, p := range repository.DefaultProducts() {
			if p.ID == body.ProductID {
				b.addLine(p, body.Quantity)
			}
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Item added to cart"})
	}).Methods(http.MethodPost)
	return r
}

func (b *backend) addLine(p model.Product, qty int) {
	b.nextID++
	b.lines = append(b.lines, map[string]any{
		"id":       b.nextID,
		"quantity": qty,
		"product": map[string]any{
			"id":                  p.ID,
			"name":                p.Name,
			"price":               p.Price,
			"status":              p.Status,
			"description":         p.Description,
			"sustainabilityScore": p.SustainabilityScore,
		},
	})
}

func (b *backend) added() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.adds...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestApp(t *testing.T) (*app, *backend, *bytes.Buffer) {
	t.Helper()
	be := &backend{}
	srv := httptest.NewServer(be.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server:  config.ServerConfig{BaseURL: srv.URL, HTTPTimeout: 5 * time.Second},
		Store:   config.StoreConfig{Path: filepath.Join(t.TempDir(), "session.db")},
		Catalog: config.CatalogConfig{Source: "static"},
	}
	out := &bytes.Buffer{}
	a := newApp(cfg, logger.NewNop(), strings.NewReader(""), out)
	t.Cleanup(a.close)
	return a, be, out
}

func run(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestCLI_CartRequiresLogin(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, run(t, a, "cart"))

	assert.Contains(t, out.String(), "Please log in")
	assert.NotContains(t, out.String(), "Total:")
}

func TestCLI_CatalogList(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, run(t, a, "catalog", "list"))

	assert.Contains(t, out.String(), "Eco-Friendly Shampoo")
	assert.Contains(t, out.String(), "$24.99")
}

func TestCLI_CatalogSeedNeedsPath(t *testing.T) {
	a, _, _ := newTestApp(t)

	assert.Error(t, run(t, a, "catalog", "seed"))

	a.cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, run(t, a, "catalog", "seed"))

	a.cfg.Catalog.Source = "sqlite"
	cat, err := a.openCatalog(context.Background())
	require.NoError(t, err)
	p, err := cat.FindByCode(context.Background(), "987654321")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Sustainable Toothbrush", p.Name)
}

func TestCLI_ScanAddsHitsToCart(t *testing.T) {
	a, be, out := newTestApp(t)
	require.NoError(t, run(t, a, "login", "--email", "ana@example.com", "--password", "pw"))
	assert.Contains(t, out.String(), "Logged in as ana.")

	a.in = strings.NewReader("123456789\n\n000000000\n")
	require.NoError(t, run(t, a, "scan", "--mode", "barcode"))

	text := out.String()
	assert.Contains(t, text, "Eco-Friendly Shampoo")
	assert.Contains(t, text, scan.BannerAdded)
	assert.Contains(t, text, scan.NotFoundName)
	assert.Equal(t, []string{"123456789"}, be.added())
}

func TestCLI_CompareRejectsThirdProduct(t *testing.T) {
	a, be, out := newTestApp(t)
	for _, p := range repository.DefaultProducts() {
		be.addLine(p, 1)
	}
	require.NoError(t, run(t, a, "login", "--email", "ana@example.com", "--password", "pw"))

	require.NoError(t, run(t, a, "compare", "123456789", "987654321", "456789123"))

	text := out.String()
	assert.Contains(t, text, compare.MessageSelectionFull)
	assert.Contains(t, text, "$3.99 *")
	assert.Contains(t, text, "9/10 *")
	assert.NotContains(t, text, "$12.99 *")
}
