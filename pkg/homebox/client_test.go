package homebox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/httputil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	drill := Item{
		ID:      uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		AssetID: "000-001",
		Name:    "Cordless Drill",
		Location: &Location{
			ID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Name: "Garage",
		},
		Labels: []Label{{Name: "tools"}, {Name: "power"}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/users/login":
			if r.FormValue("username") != "demo" || r.FormValue("password") != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(LoginResponse{
				Token:     "Bearer abc123",
				ExpiresAt: time.Now().Add(time.Hour),
			})
		case "/api/v1/assets/000-001":
			json.NewEncoder(w).Encode(itemPage{Items: []Item{drill}, Total: 1})
		case "/api/v1/items/" + drill.ID.String():
			detail := drill
			detail.Description = "18V with two batteries"
			detail.Fields = []Field{{Name: "serial", TextValue: "SN-42"}}
			json.NewEncoder(w).Encode(detail)
		case "/api/v1/assets/000-099":
			json.NewEncoder(w).Encode(itemPage{Items: nil, Total: 0})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientLogin(t *testing.T) {
	server := newTestServer(t)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	grant, err := c.Login(context.Background(), "demo", "hunter2")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if grant.Token != "Bearer abc123" {
		t.Errorf("token = %q, want the server's grant", grant.Token)
	}
}

func TestClientLoginRejected(t *testing.T) {
	server := newTestServer(t)
	c, _ := NewClient(server.URL)

	_, err := c.Login(context.Background(), "demo", "wrong")
	if !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Fatalf("Login() error = %v, want UNAUTHORIZED", err)
	}
}

func TestClientItemByAssetID(t *testing.T) {
	server := newTestServer(t)
	c, _ := NewClient(server.URL, WithToken("Bearer abc123"))

	item, err := c.ItemByAssetID(context.Background(), "000-001")
	if err != nil {
		t.Fatalf("ItemByAssetID() failed: %v", err)
	}
	if item.Name != "Cordless Drill" {
		t.Errorf("name = %q, want %q", item.Name, "Cordless Drill")
	}
	if item.Description != "18V with two batteries" {
		t.Errorf("description = %q, want the detail enrichment", item.Description)
	}
	if len(item.Fields) != 1 || item.Fields[0].TextValue != "SN-42" {
		t.Errorf("fields = %+v, want the serial from the detail endpoint", item.Fields)
	}
}

func TestClientItemNotFound(t *testing.T) {
	server := newTestServer(t)
	c, _ := NewClient(server.URL)

	_, err := c.ItemByAssetID(context.Background(), "000-099")
	if !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Fatalf("ItemByAssetID() error = %v, want ASSET_NOT_FOUND", err)
	}
}

func TestClientCaching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/assets/000-001" {
			hits++
			json.NewEncoder(w).Encode(itemPage{
				Items: []Item{{ID: uuid.New(), AssetID: "000-001", Name: "Ladder"}},
				Total: 1,
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}
	c, _ := NewClient(server.URL, WithCache(cache))

	for i := 0; i < 3; i++ {
		if _, err := c.ItemByAssetID(context.Background(), "000-001"); err != nil {
			t.Fatalf("ItemByAssetID() call %d failed: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (responses should be cached)", hits)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	failures := 1
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failures > 0 {
			failures--
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(itemPage{
			Items: []Item{{ID: uuid.New(), AssetID: "000-001", Name: "Ladder"}},
			Total: 1,
		})
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	item, err := c.ItemByAssetID(context.Background(), "000-001")
	if err != nil {
		t.Fatalf("ItemByAssetID() failed after transient errors: %v", err)
	}
	if item.Name != "Ladder" {
		t.Errorf("name = %q, want %q", item.Name, "Ladder")
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	if _, err := NewClient("not-a-url"); err == nil {
		t.Fatal("NewClient() = nil error, want validation failure")
	}
}

func TestResolverSkipPolicy(t *testing.T) {
	server := newTestServer(t)
	c, _ := NewClient(server.URL)
	r := NewResolver(c)

	sel, err := assets.ParseSelector("000-001,000-099")
	if err != nil {
		t.Fatalf("ParseSelector() failed: %v", err)
	}

	records, warnings, err := r.Resolve(context.Background(), sel, assets.PolicySkip)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Cordless Drill" {
		t.Errorf("records = %+v, want just the drill", records)
	}
	if len(warnings) != 1 || warnings[0].AssetID != "000-099" {
		t.Errorf("warnings = %+v, want one for the missing asset", warnings)
	}
	if got := records[0].Attribute("labels"); got != "tools, power" {
		t.Errorf("labels attribute = %q, want %q", got, "tools, power")
	}
}

func TestResolverAbortPolicy(t *testing.T) {
	server := newTestServer(t)
	c, _ := NewClient(server.URL)
	r := NewResolver(c)

	sel, _ := assets.ParseSelector("000-001,000-099")
	_, _, err := r.Resolve(context.Background(), sel, assets.PolicyAbort)
	if !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Fatalf("Resolve() error = %v, want ASSET_NOT_FOUND", err)
	}
}

func TestResolverUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // connection refused from here on

	c, _ := NewClient(url)
	r := NewResolver(c)

	sel, _ := assets.ParseSelector("000-001")
	_, _, err := r.Resolve(context.Background(), sel, assets.PolicySkip)
	if !errors.Is(err, errors.ErrCodeResolverUnavailable) {
		t.Fatalf("Resolve() error = %v, want RESOLVER_UNAVAILABLE", err)
	}
}
