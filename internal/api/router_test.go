package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
	"github.com/bookstore/storefront/internal/infrastructure/http/handlers"
)

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, name, email, _ string) (*domain.User, error) {
	return &domain.User{ID: "u-1", Name: name, Email: email}, nil
}

func (fakeAuth) Verify(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

type fakeSessions struct{}

func (fakeSessions) Issue(context.Context, *domain.User) (*ports.Session, error) {
	return &ports.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (fakeSessions) Resolve(_ context.Context, token string) (*domain.User, error) {
	if token == "good" {
		return &domain.User{ID: "u-1", Name: "Ada"}, nil
	}
	return nil, domain.ErrUnauthenticated
}

func (fakeSessions) Revoke(context.Context, string) error { return nil }

type fakeOrders struct {
	placed int
}

func (f *fakeOrders) PlaceOrder(_ context.Context, id domain.Identity, volumeID string, addr domain.Address) (*domain.Order, error) {
	f.placed++
	return &domain.Order{ID: "o-1", UserID: id.UserID(), VolumeID: volumeID, Address: addr}, nil
}

func (*fakeOrders) OrdersFor(context.Context, domain.Identity) ([]domain.Order, error) {
	return nil, nil
}

type fakeStorefront struct{}

func (fakeStorefront) Home(context.Context) []domain.CatalogItem {
	return []domain.CatalogItem{{Title: "Dune"}}
}

func (fakeStorefront) Book(context.Context, string, string) (*ports.BookDetail, error) {
	return nil, domain.ErrCatalogNotFound
}

func (fakeStorefront) BookInfo(context.Context, string) (*domain.CatalogItem, error) {
	return nil, domain.ErrCatalogNotFound
}

func (fakeStorefront) Search(context.Context, string, domain.SearchFilters) []domain.CatalogItem {
	return []domain.CatalogItem{}
}

func (fakeStorefront) OrderHistory(_ context.Context, id domain.Identity) ([]ports.OrderView, error) {
	if !id.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return []ports.OrderView{}, nil
}

func newTestRouter(probes map[string]handlers.Check) http.Handler {
	return newTestRouterWithOrders(probes, &fakeOrders{})
}

func newTestRouterWithOrders(probes map[string]handlers.Check, orders *fakeOrders) http.Handler {
	return NewRouter(Dependencies{
		Auth:       fakeAuth{},
		Sessions:   fakeSessions{},
		Orders:     orders,
		Storefront: fakeStorefront{},
		Probes:     probes,
		Logger:     zerolog.Nop(),
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AnonymousRedirectedToLogin(t *testing.T) {
	h := newTestRouter(nil)

	for _, path := range []string{"/orders", "/checkout?volume_id=abc"} {
		rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
			t.Fatalf("%s: unexpected redirect %q", path, loc)
		}
	}
}

func checkoutForm() url.Values {
	return url.Values{
		"volume_id": {"abc"},
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"ada@example.com"},
		"address":   {"12 St James's Square"},
		"country":   {"United Kingdom"},
		"zip":       {"SW1Y 4JH"},
		"state":     {"London"},
	}
}

func postCheckout(cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout?volume_id=abc", strings.NewReader(checkoutForm().Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	return req
}

func TestRouter_AnonymousCheckoutPlacesNoOrder(t *testing.T) {
	orders := &fakeOrders{}
	h := newTestRouterWithOrders(nil, orders)

	for _, cookie := range []string{"", "forged"} {
		rec := serve(h, postCheckout(cookie))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("cookie %q: expected 303, got %d", cookie, rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
			t.Fatalf("cookie %q: unexpected redirect %q", cookie, loc)
		}
	}
	if orders.placed != 0 {
		t.Fatalf("expected no orders, got %d", orders.placed)
	}

	rec := serve(h, postCheckout("good"))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("signed-in checkout: got %d %q: %s", rec.Code, rec.Header().Get("Location"), rec.Body.String())
	}
	if orders.placed != 1 {
		t.Fatalf("expected 1 order, got %d", orders.placed)
	}
}

func TestRouter_SignedInSeesOrders(t *testing.T) {
	h := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good"})
	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_HomeJSON(t *testing.T) {
	h := newTestRouter(nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Books []domain.CatalogItem `json:"books"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Books) != 1 || body.Books[0].Title != "Dune" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestRouter(nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/book?id=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}

func TestRouter_Probes(t *testing.T) {
	h := newTestRouter(map[string]handlers.Check{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	})

	if rec := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil)); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, httptest.NewRequest(http.MethodGet, "/health/ready", nil)); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness: expected 503, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(nil)

	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bookstore_http_requests_total") {
		t.Fatalf("expected request metrics, got:\n%s", rec.Body.String())
	}
}
