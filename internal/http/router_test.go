package httpapi

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simrandung/Ecommerce-API/internal/auth"
	"github.com/simrandung/Ecommerce-API/internal/cart"
	"github.com/simrandung/Ecommerce-API/internal/catalog"
	"github.com/simrandung/Ecommerce-API/internal/order"
	"github.com/simrandung/Ecommerce-API/internal/user"
)

type fakeCatalogRepo struct {
	listCategoriesFunc func(ctx context.Context) ([]catalog.Category, error)
	listByCategory     func(ctx context.Context, categoryID string) ([]catalog.ProductSummary, error)
	getProductFunc     func(ctx context.Context, productID string) (catalog.Product, error)
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if f.listCategoriesFunc != nil {
		return f.listCategoriesFunc(ctx)
	}
	return []catalog.Category{}, nil
}

func (f *fakeCatalogRepo) ListByCategory(ctx context.Context, categoryID string) ([]catalog.ProductSummary, error) {
	if f.listByCategory != nil {
		return f.listByCategory(ctx, categoryID)
	}
	return []catalog.ProductSummary{}, nil
}

func (f *fakeCatalogRepo) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	if f.getProductFunc != nil {
		return f.getProductFunc(ctx, productID)
	}
	return catalog.Product{}, catalog.ErrNotFound
}

type fakeCartRepo struct {
	getFunc     func(ctx context.Context, userID string) (*cart.Cart, error)
	addItemFunc func(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)
	clearFunc   func(ctx context.Context, userID string) error
}

func (f *fakeCartRepo) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, userID)
	}
	return nil, cart.ErrNotFound
}

func (f *fakeCartRepo) AddItem(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error) {
	if f.addItemFunc != nil {
		return f.addItemFunc(ctx, userID, productID, quantity)
	}
	return nil, cart.ErrUnknownProduct
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	if f.clearFunc != nil {
		return f.clearFunc(ctx, userID)
	}
	return nil
}

type fakePlacer struct {
	placeFunc func(ctx context.Context, userID string) (*order.Order, error)
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, userID string) (*order.Order, error) {
	if f.placeFunc != nil {
		return f.placeFunc(ctx, userID)
	}
	return nil, order.ErrCartNotFound
}

type fakeOrderRepo struct {
	getByIDFunc    func(ctx context.Context, orderID string) (*order.Detail, error)
	listByUserFunc func(ctx context.Context, userID string) ([]order.Order, error)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*order.Detail, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, order.ErrNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userID)
	}
	return []order.Order{}, nil
}

type recordingPublisher struct {
	published []*order.Order
	err       error
}

func (p *recordingPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, o)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memUserRepo struct {
	byName map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byName: map[string]*user.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, ok := m.byName[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	if u.ID == "" {
		u.ID = "id-" + u.Username
	}
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// testDeps bundles everything a handler test may want to poke at.
type testDeps struct {
	catalog   *fakeCatalogRepo
	carts     *fakeCartRepo
	placer    *fakePlacer
	orders    *fakeOrderRepo
	publisher *recordingPublisher
	users     *memUserRepo
}

func newTestRouter(t *testing.T) (http.Handler, *testDeps) {
	t.Helper()

	deps := &testDeps{
		catalog:   &fakeCatalogRepo{},
		carts:     &fakeCartRepo{},
		placer:    &fakePlacer{},
		orders:    &fakeOrderRepo{},
		publisher: &recordingPublisher{},
		users:     newMemUserRepo(),
	}

	logger := log.New(io.Discard, "", 0)
	authSvc := auth.NewService(deps.users, auth.NewSecret())

	r := NewRouter(
		NewCatalogHandler(deps.catalog),
		NewCartHandler(deps.carts),
		NewOrderHandler(deps.placer, deps.orders, deps.publisher, logger),
		NewAuthHandler(authSvc),
		[]string{"*"},
	)
	return r, deps
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "ok" {
		t.Fatalf("expected body \"ok\", got %q", body)
	}
}
