package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubUserService struct {
	user      *domain.User
	loginErr  error
	lookupErr error
	regErr    error
}

func (s *stubUserService) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, error) {
	return s.user, s.regErr
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, "token-123", nil
}

func (s *stubUserService) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.user, nil
}

func (s *stubUserService) IssueToken(_ string) (string, error) {
	return "token-123", nil
}

type stubCatalogService struct {
	product *domain.Product
	err     error
}

func (s *stubCatalogService) Create(_ context.Context, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) Update(_ context.Context, _ string, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubCatalogService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) List(_ context.Context, page, _ int) (*catalogsvc.ListPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &catalogsvc.ListPage{Products: []domain.Product{}, Page: page}, nil
}

func (s *stubCatalogService) Search(_ context.Context, _, _, _ string) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Product{}, nil
}

type stubCartService struct {
	err       error
	lastUser  string
	lastItems []cartsvc.ItemInput
}

func (s *stubCartService) AddItems(_ context.Context, userID string, items []cartsvc.ItemInput) error {
	s.lastUser = userID
	s.lastItems = items
	return s.err
}

type stubCheckoutService struct {
	order *domain.Order
	err   error
}

func (s *stubCheckoutService) PlaceOrder(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubCartReader struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartReader) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

type stubOrderReader struct {
	orders []domain.Order
	err    error
}

func (s *stubOrderReader) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func testDeps() (Deps, *stubCartService, *stubCheckoutService) {
	carts := &stubCartService{}
	checkout := &stubCheckoutService{order: &domain.Order{ID: "order-1", UserID: "u1", TotalCents: 2500}}
	deps := Deps{
		UserSvc:     &stubUserService{user: &domain.User{ID: "u1", Email: "a@b.com"}},
		CatalogSvc:  &stubCatalogService{product: &domain.Product{ID: "p1", Name: "Widget", PriceCents: 100}},
		CartSvc:     carts,
		CheckoutSvc: checkout,
		CartRepo:    &stubCartReader{cart: &domain.Cart{ID: "cart-1", UserID: "u1", Items: []domain.CartItem{}}},
		OrderRepo:   &stubOrderReader{},
	}
	return deps, carts, checkout
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(zap.NewNop(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/order", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	deps, _, _ := testDeps()
	deps.UserSvc = &stubUserService{lookupErr: usersvc.ErrInvalidToken}
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodGet, "/cart", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAddToCartInvalidBody(t *testing.T) {
	deps, carts, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/cart", `{"products": "not-a-list"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.lastUser != "" {
		t.Fatalf("service must not be called on bad body")
	}
}

func TestAddToCartSuccess(t *testing.T) {
	deps, carts, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/cart", `{"products": [{"id": "A", "quantity": 2}, {"id": "B"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.lastUser != "u1" {
		t.Fatalf("expected user u1, got %q", carts.lastUser)
	}
	if len(carts.lastItems) != 2 || carts.lastItems[0].ProductID != "A" || carts.lastItems[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", carts.lastItems)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	deps, carts, _ := testDeps()
	carts.err = domain.ErrNotFound
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/cart", `{"products": [{"id": "ghost"}]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	deps, _, checkout := testDeps()
	checkout.order = nil
	checkout.err = domain.ErrEmptyCart
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/order", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/order", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "order-1") {
		t.Fatalf("expected order id in response, got %s", rec.Body.String())
	}
}

func TestListOrdersAlwaysReturnsArray(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodGet, "/orders", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestCreateProductDuplicate(t *testing.T) {
	deps, _, _ := testDeps()
	deps.CatalogSvc = &stubCatalogService{err: domain.ErrDuplicateName}
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/products", `{"name": "Widget", "priceCents": 100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteProductStillInCarts(t *testing.T) {
	deps, _, _ := testDeps()
	deps.CatalogSvc = &stubCatalogService{err: domain.ErrConflict}
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodDelete, "/products/p1", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	deps, _, _ := testDeps()
	deps.UserSvc = &stubUserService{loginErr: usersvc.ErrInvalidCredentials}
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/login", `{"email": "a@b.com", "password": "nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
