package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/adirahmanto/craftline-backend/internal/auth"
	catalogsvc "github.com/adirahmanto/craftline-backend/internal/catalog"
	ordersvc "github.com/adirahmanto/craftline-backend/internal/orders"
	productsvc "github.com/adirahmanto/craftline-backend/internal/products"
	"github.com/adirahmanto/craftline-backend/pkg/auth/session"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
	"github.com/adirahmanto/craftline-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

// stubResolver treats the cookie value as the role name.
type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, sessionID string) (*session.Session, error) {
	role := enums.Role(sessionID)
	if !role.IsValid() {
		return nil, session.ErrSessionNotFound
	}
	return &session.Session{UserID: uuid.New(), Role: role}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, sessionID string) error { return nil }

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*models.AppUser, error) {
	return &models.AppUser{ID: userID, Role: enums.RoleRegular}, nil
}

func (stubAuthService) SetRole(ctx context.Context, userID uuid.UUID, role enums.Role) (*models.AppUser, error) {
	return &models.AppUser{ID: userID, Role: role}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListMaterials(ctx context.Context) ([]catalogsvc.MaterialDTO, error) {
	return []catalogsvc.MaterialDTO{}, nil
}

func (stubCatalogService) CreateMaterial(ctx context.Context, input catalogsvc.CreateMaterialInput) (*catalogsvc.MaterialDTO, error) {
	return &catalogsvc.MaterialDTO{}, nil
}

func (stubCatalogService) UpdateMaterial(ctx context.Context, id int, input catalogsvc.UpdateMaterialInput) (*catalogsvc.MaterialDTO, error) {
	return &catalogsvc.MaterialDTO{}, nil
}

func (stubCatalogService) DeleteMaterial(ctx context.Context, id int) error { return nil }

func (stubCatalogService) ListSizes(ctx context.Context) ([]models.Size, error) {
	return []models.Size{}, nil
}

func (stubCatalogService) CreateSize(ctx context.Context, input catalogsvc.CreateSizeInput) (*models.Size, error) {
	return &models.Size{}, nil
}

func (stubCatalogService) UpdateSize(ctx context.Context, id int, input catalogsvc.UpdateSizeInput) (*models.Size, error) {
	return &models.Size{}, nil
}

func (stubCatalogService) DeleteSize(ctx context.Context, id int) error { return nil }

func (stubCatalogService) ListColors(ctx context.Context) ([]models.Color, error) {
	return []models.Color{}, nil
}

func (stubCatalogService) CreateColor(ctx context.Context, input catalogsvc.CreateColorInput) (*models.Color, error) {
	return &models.Color{}, nil
}

func (stubCatalogService) UpdateColor(ctx context.Context, id int, input catalogsvc.UpdateColorInput) (*models.Color, error) {
	return &models.Color{}, nil
}

func (stubCatalogService) DeleteColor(ctx context.Context, id int) error { return nil }

type stubProductService struct{}

func (stubProductService) ListProducts(ctx context.Context, filter productsvc.ListFilter, page pagination.Params) (*types.Page[productsvc.ProductDTO], error) {
	return &types.Page[productsvc.ProductDTO]{Data: []productsvc.ProductDTO{}}, nil
}

func (stubProductService) GetProduct(ctx context.Context, id int) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) UpdateProduct(ctx context.Context, id int, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) DeleteProduct(ctx context.Context, id int) error { return nil }

func (stubProductService) RestoreProduct(ctx context.Context, id int) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) ReplaceMaterials(ctx context.Context, productID int, desired []int) (*productsvc.ReconcileResult, error) {
	return &productsvc.ReconcileResult{}, nil
}

func (stubProductService) ReplaceSizes(ctx context.Context, productID int, desired []int) (*productsvc.ReconcileResult, error) {
	return &productsvc.ReconcileResult{}, nil
}

func (stubProductService) ReplaceColors(ctx context.Context, productID int, desired []int) (*productsvc.ReconcileResult, error) {
	return &productsvc.ReconcileResult{}, nil
}

func (stubProductService) AddVariant(ctx context.Context, productID int, input productsvc.VariantInput) (*productsvc.VariantDTO, error) {
	return &productsvc.VariantDTO{}, nil
}

func (stubProductService) UpdateVariant(ctx context.Context, productID, variantID int, input productsvc.VariantUpdateInput) (*productsvc.VariantDTO, error) {
	return &productsvc.VariantDTO{}, nil
}

func (stubProductService) DeleteVariant(ctx context.Context, productID, variantID int) error {
	return nil
}

func (stubProductService) AddBorderLength(ctx context.Context, productID int, input productsvc.BorderLengthInput) (*models.BorderLength, error) {
	return &models.BorderLength{}, nil
}

func (stubProductService) UpdateBorderLength(ctx context.Context, productID, borderLengthID int, input productsvc.BorderLengthUpdateInput) (*models.BorderLength, error) {
	return &models.BorderLength{}, nil
}

func (stubProductService) DeleteBorderLength(ctx context.Context, productID, borderLengthID int) error {
	return nil
}

func (stubProductService) AddCustomColumn(ctx context.Context, productID int, input productsvc.CustomColumnInput) (*productsvc.CustomColumnDTO, error) {
	return &productsvc.CustomColumnDTO{}, nil
}

func (stubProductService) UpdateCustomColumn(ctx context.Context, productID, customColumnID int, input productsvc.CustomColumnUpdateInput) (*productsvc.CustomColumnDTO, error) {
	return &productsvc.CustomColumnDTO{}, nil
}

func (stubProductService) DeleteCustomColumn(ctx context.Context, productID, customColumnID int) error {
	return nil
}

type stubOrderService struct{}

func (stubOrderService) CreateOrder(ctx context.Context, customerID *uuid.UUID, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) ListOrders(ctx context.Context, filter ordersvc.ListFilter, page pagination.Params) (*types.Page[ordersvc.OrderDTO], error) {
	return &types.Page[ordersvc.OrderDTO]{Data: []ordersvc.OrderDTO{}}, nil
}

func (stubOrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*types.Page[ordersvc.OrderDTO], error) {
	return &types.Page[ordersvc.OrderDTO]{Data: []ordersvc.OrderDTO{}}, nil
}

func (stubOrderService) UploadPaymentImage(ctx context.Context, orderID uuid.UUID, customerID uuid.UUID, image *ordersvc.ImageUpload) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) PaymentImageURL(ctx context.Context, orderID uuid.UUID) (string, error) {
	return "https://cdn.test/sign/payment.png", nil
}

func (stubOrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) UpdateDetailStatus(ctx context.Context, orderID uuid.UUID, detailID int, status enums.OrderStatus) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		Session: config.SessionConfig{CookieName: "craftline_session"},
		Upload:  config.UploadConfig{MaxImageMB: 1, MaxOrderItems: 5},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:         testConfig(),
		Logger:         logg,
		DB:             stubPinger{},
		Storage:        stubPinger{},
		SessionManager: stubResolver{},
		AuthService:    stubAuthService{},
		CatalogService: stubCatalogService{},
		ProductService: stubProductService{},
		OrderService:   stubOrderService{},
	})
}

func doRequest(router http.Handler, method, target, role string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if role != "" {
		req.AddCookie(&http.Cookie{Name: "craftline_session", Value: role})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthLiveIsPublic(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestProtectedGroupRejectsMissingSession(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/materials", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestProtectedGroupRejectsUnknownSession(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/materials", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCatalogReadsAllowAnyAuthenticatedRole(t *testing.T) {
	router := newTestRouter()
	for _, role := range []string{"regular", "sales", "ppic", "admin"} {
		rec := doRequest(router, http.MethodGet, "/api/v1/materials", role, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected 200 got %d", role, rec.Code)
		}
	}
}

func TestOrderListRequiresStaff(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodGet, "/api/v1/orders", "regular", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/api/v1/orders", "sales", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for sales got %d", rec.Code)
	}
}

func TestCatalogDeleteRequiresAdmin(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodDelete, "/api/v1/materials/1", "sales", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/v1/materials/1", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", rec.Code)
	}
}

func TestRoleUpdateRequiresAdmin(t *testing.T) {
	router := newTestRouter()
	target := "/api/v1/users/" + uuid.NewString() + "/role"

	rec := doRequest(router, http.MethodPut, target, "sales", strings.NewReader(`{"role":"ppic"}`))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodPut, target, "admin", strings.NewReader(`{"role":"ppic"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", rec.Code)
	}
}

func TestProductMutationRequiresStaff(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodDelete, "/api/v1/products/1/variants/2", "regular", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/v1/products/1/variants/2", "ppic", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ppic got %d", rec.Code)
	}
}

func TestProductDeleteRequiresAdmin(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodDelete, "/api/v1/products/1", "ppic", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for ppic got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/v1/products/1", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", rec.Code)
	}
}
