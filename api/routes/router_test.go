package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/scancart-backend/internal/apikeys"
	"github.com/angelmondragon/scancart-backend/internal/auth"
	"github.com/angelmondragon/scancart-backend/internal/cart"
	product "github.com/angelmondragon/scancart-backend/internal/products"
	"github.com/angelmondragon/scancart-backend/internal/users"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db/dbtest"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

type testServer struct {
	handler http.Handler
	apiKey  string
}

func newTestServer(t *testing.T, jwtSecret string, requireToken bool) testServer {
	t.Helper()
	client := dbtest.Open(t)
	ctx := context.Background()

	cfg := &config.Config{
		App:          config.AppConfig{Env: "test"},
		JWT:          config.JWTConfig{Secret: jwtSecret, Issuer: "scancart", ExpirationMinutes: 5},
		Password:     config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		FeatureFlags: config.FeatureFlagsConfig{RequireToken: requireToken},
	}

	userRepo := users.NewRepository(client.DB())
	authSvc, err := auth.NewService(auth.ServiceParams{UserRepo: userRepo, JWTConfig: cfg.JWT, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{UserRepo: userRepo, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("register service: %v", err)
	}

	productRepo := product.NewRepository(client.DB())
	productSvc, err := product.NewService(productRepo)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	if err := productRepo.Create(ctx, &models.Product{ProductID: "880", ProductName: "Milk", Price: types.MustMoney("2500"), Discount: types.MustMoney("300")}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	cartSvc, err := cart.NewService(cart.NewRepository(client.DB()), client, productRepo)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}

	verifier, err := apikeys.NewVerifier(apikeys.VerifierParams{Store: apikeys.NewRepository(client.DB())})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	key, err := verifier.Issue(ctx)
	if err != nil {
		t.Fatalf("issue key: %v", err)
	}

	handler := NewRouter(Params{
		Config:          cfg,
		Logger:          logger.Nop(),
		DB:              client,
		AuthService:     authSvc,
		RegisterService: registerSvc,
		ProductService:  productSvc,
		CartService:     cartSvc,
		APIKeys:         verifier,
	})
	return testServer{handler: handler, apiKey: key.Key}
}

func (s testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t, "", false)
	if rec := srv.do(t, http.MethodGet, "/health/live", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("live: %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/health/ready", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("metrics should be unmounted without a handler, got %d", rec.Code)
	}
}

func TestShopperFlow(t *testing.T) {
	srv := newTestServer(t, "", false)

	rec := srv.do(t, http.MethodPost, "/api/register", `{"Userid":"alice","Password":"pw","Birthdate":"1990-01-02","Gender":"F","Phone_num":"010","Email":"alice@example.com"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/login", `{"Userid":"alice","password":"pw"}`, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "Login successful!" {
		t.Fatalf("login: %d %q", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodPost, "/api/login", `{"Userid":"alice","password":"nope"}`, nil)
	if rec.Code != http.StatusUnauthorized || rec.Body.String() != "Invalid user ID or password." {
		t.Fatalf("bad login: %d %q", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodPost, "/api/login", `{"Userid":"alice"}`, nil)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != "User ID and password are required." {
		t.Fatalf("missing login fields: %d %q", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/cart/"+srv.apiKey+"/alice", "", nil)
	if rec.Code != http.StatusNotFound || rec.Body.String() != "Cart is empty for this user." {
		t.Fatalf("empty cart: %d %q", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/products/880", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("product: %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, "/api/products/nope", "", nil)
	if rec.Code != http.StatusNotFound || rec.Body.String() != "Product not found." {
		t.Fatalf("missing product: %d %q", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/cart-item", `{"Product_id":"880","User_id":"alice","Quantity":1}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodPost, "/api/cart-item", `{"Product_id":"880","User_id":"alice"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid add: %d", rec.Code)
	}
	var msg types.ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Message != "Product_id, User_id, and Quantity are required." {
		t.Fatalf("unexpected validation message %q", msg.Message)
	}

	rec = srv.do(t, http.MethodPost, "/api/cart/update", `{"Product_id":"880","Userid":"alice","Quantity":3}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/cart?apikey="+srv.apiKey+"&Userid=alice", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cart: %d %s", rec.Code, rec.Body.String())
	}
	var lines []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 1 || lines[0]["Quantity"] != float64(3) || lines[0]["Price"] != float64(2500) {
		t.Fatalf("unexpected cart %v", lines)
	}

	rec = srv.do(t, http.MethodDelete, "/api/cart-item/alice/880", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	rec = srv.do(t, http.MethodDelete, "/api/cart-item/alice/880", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", rec.Code)
	}
}

func TestCartReadRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t, "", false)

	rec := srv.do(t, http.MethodGet, "/api/cart?Userid=alice", "", nil)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != "API key is missing." {
		t.Fatalf("missing key: %d %q", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodGet, "/api/cart/wrong/alice", "", nil)
	if rec.Code != http.StatusForbidden || rec.Body.String() != "API key is not valid." {
		t.Fatalf("invalid key: %d %q", rec.Code, rec.Body.String())
	}
}

func TestProductAddRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t, "", false)
	body := `{"Product_id":"990","Product_name":"Bread","Price":3000}`

	if rec := srv.do(t, http.MethodPost, "/api/products/wrong/add", body, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("invalid key: %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/api/products/"+srv.apiKey+"/add", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodPost, "/api/products/"+srv.apiKey+"/add", body, nil); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: %d", rec.Code)
	}
}

func TestRequiredTokenGuardsCartRoutes(t *testing.T) {
	srv := newTestServer(t, "test-secret", true)

	if rec := srv.do(t, http.MethodPost, "/api/register", `{"Userid":"bob","Password":"pw"}`, nil); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	rec := srv.do(t, http.MethodPost, "/api/login", `{"Userid":"bob","password":"pw"}`, nil)
	token := rec.Header().Get("X-Scancart-Token")
	if token == "" {
		t.Fatal("expected token header on login")
	}

	if rec := srv.do(t, http.MethodPost, "/api/cart/update", `{"Product_id":"880","Userid":"bob","Quantity":1}`, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous update: %d", rec.Code)
	}

	auth := map[string]string{"Authorization": "Bearer " + token}
	if rec := srv.do(t, http.MethodPost, "/api/cart/update", `{"Product_id":"880","Userid":"bob","Quantity":1}`, auth); rec.Code != http.StatusCreated {
		t.Fatalf("owner update: %d %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodPost, "/api/cart/update", `{"Product_id":"880","Userid":"eve","Quantity":1}`, auth); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update: %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/cart/"+srv.apiKey+"/eve", "", auth); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign read: %d", rec.Code)
	}
}
