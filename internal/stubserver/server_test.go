package stubserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(Options{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		Logger:        zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

// call performs one JSON request and decodes the response into out when the
// status matches.
func call(t *testing.T, ts *httptest.Server, token, method, path string, body, out any, wantStatus int) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (body %s)", method, path, resp.StatusCode, wantStatus, buf.String())
	}
	if out != nil {
		if err := json.Unmarshal(buf.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v (body %s)", method, path, err, buf.String())
		}
	}
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	var resp loginResponse
	call(t, ts, "", http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, &resp, http.StatusOK)
	if resp.AccessToken == "" {
		t.Fatal("login returned empty access_token")
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}
	return resp.AccessToken
}

func detail(t *testing.T, ts *httptest.Server, token, method, path string, body any, wantStatus int) string {
	t.Helper()
	var envelope struct {
		Detail string `json:"detail"`
	}
	call(t, ts, token, method, path, body, &envelope, wantStatus)
	return envelope.Detail
}

func TestLoginAndIdentity(t *testing.T) {
	_, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	var me principalResponse
	call(t, ts, token, http.MethodGet, "/api/auth/me", nil, &me, http.StatusOK)
	if me.Username != "admin" || me.Role != "admin" {
		t.Fatalf("unexpected identity %+v", me)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, ts := newTestServer(t)
	msg := detail(t, ts, "", http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "nope"}, http.StatusUnauthorized)
	if msg != "Incorrect username or password" {
		t.Fatalf("detail = %q", msg)
	}
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	_, ts := newTestServer(t)
	msg := detail(t, ts, "", http.MethodGet, "/api/products", nil, http.StatusUnauthorized)
	if msg != "Not authenticated" {
		t.Fatalf("detail = %q", msg)
	}
	msg = detail(t, ts, "garbage-token", http.MethodGet, "/api/products", nil, http.StatusUnauthorized)
	if msg != "Could not validate credentials" {
		t.Fatalf("detail = %q", msg)
	}
}

func TestProductSKUConstraints(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	seeded, err := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 3})
	if err != nil {
		t.Fatalf("SeedProduct: %v", err)
	}

	msg := detail(t, ts, token, http.MethodPost, "/api/products",
		map[string]any{"name": "Clone", "sku": "WID-1", "price": 1.0}, http.StatusBadRequest)
	if msg != "Product with this SKU already exists" {
		t.Fatalf("detail = %q", msg)
	}

	msg = detail(t, ts, token, http.MethodPut, "/api/products/"+seeded.ID,
		map[string]any{"sku": "WID-2"}, http.StatusBadRequest)
	if msg != "SKU cannot be modified" {
		t.Fatalf("detail = %q", msg)
	}

	var updated domain.Product
	call(t, ts, token, http.MethodPut, "/api/products/"+seeded.ID,
		map[string]any{"price": 12.5}, &updated, http.StatusOK)
	if updated.Price != 12.5 || updated.SKU != "WID-1" || updated.Name != "Widget" {
		t.Fatalf("patch semantics wrong: %+v", updated)
	}
}

func TestCreateOrderRejectionIsAtomic(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	plenty, _ := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 10})
	scarce, _ := srv.SeedProduct(domain.Product{Name: "Gadget", SKU: "GAD-1", Price: 5, StockQuantity: 1})

	msg := detail(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
		"customer_name":  "Alice",
		"customer_email": "a@x.com",
		"items": []map[string]any{
			{"product_id": plenty.ID, "quantity": 2},
			{"product_id": scarce.ID, "quantity": 3},
		},
	}, http.StatusBadRequest)
	want := "Insufficient stock for product Gadget. Available: 1, Requested: 3"
	if msg != want {
		t.Fatalf("detail = %q, want %q", msg, want)
	}

	// No partial decrement: the first line's product must be untouched.
	var after domain.Product
	call(t, ts, token, http.MethodGet, "/api/products/"+plenty.ID, nil, &after, http.StatusOK)
	if after.StockQuantity != 10 {
		t.Fatalf("stock decremented despite rejection: %d", after.StockQuantity)
	}
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")
	p, _ := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 5})

	var order domain.Order
	call(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
		"customer_name":  "Alice",
		"customer_email": "a@x.com",
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 2}},
	}, &order, http.StatusOK)

	if !strings.HasPrefix(order.OrderNumber, "ORD-") || len(order.OrderNumber) != len("ORD-")+8 {
		t.Fatalf("order number format wrong: %q", order.OrderNumber)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if order.TotalAmount != 20 {
		t.Fatalf("total = %v, want 20", order.TotalAmount)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "Widget" {
		t.Fatalf("items not denormalised: %+v", order.Items)
	}

	var after domain.Product
	call(t, ts, token, http.MethodGet, "/api/products/"+p.ID, nil, &after, http.StatusOK)
	if after.StockQuantity != 3 {
		t.Fatalf("stock after order = %d, want 3", after.StockQuantity)
	}
}

func TestDeleteOrderRestoresStockByStatus(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")
	p, _ := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 5})

	placeOrder := func() domain.Order {
		var order domain.Order
		call(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
			"customer_name":  "Alice",
			"customer_email": "a@x.com",
			"items":          []map[string]any{{"product_id": p.ID, "quantity": 2}},
		}, &order, http.StatusOK)
		return order
	}
	stock := func() int {
		var current domain.Product
		call(t, ts, token, http.MethodGet, "/api/products/"+p.ID, nil, &current, http.StatusOK)
		return current.StockQuantity
	}

	// Pending order: deletion restores the quantities.
	order := placeOrder()
	call(t, ts, token, http.MethodDelete, "/api/orders/"+order.ID, nil, nil, http.StatusOK)
	if got := stock(); got != 5 {
		t.Fatalf("stock after deleting pending order = %d, want 5", got)
	}

	// Shipped order: the stock already left the warehouse.
	order = placeOrder()
	call(t, ts, token, http.MethodPut, "/api/orders/"+order.ID+"/status",
		map[string]string{"status": "shipped"}, nil, http.StatusOK)
	call(t, ts, token, http.MethodDelete, "/api/orders/"+order.ID, nil, nil, http.StatusOK)
	if got := stock(); got != 3 {
		t.Fatalf("stock after deleting shipped order = %d, want 3", got)
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")
	p, _ := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 5})

	var order domain.Order
	call(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
		"customer_name":  "Alice",
		"customer_email": "a@x.com",
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 1}},
	}, &order, http.StatusOK)

	msg := detail(t, ts, token, http.MethodPut, "/api/orders/"+order.ID+"/status",
		map[string]string{"status": "teleported"}, http.StatusBadRequest)
	want := "Invalid status. Must be one of: pending, confirmed, shipped, delivered, cancelled"
	if msg != want {
		t.Fatalf("detail = %q, want %q", msg, want)
	}
}

func TestUserManagementIsRoleGated(t *testing.T) {
	srv, ts := newTestServer(t)
	adminToken := login(t, ts, "admin", "admin123")

	if err := srv.SeedUser("sam", "pw", domain.RoleStaff); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	staffToken := login(t, ts, "sam", "pw")

	msg := detail(t, ts, staffToken, http.MethodGet, "/api/users", nil, http.StatusForbidden)
	if msg != "Insufficient permissions" {
		t.Fatalf("detail = %q", msg)
	}
	msg = detail(t, ts, staffToken, http.MethodPost, "/api/users",
		map[string]string{"username": "eve", "password": "pw"}, http.StatusForbidden)
	if msg != "Only admins can create users" {
		t.Fatalf("detail = %q", msg)
	}

	var created domain.User
	call(t, ts, adminToken, http.MethodPost, "/api/users",
		map[string]string{"username": "mia", "password": "pw", "role": "manager"}, &created, http.StatusCreated)
	if created.Role != domain.RoleManager || !created.IsActive {
		t.Fatalf("created user wrong: %+v", created)
	}

	// Omitted role defaults to staff.
	var defaulted domain.User
	call(t, ts, adminToken, http.MethodPost, "/api/users",
		map[string]string{"username": "noa", "password": "pw"}, &defaulted, http.StatusCreated)
	if defaulted.Role != domain.RoleStaff {
		t.Fatalf("default role = %s, want staff", defaulted.Role)
	}

	call(t, ts, adminToken, http.MethodPut, "/api/users/"+created.ID+"/role?role=admin", nil, nil, http.StatusOK)
	msg = detail(t, ts, adminToken, http.MethodPut, "/api/users/"+created.ID+"/role?role=wizard", nil, http.StatusBadRequest)
	if msg != "Invalid role" {
		t.Fatalf("detail = %q", msg)
	}
}

func TestDashboardStats(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	low, _ := srv.SeedProduct(domain.Product{Name: "Scarce", SKU: "SCR-1", Price: 5, StockQuantity: 2, LowStockThreshold: 5})
	_, _ = srv.SeedProduct(domain.Product{Name: "Plenty", SKU: "PLN-1", Price: 5, StockQuantity: 50, LowStockThreshold: 5})

	var order domain.Order
	call(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
		"customer_name":  "Alice",
		"customer_email": "a@x.com",
		"items":          []map[string]any{{"product_id": low.ID, "quantity": 1}},
	}, &order, http.StatusOK)

	var stats domain.DashboardStats
	call(t, ts, token, http.MethodGet, "/api/reports/dashboard-stats", nil, &stats, http.StatusOK)
	if stats.TotalProducts != 2 || stats.TotalOrders != 1 || stats.PendingOrders != 1 {
		t.Fatalf("stats wrong: %+v", stats)
	}
	if len(stats.RecentOrders) != 1 || stats.RecentOrders[0].ID != order.ID {
		t.Fatalf("recent orders wrong: %+v", stats.RecentOrders)
	}
	if len(stats.LowStockAlerts) != 1 || stats.LowStockAlerts[0].ID != low.ID {
		t.Fatalf("low stock alerts wrong: %+v", stats.LowStockAlerts)
	}
}

func TestInventoryReport(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	_, _ = srv.SeedProduct(domain.Product{Name: "Gone", SKU: "GON-1", Price: 4, StockQuantity: 0, LowStockThreshold: 5})
	_, _ = srv.SeedProduct(domain.Product{Name: "Scarce", SKU: "SCR-1", Price: 5, StockQuantity: 2, LowStockThreshold: 5})
	_, _ = srv.SeedProduct(domain.Product{Name: "Plenty", SKU: "PLN-1", Price: 2, StockQuantity: 10, LowStockThreshold: 5})

	var report domain.InventoryAnalytics
	call(t, ts, token, http.MethodGet, "/api/reports/inventory", nil, &report, http.StatusOK)
	if report.TotalProducts != 3 {
		t.Fatalf("total products = %d", report.TotalProducts)
	}
	if report.TotalInventoryValue != 0*4+2*5+10*2 {
		t.Fatalf("inventory value = %v", report.TotalInventoryValue)
	}
	if len(report.OutOfStockProducts) != 1 || report.OutOfStockProducts[0].Name != "Gone" {
		t.Fatalf("out of stock wrong: %+v", report.OutOfStockProducts)
	}
	if len(report.LowStockProducts) != 1 || report.LowStockProducts[0].Name != "Scarce" {
		t.Fatalf("low stock wrong: %+v", report.LowStockProducts)
	}
}

func TestSalesReportExcludesCancelled(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")
	p, _ := srv.SeedProduct(domain.Product{Name: "Widget", SKU: "WID-1", Price: 10, StockQuantity: 20})

	place := func() domain.Order {
		var order domain.Order
		call(t, ts, token, http.MethodPost, "/api/orders", map[string]any{
			"customer_name":  "Alice",
			"customer_email": "a@x.com",
			"items":          []map[string]any{{"product_id": p.ID, "quantity": 2}},
		}, &order, http.StatusOK)
		return order
	}

	_ = place()
	cancelled := place()
	call(t, ts, token, http.MethodPut, "/api/orders/"+cancelled.ID+"/status",
		map[string]string{"status": "cancelled"}, nil, http.StatusOK)

	var report domain.SalesAnalytics
	call(t, ts, token, http.MethodGet, "/api/reports/sales?days=7", nil, &report, http.StatusOK)
	if report.TotalOrders != 1 || report.TotalSales != 20 {
		t.Fatalf("sales report wrong: %+v", report)
	}
	if len(report.TopProducts) != 1 || report.TopProducts[0].Name != "Widget" || report.TopProducts[0].Sales != 20 {
		t.Fatalf("top products wrong: %+v", report.TopProducts)
	}
	if len(report.SalesByMonth) != 1 {
		t.Fatalf("sales by month wrong: %+v", report.SalesByMonth)
	}
}

func TestValidationMessages(t *testing.T) {
	_, ts := newTestServer(t)
	token := login(t, ts, "admin", "admin123")

	msg := detail(t, ts, token, http.MethodPost, "/api/products",
		map[string]any{"name": "Widget"}, http.StatusBadRequest)
	if !strings.Contains(msg, "sku is required") {
		t.Fatalf("detail = %q", msg)
	}

	msg = detail(t, ts, token, http.MethodPost, "/api/orders",
		map[string]any{"customer_name": "Alice", "customer_email": "a@x.com", "items": []any{}}, http.StatusBadRequest)
	if !strings.Contains(msg, "items") {
		t.Fatalf("detail = %q", msg)
	}
}
