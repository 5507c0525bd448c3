package stubserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// --- auth ---

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	acct, ok := s.store.findAccount(req.Username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}

	claims := jwt.MapClaims{
		"sub":  acct.Username,
		"role": string(acct.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return err
	}

	s.logger.Info().Str("username", acct.Username).Msg("login")
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(c echo.Context) error {
	acct, err := currentAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{Username: acct.Username, Role: string(acct.Role)})
}

// --- products ---

func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listProducts())
}

func (s *Server) getProduct(c echo.Context) error {
	p, derr := s.store.getProduct(c.Param("id"))
	if derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, derr := s.store.addProduct(domain.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		Category:          req.Category,
		SKU:               req.SKU,
		LowStockThreshold: req.LowStockThreshold,
		ImageURL:          req.ImageURL,
	})
	if derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.SKU != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "SKU cannot be modified")
	}

	updated, derr := s.store.updateProduct(c.Param("id"), productPatch{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		Category:          req.Category,
		LowStockThreshold: req.LowStockThreshold,
		ImageURL:          req.ImageURL,
	})
	if derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteProduct(c echo.Context) error {
	if derr := s.store.deleteProduct(c.Param("id")); derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// --- orders ---

func (s *Server) listOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listOrders())
}

func (s *Server) createOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	draft := domain.DraftOrder{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, domain.DraftItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, derr := s.store.createOrder(draft)
	if derr != nil {
		if derr.code == http.StatusBadRequest {
			s.stockRejections.Inc()
		}
		return echo.NewHTTPError(derr.code, derr.msg)
	}

	s.ordersCreated.Inc()
	s.logger.Info().Str("order_number", order.OrderNumber).Float64("total", order.TotalAmount).Msg("order created")
	return c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		valid := make([]string, len(domain.OrderStatuses))
		for i, known := range domain.OrderStatuses {
			valid[i] = string(known)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status. Must be one of: "+strings.Join(valid, ", "))
	}

	order, derr := s.store.setOrderStatus(c.Param("id"), status)
	if derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c echo.Context) error {
	if derr := s.store.deleteOrder(c.Param("id")); derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}

// --- users ---

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listAccounts())
}

func (s *Server) createUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleStaff
	}
	if !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	acct, derr := s.store.addAccount(req.Username, string(hash), role)
	if derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusCreated, acct.user())
}

func (s *Server) updateUserRole(c echo.Context) error {
	role := domain.Role(c.QueryParam("role"))
	if !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
	}
	if derr := s.store.setAccountRole(c.Param("id"), role); derr != nil {
		return echo.NewHTTPError(derr.code, derr.msg)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User role updated successfully"})
}

// --- reports ---

func (s *Server) dashboardStats(c echo.Context) error {
	orders := s.store.listOrders() // newest first
	products := s.store.listProducts()

	stats := domain.DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}
	for _, o := range orders {
		if o.Status == domain.OrderPending {
			stats.PendingOrders++
		}
	}
	for i := 0; i < len(orders) && i < 5; i++ {
		stats.RecentOrders = append(stats.RecentOrders, orders[i])
	}
	for _, p := range products {
		if p.LowStock() {
			stats.LowStockAlerts = append(stats.LowStockAlerts, p)
			if len(stats.LowStockAlerts) == 5 {
				break
			}
		}
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) salesReport(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days parameter")
		}
		days = n
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	analytics := domain.SalesAnalytics{}
	productSales := make(map[string]float64)
	monthSales := make(map[string]float64)
	for _, o := range s.store.listOrders() {
		if o.Status == domain.OrderCancelled || o.CreatedAt.Before(cutoff) {
			continue
		}
		analytics.TotalSales += o.TotalAmount
		analytics.TotalOrders++
		monthSales[o.CreatedAt.Format("2006-01")] += o.TotalAmount
		for _, item := range o.Items {
			productSales[item.ProductName] += item.Total
		}
	}

	for name, sales := range productSales {
		analytics.TopProducts = append(analytics.TopProducts, domain.ProductSales{Name: name, Sales: sales})
	}
	sortProductSales(analytics.TopProducts)
	if len(analytics.TopProducts) > 5 {
		analytics.TopProducts = analytics.TopProducts[:5]
	}

	for month, sales := range monthSales {
		analytics.SalesByMonth = append(analytics.SalesByMonth, domain.MonthlySales{Month: month, Sales: sales})
	}
	sortMonthlySales(analytics.SalesByMonth)

	return c.JSON(http.StatusOK, analytics)
}

// sortProductSales orders the ranking by revenue, highest first; ties
// break on name so the output is stable.
func sortProductSales(entries []domain.ProductSales) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Sales != entries[j].Sales {
			return entries[i].Sales > entries[j].Sales
		}
		return entries[i].Name < entries[j].Name
	})
}

func sortMonthlySales(entries []domain.MonthlySales) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Month < entries[j].Month })
}

func (s *Server) inventoryReport(c echo.Context) error {
	analytics := domain.InventoryAnalytics{}
	for _, p := range s.store.listProducts() {
		analytics.TotalProducts++
		analytics.TotalInventoryValue += p.Price * float64(p.StockQuantity)
		switch {
		case !p.InStock():
			analytics.OutOfStockProducts = append(analytics.OutOfStockProducts,
				domain.OutOfStockItem{Name: p.Name, SKU: p.SKU})
		case p.LowStock():
			analytics.LowStockProducts = append(analytics.LowStockProducts, domain.StockAlert{
				Name:         p.Name,
				SKU:          p.SKU,
				CurrentStock: p.StockQuantity,
				Threshold:    p.LowStockThreshold,
			})
		}
	}
	return c.JSON(http.StatusOK, analytics)
}
