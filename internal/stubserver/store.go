package stubserver

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// detailError carries the HTTP status and the human-readable message for
// the {"detail": ...} envelope.
type detailError struct {
	code int
	msg  string
}

func (e *detailError) Error() string { return e.msg }

type account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         domain.Role
	IsActive     bool
	CreatedAt    time.Time
}

func (a *account) user() domain.User {
	return domain.User{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// memStore holds all fixture state. One mutex guards everything; order
// creation in particular must check and decrement stock atomically so a
// rejected order never leaves a partial decrement behind.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*account        // keyed by username
	products map[string]*domain.Product // keyed by id
	orders   map[string]*domain.Order   // keyed by id
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*account),
		products: make(map[string]*domain.Product),
		orders:   make(map[string]*domain.Order),
	}
}

func newID() string { return uuid.NewString() }

// newOrderNumber generates numbers like ORD-3FA85F64.
func newOrderNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + hex[:8]
}

// --- accounts ---

func (s *memStore) findAccount(username string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[username]
	return a, ok
}

func (s *memStore) addAccount(username, passwordHash string, role domain.Role) (*account, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return nil, &detailError{http.StatusBadRequest, "Username already exists"}
	}
	a := &account{
		ID:           newID(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts[username] = a
	return a, nil
}

func (s *memStore) listAccounts() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.user())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (s *memStore) setAccountRole(id string, role domain.Role) *detailError {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			a.Role = role
			return nil
		}
	}
	return &detailError{http.StatusNotFound, "User not found"}
}

// --- products ---

func (s *memStore) addProduct(p domain.Product) (domain.Product, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return domain.Product{}, &detailError{http.StatusBadRequest, "Product with this SKU already exists"}
		}
	}
	now := time.Now().UTC()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = domain.DefaultLowStockThreshold
	}
	s.products[p.ID] = &p
	return p, nil
}

func (s *memStore) listProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].SKU < products[j].SKU })
	return products
}

func (s *memStore) getProduct(id string) (domain.Product, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, &detailError{http.StatusNotFound, "Product not found"}
	}
	return *p, nil
}

type productPatch struct {
	Name              *string
	Description       *string
	Price             *float64
	StockQuantity     *int
	Category          *string
	LowStockThreshold *int
	ImageURL          *string
}

func (s *memStore) updateProduct(id string, patch productPatch) (domain.Product, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, &detailError{http.StatusNotFound, "Product not found"}
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.LowStockThreshold != nil {
		p.LowStockThreshold = *patch.LowStockThreshold
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	p.UpdatedAt = time.Now().UTC()
	return *p, nil
}

func (s *memStore) deleteProduct(id string) *detailError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return &detailError{http.StatusNotFound, "Product not found"}
	}
	delete(s.products, id)
	return nil
}

// --- orders ---

// createOrder checks every line against current stock before touching
// anything, so an insufficient-stock rejection is atomic.
func (s *memStore) createOrder(draft domain.DraftOrder) (domain.Order, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range draft.Items {
		p, ok := s.products[item.ProductID]
		if !ok {
			return domain.Order{}, &detailError{http.StatusNotFound, "Product not found: " + item.ProductID}
		}
		if p.StockQuantity < item.Quantity {
			return domain.Order{}, &detailError{
				http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for product %s. Available: %d, Requested: %d",
					p.Name, p.StockQuantity, item.Quantity),
			}
		}
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:            newID(),
		OrderNumber:   newOrderNumber(),
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		Status:        domain.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range draft.Items {
		p := s.products[item.ProductID]
		lineTotal := p.Price * float64(item.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       p.Price,
			Total:       lineTotal,
		})
		order.TotalAmount += lineTotal
		p.StockQuantity -= item.Quantity
		p.UpdatedAt = now
	}
	s.orders[order.ID] = &order
	return order, nil
}

func (s *memStore) listOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders
}

func (s *memStore) setOrderStatus(id string, status domain.OrderStatus) (domain.Order, *detailError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, &detailError{http.StatusNotFound, "Order not found"}
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return *o, nil
}

// deleteOrder removes an order, returning quantities to inventory when the
// order had not shipped yet.
func (s *memStore) deleteOrder(id string) *detailError {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return &detailError{http.StatusNotFound, "Order not found"}
	}
	if o.Status.RestoresStock() {
		now := time.Now().UTC()
		for _, item := range o.Items {
			if p, ok := s.products[item.ProductID]; ok {
				p.StockQuantity += item.Quantity
				p.UpdatedAt = now
			}
		}
	}
	delete(s.orders, id)
	return nil
}
