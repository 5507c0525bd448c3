package domain

import "testing"

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		role Role
		want CapabilitySet
	}{
		{RoleAdmin, CapabilitySet{CanViewUsers: true, CanMutateProducts: true, CanMutateOrders: true, CanManageUsers: true}},
		{RoleManager, CapabilitySet{CanViewUsers: true, CanMutateProducts: true, CanMutateOrders: true}},
		{RoleStaff, CapabilitySet{}},
		{Role("superuser"), CapabilitySet{}},
	}
	for _, tt := range tests {
		if got := CapabilitiesFor(tt.role); got != tt.want {
			t.Errorf("CapabilitiesFor(%q) = %+v, want %+v", tt.role, got, tt.want)
		}
	}
}

func TestCapabilitiesForDeterministic(t *testing.T) {
	for _, r := range Roles {
		first := CapabilitiesFor(r)
		for i := 0; i < 3; i++ {
			if got := CapabilitiesFor(r); got != first {
				t.Fatalf("CapabilitiesFor(%q) changed between calls: %+v vs %+v", r, first, got)
			}
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Role("root").Valid() {
		t.Error("expected unknown role to be invalid")
	}
}

func TestOrderStatusRestoresStock(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderPending, true},
		{OrderConfirmed, true},
		{OrderShipped, false},
		{OrderDelivered, false},
		{OrderCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.status.RestoresStock(); got != tt.want {
			t.Errorf("%s.RestoresStock() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestProductStockHelpers(t *testing.T) {
	p := Product{StockQuantity: 0, LowStockThreshold: 10}
	if p.InStock() {
		t.Error("zero stock should not be in stock")
	}
	p.StockQuantity = 1
	if !p.InStock() {
		t.Error("stock of 1 should be in stock")
	}
	if !p.LowStock() {
		t.Error("stock of 1 with threshold 10 should be low")
	}
	p.StockQuantity = 11
	if p.LowStock() {
		t.Error("stock above threshold should not be low")
	}
}
