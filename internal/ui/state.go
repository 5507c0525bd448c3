// Package ui is the view layer: section navigation, confirmation
// protocol, and terminal rendering. Business rules live below it; this
// package only consumes the core's outputs.
package ui

import "github.com/inventoryhub/admin-console/internal/core/domain"

// Section is one of the mutually exclusive dashboard panels. Exactly one
// is active at a time.
type Section int

const (
	SectionDashboard Section = iota
	SectionProducts
	SectionOrders
	SectionReports
	SectionUsers
)

func (s Section) String() string {
	switch s {
	case SectionDashboard:
		return "dashboard"
	case SectionProducts:
		return "products"
	case SectionOrders:
		return "orders"
	case SectionReports:
		return "reports"
	case SectionUsers:
		return "users"
	}
	return "unknown"
}

// SectionByName resolves a section from its navigation name.
func SectionByName(name string) (Section, bool) {
	switch name {
	case "dashboard":
		return SectionDashboard, true
	case "products":
		return SectionProducts, true
	case "orders":
		return SectionOrders, true
	case "reports":
		return SectionReports, true
	case "users":
		return SectionUsers, true
	}
	return SectionDashboard, false
}

// Loader names the data fetch a section switch requires.
type Loader int

const (
	LoadNothing Loader = iota
	LoadDashboard
	LoadProducts
	LoadOrders
	LoadReports
	LoadUsers
)

// Transition is the pure navigation function: given the active section,
// the requested one, and the operator's capabilities it returns the next
// section and the loader to invoke. A request the operator may not make
// leaves the state unchanged and loads nothing.
func Transition(current, requested Section, caps domain.CapabilitySet) (Section, Loader) {
	switch requested {
	case SectionDashboard:
		return requested, LoadDashboard
	case SectionProducts:
		return requested, LoadProducts
	case SectionOrders:
		return requested, LoadOrders
	case SectionReports:
		return requested, LoadReports
	case SectionUsers:
		if !caps.CanViewUsers {
			return current, LoadNothing
		}
		return requested, LoadUsers
	}
	return current, LoadNothing
}
