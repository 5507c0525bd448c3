// Package order assembles a valid draft order before submission. Final
// consistency — accurate stock checks, price computation, order numbering —
// belongs to the backend, which may still reject at commit time.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inventoryhub/admin-console/internal/core/domain"
	"github.com/inventoryhub/admin-console/internal/metrics"
)

// ErrLastLine is reported when removal would leave the draft with zero
// lines. A draft may only become item-less through unfilled slots, which
// validation catches at submit.
var ErrLastLine = errors.New("at least one item is required")

// ErrNoSuchLine is reported for out-of-range line indices.
var ErrNoSuchLine = errors.New("no such line")

// ErrUnavailableProduct is reported when a line references a product that
// was not offered for selection (out of stock or unknown).
var ErrUnavailableProduct = errors.New("product is not available")

// Requester is the slice of the session manager the builder needs.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, body, out any) error
}

// State is the draft's position in its lifecycle. A draft is exclusively
// owned by the single UI session that opened it.
type State int

const (
	StateClosed State = iota
	StateEditing
	StateSubmitting
)

// Line is one editable (product, quantity) slot. A zero value is an empty
// slot, silently discarded at build time.
type Line struct {
	ProductID string
	Quantity  int
}

// Builder holds one draft order at a time.
type Builder struct {
	api      Requester
	validate *validator.Validate

	state         State
	selectable    []domain.Product
	byID          map[string]domain.Product
	customerName  string
	customerEmail string
	lines         []Line
}

// NewBuilder returns a closed builder bound to api.
func NewBuilder(api Requester) *Builder {
	return &Builder{api: api, validate: validator.New()}
}

// StartDraft resets the draft to a single empty line slot. Only products
// with stock on hand are offered for selection; zero-stock products never
// appear as selectable.
func (b *Builder) StartDraft(catalog []domain.Product) {
	b.selectable = b.selectable[:0]
	b.byID = make(map[string]domain.Product)
	for _, p := range catalog {
		if !p.InStock() {
			continue
		}
		b.selectable = append(b.selectable, p)
		b.byID[p.ID] = p
	}
	b.customerName = ""
	b.customerEmail = ""
	b.lines = []Line{{}}
	b.state = StateEditing
}

// State returns the draft lifecycle state.
func (b *Builder) State() State { return b.state }

// Selectable returns the in-stock products offered for line selection.
func (b *Builder) Selectable() []domain.Product { return b.selectable }

// SelectableByID looks a product up among the offered ones.
func (b *Builder) SelectableByID(id string) (domain.Product, bool) {
	p, ok := b.byID[id]
	return p, ok
}

// Lines returns the current line slots.
func (b *Builder) Lines() []Line { return b.lines }

// SetCustomer records the customer fields of the draft.
func (b *Builder) SetCustomer(name, email string) {
	b.customerName = name
	b.customerEmail = email
}

// AddLine appends one empty line slot. The count is unbounded.
func (b *Builder) AddLine() {
	b.lines = append(b.lines, Line{})
}

// RemoveLine removes the line at index i, keeping the remaining lines
// index-stable. Removing the last remaining line is refused.
func (b *Builder) RemoveLine(i int) error {
	if len(b.lines) <= 1 {
		return ErrLastLine
	}
	if i < 0 || i >= len(b.lines) {
		return ErrNoSuchLine
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	return nil
}

// SetLine fills the line at index i. An empty productID clears the slot.
func (b *Builder) SetLine(i int, productID string, quantity int) error {
	if i < 0 || i >= len(b.lines) {
		return ErrNoSuchLine
	}
	if productID != "" {
		if _, ok := b.byID[productID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnavailableProduct, productID)
		}
	}
	b.lines[i] = Line{ProductID: productID, Quantity: quantity}
	return nil
}

// ValidateAndBuild turns the slots into a submittable draft. Customer name
// and email must be non-empty; lines missing a product or a positive
// quantity are discarded silently; an empty result is a validation error.
// Quantities are deliberately not checked against current stock here — the
// backend is authoritative and may reject at submit time.
func (b *Builder) ValidateAndBuild() (*domain.DraftOrder, error) {
	draft := &domain.DraftOrder{
		CustomerName:  strings.TrimSpace(b.customerName),
		CustomerEmail: strings.TrimSpace(b.customerEmail),
	}
	for _, line := range b.lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		draft.Items = append(draft.Items, domain.DraftItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	if err := b.validate.Struct(draft); err != nil {
		return nil, &domain.ValidationError{Message: validationMessage(err)}
	}
	if len(draft.Items) == 0 {
		return nil, &domain.ValidationError{Message: "no items"}
	}
	return draft, nil
}

// Submit posts the draft. On success the draft is discarded and the caller
// must refresh the product snapshot, the order list, and any aggregate
// statistics, since order creation mutates inventory. On failure the draft
// stays open for correction.
func (b *Builder) Submit(ctx context.Context, draft *domain.DraftOrder) (*domain.Order, error) {
	b.state = StateSubmitting
	var out domain.Order
	if err := b.api.Request(ctx, http.MethodPost, "/orders", draft, &out); err != nil {
		b.state = StateEditing
		return nil, err
	}
	b.reset()
	metrics.OrdersSubmittedTotal.Inc()
	return &out, nil
}

// Cancel discards the draft without submitting.
func (b *Builder) Cancel() { b.reset() }

func (b *Builder) reset() {
	b.state = StateClosed
	b.selectable = nil
	b.byID = nil
	b.customerName = ""
	b.customerEmail = ""
	b.lines = nil
}

// validationMessage converts validator errors into the human-readable form
// shown to the operator.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
