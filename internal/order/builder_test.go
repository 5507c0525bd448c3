package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

type stubRequester struct {
	err      error
	lastBody any
	response domain.Order
}

func (r *stubRequester) Request(_ context.Context, method, endpoint string, body, out any) error {
	r.lastBody = body
	if r.err != nil {
		return r.err
	}
	if out != nil {
		data, _ := json.Marshal(r.response)
		_ = json.Unmarshal(data, out)
	}
	return nil
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Widget", StockQuantity: 5, Price: 9.99},
		{ID: "p2", Name: "Gadget", StockQuantity: 1, Price: 24.50},
		{ID: "p3", Name: "Doohickey", StockQuantity: 0, Price: 3.00},
	}
}

func TestStartDraftExcludesOutOfStock(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())

	if b.State() != StateEditing {
		t.Fatalf("state = %v, want StateEditing", b.State())
	}
	if len(b.Selectable()) != 2 {
		t.Fatalf("selectable = %d products, want 2", len(b.Selectable()))
	}
	if _, ok := b.SelectableByID("p3"); ok {
		t.Fatal("zero-stock product must not be selectable")
	}
	if _, ok := b.SelectableByID("p2"); !ok {
		t.Fatal("stock of 1 must be selectable")
	}
	if len(b.Lines()) != 1 {
		t.Fatalf("a fresh draft starts with one line, got %d", len(b.Lines()))
	}
}

func TestValidateAndBuildHappyPath(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	b.SetCustomer("Alice", "a@x.com")
	if err := b.SetLine(0, "p1", 2); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	draft, err := b.ValidateAndBuild()
	if err != nil {
		t.Fatalf("ValidateAndBuild: %v", err)
	}
	if draft.CustomerName != "Alice" || draft.CustomerEmail != "a@x.com" {
		t.Fatalf("customer fields wrong: %+v", draft)
	}
	if len(draft.Items) != 1 || draft.Items[0].ProductID != "p1" || draft.Items[0].Quantity != 2 {
		t.Fatalf("items wrong: %+v", draft.Items)
	}
}

func TestValidateAndBuildRequiresCustomer(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	b.SetCustomer("   ", "")
	_ = b.SetLine(0, "p1", 1)

	_, err := b.ValidateAndBuild()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateAndBuildDropsIncompleteLines(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	b.SetCustomer("Alice", "a@x.com")
	// Line 0 stays empty, line 1 has zero quantity, line 2 is complete.
	b.AddLine()
	b.AddLine()
	_ = b.SetLine(1, "p1", 0)
	_ = b.SetLine(2, "p2", 1)

	draft, err := b.ValidateAndBuild()
	if err != nil {
		t.Fatalf("ValidateAndBuild: %v", err)
	}
	if len(draft.Items) != 1 || draft.Items[0].ProductID != "p2" {
		t.Fatalf("incomplete lines must be dropped silently, got %+v", draft.Items)
	}
}

func TestValidateAndBuildRejectsEmptyItems(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	b.SetCustomer("Alice", "a@x.com")
	// Quantity zero on the only line: draft has no effective items.
	_ = b.SetLine(0, "p1", 0)

	_, err := b.ValidateAndBuild()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "no items" {
		t.Fatalf("message = %q, want %q", ve.Message, "no items")
	}
}

func TestSetLineRejectsUnavailableProduct(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())

	if err := b.SetLine(0, "p3", 1); !errors.Is(err, ErrUnavailableProduct) {
		t.Fatalf("expected ErrUnavailableProduct for zero-stock product, got %v", err)
	}
	if err := b.SetLine(0, "ghost", 1); !errors.Is(err, ErrUnavailableProduct) {
		t.Fatalf("expected ErrUnavailableProduct for unknown product, got %v", err)
	}
	if err := b.SetLine(5, "p1", 1); !errors.Is(err, ErrNoSuchLine) {
		t.Fatalf("expected ErrNoSuchLine, got %v", err)
	}
}

func TestRemoveLineKeepsLastLine(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	_ = b.SetLine(0, "p1", 1)

	if err := b.RemoveLine(0); !errors.Is(err, ErrLastLine) {
		t.Fatalf("expected ErrLastLine, got %v", err)
	}
	if len(b.Lines()) != 1 || b.Lines()[0].ProductID != "p1" {
		t.Fatalf("refused removal must be a no-op, lines = %+v", b.Lines())
	}
}

func TestRemoveLineIsIndexStable(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	b.AddLine()
	b.AddLine()
	_ = b.SetLine(0, "p1", 1)
	_ = b.SetLine(1, "p2", 1)
	_ = b.SetLine(2, "p1", 3)

	if err := b.RemoveLine(1); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].ProductID != "p1" || lines[0].Quantity != 1 {
		t.Fatalf("line 0 changed: %+v", lines[0])
	}
	if lines[1].ProductID != "p1" || lines[1].Quantity != 3 {
		t.Fatalf("line 2 did not shift into index 1: %+v", lines[1])
	}

	if err := b.RemoveLine(5); !errors.Is(err, ErrNoSuchLine) {
		t.Fatalf("expected ErrNoSuchLine, got %v", err)
	}
}

func TestSubmitSuccessClosesDraft(t *testing.T) {
	api := &stubRequester{response: domain.Order{OrderNumber: "ORD-3FA85F64", TotalAmount: 19.98}}
	b := NewBuilder(api)
	b.StartDraft(testCatalog())
	b.SetCustomer("Alice", "a@x.com")
	_ = b.SetLine(0, "p1", 2)

	draft, err := b.ValidateAndBuild()
	if err != nil {
		t.Fatalf("ValidateAndBuild: %v", err)
	}
	created, err := b.Submit(context.Background(), draft)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.OrderNumber != "ORD-3FA85F64" {
		t.Fatalf("order number = %q", created.OrderNumber)
	}
	if b.State() != StateClosed {
		t.Fatalf("state after success = %v, want StateClosed", b.State())
	}
	if api.lastBody != draft {
		t.Fatal("submitted body is not the built draft")
	}
}

func TestSubmitFailureKeepsDraftEditable(t *testing.T) {
	api := &stubRequester{err: &domain.RequestError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock"}}
	b := NewBuilder(api)
	b.StartDraft(testCatalog())
	b.SetCustomer("Alice", "a@x.com")
	_ = b.SetLine(0, "p2", 1)

	draft, err := b.ValidateAndBuild()
	if err != nil {
		t.Fatalf("ValidateAndBuild: %v", err)
	}
	if _, err := b.Submit(context.Background(), draft); err == nil {
		t.Fatal("expected submit error")
	}
	if b.State() != StateEditing {
		t.Fatalf("state after failure = %v, want StateEditing", b.State())
	}
	if len(b.Lines()) != 1 || b.Lines()[0].ProductID != "p2" {
		t.Fatalf("draft must survive a failed submit, lines = %+v", b.Lines())
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	b := NewBuilder(&stubRequester{})
	b.StartDraft(testCatalog())
	_ = b.SetLine(0, "p1", 1)

	b.Cancel()
	if b.State() != StateClosed {
		t.Fatalf("state after cancel = %v, want StateClosed", b.State())
	}
	if len(b.Lines()) != 0 {
		t.Fatalf("cancelled draft keeps lines: %+v", b.Lines())
	}
}
