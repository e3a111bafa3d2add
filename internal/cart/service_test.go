package cart

import (
	"context"
	"strings"
	"testing"
)

func TestGetCartWelcomeMessages(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	// first visit
	c, err := svc.GetCart(ctx, "alice")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if c.IsReturningUser {
		t.Fatalf("expected new user on first visit")
	}
	if !strings.Contains(c.Message, "Welcome alice!") {
		t.Fatalf("unexpected welcome message %q", c.Message)
	}

	// second visit, still empty
	c, _ = svc.GetCart(ctx, "alice")
	if !c.IsReturningUser {
		t.Fatalf("expected returning user on second visit")
	}
	if c.Message != "Welcome back alice!" {
		t.Fatalf("unexpected message %q", c.Message)
	}

	// with items
	if _, err := svc.AddToCart(ctx, "alice", Item{ProductID: "p_milk", ProductName: "Milk", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, _ = svc.GetCart(ctx, "alice")
	if !strings.Contains(c.Message, "1 item(s)") {
		t.Fatalf("expected item count in message, got %q", c.Message)
	}
}

func TestAddToCartIncrementsQuantity(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	ack, err := svc.AddToCart(ctx, "bob", Item{ProductID: "p_apple", ProductName: "Organic Apple", Quantity: 2, Price: 50})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !ack.Success || ack.CartCount != 1 {
		t.Fatalf("unexpected ack %+v", ack)
	}

	// same product again merges into one line
	ack, _ = svc.AddToCart(ctx, "bob", Item{ProductID: "p_apple", ProductName: "Organic Apple", Quantity: 3, Price: 50})
	if ack.CartCount != 1 {
		t.Fatalf("expected 1 distinct item, got %d", ack.CartCount)
	}

	c, _ := svc.GetCart(ctx, "bob")
	if len(c.Items) != 1 || c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", c.Items)
	}
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	ack, err := svc.AddToCart(context.Background(), "bob", Item{ProductID: "p_milk", ProductName: "Milk"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(ack.Message, "Added 1 x Milk") {
		t.Fatalf("expected defaulted quantity in message, got %q", ack.Message)
	}
}

func TestRemoveFromCart(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	svc.AddToCart(ctx, "bob", Item{ProductID: "p_apple", ProductName: "Organic Apple", Quantity: 1})
	svc.AddToCart(ctx, "bob", Item{ProductID: "p_milk", ProductName: "Milk", Quantity: 1})

	// by id
	ack, err := svc.RemoveFromCart(ctx, "bob", "p_apple", "")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ack.Removed != 1 || ack.CartCount != 1 {
		t.Fatalf("unexpected ack %+v", ack)
	}

	// by name, case-insensitive
	ack, _ = svc.RemoveFromCart(ctx, "bob", "", "MILK")
	if ack.Removed != 1 || ack.CartCount != 0 {
		t.Fatalf("unexpected ack %+v", ack)
	}

	// nothing left to remove
	ack, _ = svc.RemoveFromCart(ctx, "bob", "p_apple", "")
	if ack.Removed != 0 {
		t.Fatalf("expected nothing removed, got %+v", ack)
	}
}

func TestClearCart(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	svc.AddToCart(ctx, "bob", Item{ProductID: "p_apple", ProductName: "Organic Apple", Quantity: 2})
	ack, err := svc.ClearCart(ctx, "bob")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !ack.Success || ack.CartCount != 0 {
		t.Fatalf("unexpected ack %+v", ack)
	}

	c, _ := svc.GetCart(ctx, "bob")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
	if !c.IsReturningUser {
		t.Fatalf("clearing must not forget the user")
	}
}
