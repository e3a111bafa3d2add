package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeCartApp() *fiber.App {
	handler := NewHandler(NewService(NewInMemoryRepository()))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app
}

func TestCartRoutes(t *testing.T) {
	app := makeCartApp()

	// first GET creates the cart and greets the new user
	res, err := app.Test(httptest.NewRequest("GET", "/cart/alice", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Welcome alice!") {
		t.Fatalf("expected welcome message, got %s", string(b))
	}

	// add an item
	req := httptest.NewRequest("POST", "/cart/alice/add", strings.NewReader(`{"productId":"p_apple","productName":"Organic Apple","qty":2,"price":50}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"cart_count":1`) {
		t.Fatalf("expected cart_count 1, got %s", string(b))
	}

	// missing product identity is rejected
	req = httptest.NewRequest("POST", "/cart/alice/add", strings.NewReader(`{"qty":2}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing product, got %d", res.StatusCode)
	}

	// remove it
	req = httptest.NewRequest("POST", "/cart/alice/remove", strings.NewReader(`{"productId":"p_apple"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"removed_count":1`) {
		t.Fatalf("expected removed_count 1, got %s", string(b))
	}

	// clear
	res, _ = app.Test(httptest.NewRequest("DELETE", "/cart/alice/clear", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clear, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "cleared successfully") {
		t.Fatalf("expected clear message, got %s", string(b))
	}
}
