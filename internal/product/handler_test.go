package product

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp() *fiber.App {
	handler := NewHandler(newTestService())
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app)
	return app
}

func TestGetProducts(t *testing.T) {
	app := makeApp()

	res, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != len(seedProducts()) {
		t.Fatalf("expected %d products, got %d", len(seedProducts()), len(products))
	}
}

func TestGetProductsFiltered(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/products?q=milk&category=dairy&max_price=100", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p_milk" {
		t.Fatalf("expected only p_milk, got %+v", products)
	}
}

func TestGetProductByID(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/products/p_apple", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/products/nope", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", res.StatusCode)
	}
}

func TestResetProductsGated(t *testing.T) {
	app := makeApp()

	req := httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 without ALLOW_RESET_PRODUCTS, got %d", res.StatusCode)
	}

	t.Setenv("ALLOW_RESET_PRODUCTS", "1")
	req = httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[{"id":"x","name":"X","price":1}]`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with reset allowed, got %d", res.StatusCode)
	}
}

func TestCreateProductValidation(t *testing.T) {
	app := makeApp()

	req := httptest.NewRequest("POST", "/products", strings.NewReader(`{"name":"","price":-1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	for _, field := range []string{"id", "name", "price"} {
		if !strings.Contains(body, field) {
			t.Fatalf("expected %q in validation errors, got %s", field, body)
		}
	}
}

func TestCreateAndDeleteProduct(t *testing.T) {
	app := makeApp()

	req := httptest.NewRequest("POST", "/products", strings.NewReader(`{"id":"p_new","name":"New Thing","price":9.5,"category":"misc"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/products/p_new", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/products/p_new", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", res.StatusCode)
	}
}
