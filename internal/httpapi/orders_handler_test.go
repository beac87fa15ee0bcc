package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/google/uuid"
)

func seedOrder(t *testing.T, repo *stubOrderRepo, name string) *domain.Order {
	t.Helper()
	order := &domain.Order{
		ID:           uuid.New(),
		CustomerName: name,
		Phone:        "9876543210",
		Subtotal:     400,
		Total:        449,
		Status:       domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", ProductName: "Oversized Tee", Quantity: 1, Price: 400},
		},
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

func TestGetOrder_Success(t *testing.T) {
	repo := newStubOrderRepo()
	order := seedOrder(t, repo, "Asha")
	handler := NewOrdersHandler(repo, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/", nil), "id", order.ID.String())
	handler.Get(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response OrderResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID != order.ID.String() {
		t.Errorf("Expected id %s, got %s", order.ID, response.ID)
	}
	if response.Status != "pending" {
		t.Errorf("Expected status 'pending', got '%s'", response.Status)
	}
	if len(response.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(response.Items))
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	handler := NewOrdersHandler(newStubOrderRepo(), 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/", nil), "id", "not-a-uuid")
	handler.Get(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := NewOrdersHandler(newStubOrderRepo(), 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/", nil), "id", uuid.NewString())
	handler.Get(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	repo := newStubOrderRepo()
	seedOrder(t, repo, "First")
	second := seedOrder(t, repo, "Second")
	handler := NewOrdersHandler(repo, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response OrdersResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response.Orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(response.Orders))
	}
	if response.Orders[0].ID != second.ID.String() {
		t.Errorf("Expected newest order first, got %s", response.Orders[0].CustomerName)
	}
}

func TestListOrders_LimitApplied(t *testing.T) {
	repo := newStubOrderRepo()
	for i := 0; i < 3; i++ {
		seedOrder(t, repo, "Customer")
	}
	handler := NewOrdersHandler(repo, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/?limit=2", nil)
	handler.List(recorder, request)

	var response OrdersResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if len(response.Orders) != 2 {
		t.Errorf("Expected 2 orders, got %d", len(response.Orders))
	}
}

func TestListOrders_InvalidLimit(t *testing.T) {
	handler := NewOrdersHandler(newStubOrderRepo(), 5*time.Second)

	for _, limit := range []string{"0", "-1", "501", "abc"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/?limit="+limit, nil)
		handler.List(recorder, request)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected status code %d, got %d", limit, http.StatusBadRequest, recorder.Code)
		}
	}
}
