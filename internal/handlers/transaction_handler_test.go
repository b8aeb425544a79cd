package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/models"
	"tresoria/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	listTransactionsFn  func(companyID string) ([]models.Transaction, error)
	createTransactionFn func(companyID string, input services.TransactionInput) (*models.Transaction, error)
	updateTransactionFn func(companyID, id string, input services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn func(companyID, id string) error
}

func (m *mockTransactionService) ListTransactions(companyID string) ([]models.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(companyID)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) CreateTransaction(companyID string, input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(companyID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(companyID, id string, input services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(companyID, id, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(companyID, id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(companyID, id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/transactions", handler.ListTransactions)
	r.POST("/api/transactions", handler.CreateTransaction)
	r.PATCH("/api/transactions", handler.UpdateTransaction)
	r.DELETE("/api/transactions", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("dates are calendar days and category embedded", func(t *testing.T) {
		categoryID := "cat-1"
		txSvc := &mockTransactionService{
			listTransactionsFn: func(string) ([]models.Transaction, error) {
				return []models.Transaction{
					{
						Base:        models.Base{ID: "t1"},
						Fournisseur: "Carrefour",
						Amount:      decimal.RequireFromString("-82.40"),
						Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
						CategoryID:  &categoryID,
						Category:    &models.Category{Base: models.Base{ID: categoryID}, Name: "Courses"},
					},
					{
						Base:        models.Base{ID: "t2"},
						Fournisseur: "ACME SARL",
						Amount:      decimal.RequireFromString("1500.00"),
						Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}
		router := setupTransactionRouter(NewTransactionHandler(txSvc))

		w := doJSON(t, router, http.MethodGet, "/api/transactions", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var got []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(got))
		}
		if got[0]["date"] != "2024-03-01" {
			t.Errorf("expected calendar-day date, got %v", got[0]["date"])
		}
		category, ok := got[0]["category"].(map[string]interface{})
		if !ok || category["name"] != "Courses" {
			t.Errorf("expected embedded category object, got %v", got[0]["category"])
		}
		if got[1]["category"] != nil {
			t.Errorf("expected null category, got %v", got[1]["category"])
		}
		if _, isNumber := got[0]["amount"].(float64); !isNumber {
			t.Errorf("expected amount as a JSON number, got %T", got[0]["amount"])
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("passes the parsed payload to the service", func(t *testing.T) {
		var gotCompanyID string
		var gotInput services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(companyID string, input services.TransactionInput) (*models.Transaction, error) {
				gotCompanyID = companyID
				gotInput = input
				return &models.Transaction{
					Base:        models.Base{ID: "t1"},
					Fournisseur: input.Fournisseur,
					Amount:      input.Amount,
					Date:        input.Date,
				}, nil
			},
		}
		router := setupTransactionRouter(NewTransactionHandler(txSvc))

		w := doJSON(t, router, http.MethodPost, "/api/transactions", map[string]interface{}{
			"label":       "Carrefour",
			"fournisseur": "Carrefour",
			"description": "Courses",
			"amount":      -82.40,
			"date":        "2024-03-01",
			"companyId":   "co-1",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		if gotCompanyID != "co-1" {
			t.Errorf("expected company id co-1, got %s", gotCompanyID)
		}
		if !gotInput.Amount.Equal(decimal.RequireFromString("-82.40")) {
			t.Errorf("expected amount -82.40, got %s", gotInput.Amount)
		}
		if !gotInput.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected parsed date, got %s", gotInput.Date)
		}
	})

	t.Run("missing company id is a 400", func(t *testing.T) {
		router := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		w := doJSON(t, router, http.MethodPost, "/api/transactions", map[string]interface{}{
			"fournisseur": "Carrefour", "amount": -1,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown category is a 404", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(string, services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		router := setupTransactionRouter(NewTransactionHandler(txSvc))

		w := doJSON(t, router, http.MethodPost, "/api/transactions", map[string]interface{}{
			"fournisseur": "Carrefour", "amount": -1, "companyId": "co-1", "categoryId": "nope",
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("requires the transaction id", func(t *testing.T) {
		router := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		w := doJSON(t, router, http.MethodPatch, "/api/transactions", map[string]interface{}{
			"fournisseur": "Carrefour", "amount": -1, "companyId": "co-1",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown transaction is a 404", func(t *testing.T) {
		txSvc := &mockTransactionService{
			updateTransactionFn: func(string, string, services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		router := setupTransactionRouter(NewTransactionHandler(txSvc))

		w := doJSON(t, router, http.MethodPatch, "/api/transactions", map[string]interface{}{
			"id": "nope", "companyId": "co-1",
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("deletes by body id", func(t *testing.T) {
		var gotID, gotCompanyID string
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(companyID, id string) error {
				gotCompanyID, gotID = companyID, id
				return nil
			},
		}
		router := setupTransactionRouter(NewTransactionHandler(txSvc))

		w := doJSON(t, router, http.MethodDelete, "/api/transactions", map[string]string{
			"id": "t1", "companyId": "co-1",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if gotID != "t1" || gotCompanyID != "co-1" {
			t.Errorf("expected (t1, co-1), got (%s, %s)", gotID, gotCompanyID)
		}
	})

	t.Run("missing id is a 400", func(t *testing.T) {
		router := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		w := doJSON(t, router, http.MethodDelete, "/api/transactions", map[string]string{"companyId": "co-1"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
