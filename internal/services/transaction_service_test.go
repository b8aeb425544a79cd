package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tresoria/internal/testutil"
)

func newTransactionService(t *testing.T) (TransactionServicer, CategoryServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	categoryService := NewCategoryService(db)
	return NewTransactionService(db, categoryService), categoryService, func() {
		testutil.TeardownTestDB(t, db)
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, catSvc, teardown := newTransactionService(t)
		defer teardown()

		category, err := catSvc.CreateCategory(testutil.TestCompanyID, "Courses")
		testutil.AssertNoError(t, err)

		created, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Label:       "Carrefour",
			Fournisseur: "Carrefour",
			Description: "Courses hebdomadaires",
			Amount:      decimal.RequireFromString("-82.40"),
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		if created.ID == "" {
			t.Fatal("expected a generated transaction id")
		}
		if !created.Amount.Equal(decimal.RequireFromString("-82.40")) {
			t.Errorf("expected amount -82.40, got %s", created.Amount)
		}
		if created.Category == nil || created.Category.Name != "Courses" {
			t.Error("expected the category to be preloaded on the returned entity")
		}
	})

	t.Run("uncategorized", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		created, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "EDF",
			Amount:      decimal.RequireFromString("-120.00"),
			Date:        time.Now(),
		})
		testutil.AssertNoError(t, err)
		if created.CategoryID != nil {
			t.Error("expected a nil category reference")
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		bogus := "00000000-0000-0000-0000-0000000000ff"
		_, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "EDF",
			Amount:      decimal.RequireFromString("-120.00"),
			CategoryID:  &bogus,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("category_of_another_company", func(t *testing.T) {
		svc, catSvc, teardown := newTransactionService(t)
		defer teardown()

		foreign, err := catSvc.CreateCategory("00000000-0000-0000-0000-000000000002", "Courses")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "Carrefour",
			Amount:      decimal.RequireFromString("-10.00"),
			CategoryID:  &foreign.ID,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("missing_company", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		_, err := svc.CreateTransaction("", TransactionInput{Fournisseur: "EDF"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("newest_first_with_category", func(t *testing.T) {
		svc, catSvc, teardown := newTransactionService(t)
		defer teardown()

		category, err := catSvc.CreateCategory(testutil.TestCompanyID, "Courses")
		testutil.AssertNoError(t, err)

		older, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "Carrefour",
			Amount:      decimal.RequireFromString("-82.40"),
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)
		newer, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "ACME SARL",
			Amount:      decimal.RequireFromString("1500.00"),
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		})
		testutil.AssertNoError(t, err)

		transactions, err := svc.ListTransactions(testutil.TestCompanyID)
		testutil.AssertNoError(t, err)

		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].ID != newer.ID || transactions[1].ID != older.ID {
			t.Error("expected newest-first ordering")
		}
		if transactions[1].Category == nil || transactions[1].Category.Name != "Courses" {
			t.Error("expected the category preloaded on list results")
		}
	})

	t.Run("empty_company_is_unscoped", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		_, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "EDF", Amount: decimal.RequireFromString("-1"), Date: time.Now(),
		})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction("00000000-0000-0000-0000-000000000002", TransactionInput{
			Fournisseur: "EDF", Amount: decimal.RequireFromString("-2"), Date: time.Now(),
		})
		testutil.AssertNoError(t, err)

		transactions, err := svc.ListTransactions("")
		testutil.AssertNoError(t, err)
		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("full_replace_clears_category", func(t *testing.T) {
		svc, catSvc, teardown := newTransactionService(t)
		defer teardown()

		category, err := catSvc.CreateCategory(testutil.TestCompanyID, "Courses")
		testutil.AssertNoError(t, err)

		created, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "Carrefour",
			Description: "Courses",
			Amount:      decimal.RequireFromString("-82.40"),
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateTransaction(testutil.TestCompanyID, created.ID, TransactionInput{
			Fournisseur: "Carrefour Market",
			Description: "Courses du mois",
			Amount:      decimal.RequireFromString("-42.50"),
			Date:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			CategoryID:  nil,
		})
		testutil.AssertNoError(t, err)

		if updated.Fournisseur != "Carrefour Market" {
			t.Errorf("expected replaced fournisseur, got %s", updated.Fournisseur)
		}
		if !updated.Amount.Equal(decimal.RequireFromString("-42.50")) {
			t.Errorf("expected replaced amount, got %s", updated.Amount)
		}
		if updated.CategoryID != nil {
			t.Error("expected the category reference to be cleared")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		_, err := svc.UpdateTransaction(testutil.TestCompanyID, "00000000-0000-0000-0000-0000000000ff", TransactionInput{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("wrong_company", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		created, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "EDF", Amount: decimal.RequireFromString("-1"), Date: time.Now(),
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateTransaction("00000000-0000-0000-0000-000000000002", created.ID, TransactionInput{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("removes_from_list", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		created, err := svc.CreateTransaction(testutil.TestCompanyID, TransactionInput{
			Fournisseur: "EDF", Amount: decimal.RequireFromString("-120.00"), Date: time.Now(),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(testutil.TestCompanyID, created.ID))

		transactions, err := svc.ListTransactions(testutil.TestCompanyID)
		testutil.AssertNoError(t, err)
		if len(transactions) != 0 {
			t.Fatalf("expected no transactions after delete, got %d", len(transactions))
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, _, teardown := newTransactionService(t)
		defer teardown()

		err := svc.DeleteTransaction(testutil.TestCompanyID, "00000000-0000-0000-0000-0000000000ff")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
