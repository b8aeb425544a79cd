package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// ListTransactions retrieves all transactions newest first, with their
// category preloaded so the screen never joins by name. An empty company id
// is unscoped: the deployment is single-tenant and the contract's list call
// carries no tenant parameter.
func (s *transactionService) ListTransactions(companyID string) ([]models.Transaction, error) {
	q := s.db.Preload("Category").Order("date DESC, created_at DESC")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// CreateTransaction creates a new transaction for a company.
func (s *transactionService) CreateTransaction(companyID string, input TransactionInput) (*models.Transaction, error) {
	if companyID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company id is required")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if err := s.checkCategory(companyID, input.CategoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		CompanyID:   companyID,
		Label:       input.Label,
		Description: input.Description,
		Fournisseur: input.Fournisseur,
		Amount:      input.Amount,
		Date:        input.Date,
		CategoryID:  input.CategoryID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.reload(transaction.ID)
}

// UpdateTransaction replaces every writable field of an existing transaction.
func (s *transactionService) UpdateTransaction(companyID, id string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.getCompanyTransaction(companyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(companyID, input.CategoryID); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = transaction.Date
	}

	// Full-field replace, including clearing the category when nil.
	updates := map[string]interface{}{
		"label":       input.Label,
		"description": input.Description,
		"fournisseur": input.Fournisseur,
		"amount":      input.Amount,
		"date":        input.Date,
		"category_id": input.CategoryID,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.reload(id)
}

// DeleteTransaction soft-deletes a transaction from the company ledger.
func (s *transactionService) DeleteTransaction(companyID, id string) error {
	transaction, err := s.getCompanyTransaction(companyID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *transactionService) getCompanyTransaction(companyID, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND company_id = ?", id, companyID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// checkCategory verifies a referenced category exists and belongs to the
// company. A nil reference means uncategorized and is always valid.
func (s *transactionService) checkCategory(companyID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryService.GetCategoryByID(*categoryID)
	if err != nil {
		return err
	}
	if category.CompanyID != companyID {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// reload fetches a transaction with its category preloaded, so write calls
// return the same shape as the list endpoint.
func (s *transactionService) reload(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Where("id = ?", id).First(&transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
