package screen

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tresoria/internal/api"
	apperrors "tresoria/internal/errors"
	"tresoria/internal/ledger"
)

// EditorMode distinguishes creating a new transaction from editing one.
type EditorMode string

const (
	EditorCreate EditorMode = "create"
	EditorEdit   EditorMode = "edit"
)

// Editor is the transaction form state. Amount holds the absolute value as
// typed; the persisted sign comes from Kind alone. CategoryName is free text
// resolved against the category store on submit.
type Editor struct {
	Mode         EditorMode
	ID           string
	Fournisseur  string
	Description  string
	Amount       string
	Date         time.Time
	Kind         ledger.Kind
	CategoryName string

	// InlineError carries a category-creation rejection shown inside the
	// form, without closing it or submitting the transaction.
	InlineError string
}

// OpenCreate opens the editor with a blank expense draft dated today.
func (s *Screen) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = &Editor{
		Mode: EditorCreate,
		Date: time.Now().Truncate(24 * time.Hour),
		Kind: ledger.KindExpense,
	}
}

// OpenEdit opens the editor prefilled from a stored transaction. The kind
// toggle is inferred from the stored sign and the amount shown unsigned.
func (s *Screen) OpenEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.rowByIDLocked(id)
	if !ok {
		return apperrors.ErrTransactionNotFound
	}

	editor := &Editor{
		Mode:        EditorEdit,
		ID:          t.ID,
		Fournisseur: t.Fournisseur,
		Description: t.Description,
		Amount:      t.Amount.Abs().String(),
		Date:        t.Date,
		Kind:        t.Kind(),
	}
	if t.CategoryID != nil {
		if c, found := s.categoryByIDLocked(*t.CategoryID); found {
			editor.CategoryName = c.Name
		}
	}
	s.editor = editor
	return nil
}

// Editor returns a copy of the open form state, or nil when closed.
func (s *Screen) Editor() *Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return nil
	}
	editor := *s.editor
	return &editor
}

// SetEditor replaces the open form state with edited field values.
func (s *Screen) SetEditor(editor Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return
	}
	editor.Mode = s.editor.Mode
	editor.ID = s.editor.ID
	s.editor = &editor
}

// CloseEditor discards the open form without saving.
func (s *Screen) CloseEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = nil
}

// Submit validates and persists the open form. The stored sign comes from the
// kind toggle; the typed category name is resolved by exact match, saving the
// row uncategorized when it matches nothing. On success the returned entity
// is merged into the store by id and the form closes; on failure the form
// stays open and an error toast is raised.
func (s *Screen) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return apperrors.ErrNoEditor
	}
	editor := *s.editor

	entered, err := decimal.NewFromString(strings.TrimSpace(editor.Amount))
	if err != nil {
		s.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}

	payload := api.TransactionPayload{
		ID:          editor.ID,
		Label:       editor.Fournisseur,
		Description: editor.Description,
		Fournisseur: editor.Fournisseur,
		Amount:      ledger.SignedAmount(editor.Kind, entered),
		Date:        editor.Date,
		CategoryID:  s.resolveCategoryLocked(strings.TrimSpace(editor.CategoryName)),
	}
	s.mu.Unlock()

	var saved *api.Transaction
	if editor.Mode == EditorEdit {
		saved, err = s.client.UpdateTransaction(ctx, payload)
	} else {
		saved, err = s.client.CreateTransaction(ctx, payload)
	}
	if err != nil {
		s.log.Errorw("saving transaction failed", "mode", editor.Mode, "error", err)
		s.toast.Show(NoticeError, "La transaction n'a pas pu être enregistrée")
		return err
	}

	s.mu.Lock()
	s.upsertLocked(s.toLedgerLocked(*saved))
	s.editor = nil
	s.mu.Unlock()

	s.toast.Show(NoticeSuccess, "Transaction enregistrée")
	return nil
}

// CreateCategoryInline creates a category from inside the transaction form,
// after the user confirmed an unknown name. A server rejection (duplicate
// name) is stored as an inline form error; the transaction is not submitted.
// On success the category joins the store and the form selects it.
func (s *Screen) CreateCategoryInline(ctx context.Context, name string) error {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return apperrors.ErrNoEditor
	}
	s.mu.Unlock()

	created, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrRejected.Code {
			s.mu.Lock()
			if s.editor != nil {
				s.editor.InlineError = appErr.Message
			}
			s.mu.Unlock()
			return err
		}
		s.noteFailure("creating category", err)
		return err
	}

	s.mu.Lock()
	s.categories = append(s.categories, ledger.Category(*created))
	if s.editor != nil {
		s.editor.CategoryName = created.Name
		s.editor.InlineError = ""
	}
	s.mu.Unlock()
	return nil
}
