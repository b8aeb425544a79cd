package screen

import (
	"context"
	"fmt"

	"tresoria/internal/api"
	"tresoria/internal/config"
	apperrors "tresoria/internal/errors"
	"tresoria/internal/ledger"
)

// BulkResult reports the outcome of a persisted bulk operation per row.
type BulkResult struct {
	Succeeded []string
	Failed    map[string]error
}

// Toggle marks a single transaction row as selected or not.
func (s *Screen) Toggle(id string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if checked {
		s.selection[id] = struct{}{}
	} else {
		delete(s.selection, id)
	}
}

// SelectAll sets the selection to exactly the current filtered view, or
// clears it. Rows selected earlier and since hidden by a filter change do not
// survive, so bulk operations never touch a row the user cannot see.
func (s *Screen) SelectAll(checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !checked {
		s.selection = make(map[string]struct{})
		return
	}
	filtered := ledger.Filter(s.transactions, s.criteria)
	s.selection = make(map[string]struct{}, len(filtered))
	for _, t := range filtered {
		s.selection[t.ID] = struct{}{}
	}
}

// Selected reports whether the given transaction is selected.
func (s *Screen) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selection[id]
	return ok
}

// SelectionCount returns the number of selected rows.
func (s *Screen) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selection)
}

// AllSelected reports whether every row of the non-empty filtered view is
// selected. It drives the header checkbox state.
func (s *Screen) AllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := ledger.Filter(s.transactions, s.criteria)
	if len(filtered) == 0 {
		return false
	}
	for _, t := range filtered {
		if _, ok := s.selection[t.ID]; !ok {
			return false
		}
	}
	return true
}

// ClearSelection empties the selection, closing the bulk affordance.
func (s *Screen) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]struct{})
}

// BulkAssignCategory assigns a category (nil clears it) to every selected
// transaction. In local mode the change touches only the client view; in
// persist mode each row is written back through the API, with per-row
// failures reported in the result. The selection is cleared either way.
func (s *Screen) BulkAssignCategory(ctx context.Context, categoryID *string) (BulkResult, error) {
	s.mu.Lock()
	if categoryID != nil {
		if _, ok := s.categoryByIDLocked(*categoryID); !ok {
			s.mu.Unlock()
			return BulkResult{}, apperrors.ErrCategoryNotFound
		}
	}
	ids := s.selectedIDsLocked()
	mode := s.bulkMode
	s.mu.Unlock()

	if mode == config.BulkModeLocal {
		s.mu.Lock()
		for i := range s.transactions {
			if _, ok := s.selection[s.transactions[i].ID]; ok {
				s.transactions[i].CategoryID = cloneID(categoryID)
			}
		}
		s.selection = make(map[string]struct{})
		s.mu.Unlock()
		s.toast.Show(NoticeSuccess, "Catégorie appliquée à la sélection")
		return BulkResult{Succeeded: ids}, nil
	}

	result := BulkResult{Failed: make(map[string]error)}
	for _, id := range ids {
		s.mu.Lock()
		row, ok := s.rowByIDLocked(id)
		s.mu.Unlock()
		if !ok {
			continue
		}

		row.CategoryID = cloneID(categoryID)
		updated, err := s.client.UpdateTransaction(ctx, payloadFor(row))
		if err != nil {
			s.log.Errorw("bulk category update failed", "transaction_id", id, "error", err)
			result.Failed[id] = err
			continue
		}

		s.mu.Lock()
		s.upsertLocked(s.toLedgerLocked(*updated))
		s.mu.Unlock()
		result.Succeeded = append(result.Succeeded, id)
	}

	s.ClearSelection()
	s.reportBulk(result, "Catégorie appliquée à la sélection")
	return result, nil
}

// BulkDelete removes every selected transaction. Local mode drops the rows
// from the client view only; persist mode issues a DELETE per row.
func (s *Screen) BulkDelete(ctx context.Context) (BulkResult, error) {
	s.mu.Lock()
	ids := s.selectedIDsLocked()
	mode := s.bulkMode
	s.mu.Unlock()

	if mode == config.BulkModeLocal {
		s.mu.Lock()
		kept := s.transactions[:0]
		for _, t := range s.transactions {
			if _, ok := s.selection[t.ID]; !ok {
				kept = append(kept, t)
			}
		}
		s.transactions = kept
		s.selection = make(map[string]struct{})
		s.mu.Unlock()
		s.toast.Show(NoticeSuccess, "Transactions supprimées")
		return BulkResult{Succeeded: ids}, nil
	}

	result := BulkResult{Failed: make(map[string]error)}
	for _, id := range ids {
		if err := s.client.DeleteTransaction(ctx, id); err != nil {
			s.log.Errorw("bulk delete failed", "transaction_id", id, "error", err)
			result.Failed[id] = err
			continue
		}

		s.mu.Lock()
		for i := range s.transactions {
			if s.transactions[i].ID == id {
				s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		result.Succeeded = append(result.Succeeded, id)
	}

	s.ClearSelection()
	s.reportBulk(result, "Transactions supprimées")
	return result, nil
}

// selectedIDsLocked returns the selected ids in store order, so persisted
// bulk operations run deterministically. Callers hold s.mu.
func (s *Screen) selectedIDsLocked() []string {
	ids := make([]string, 0, len(s.selection))
	for _, t := range s.transactions {
		if _, ok := s.selection[t.ID]; ok {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// rowByIDLocked returns a copy of the stored transaction. Callers hold s.mu.
func (s *Screen) rowByIDLocked(id string) (ledger.Transaction, bool) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return ledger.Transaction{}, false
}

func (s *Screen) reportBulk(result BulkResult, successMessage string) {
	if len(result.Failed) == 0 {
		s.toast.Show(NoticeSuccess, successMessage)
		return
	}
	s.toast.Show(NoticeError, fmt.Sprintf("%d opération(s) sur %d ont échoué",
		len(result.Failed), len(result.Failed)+len(result.Succeeded)))
}

// payloadFor rebuilds the full write payload from a stored row, since the
// contract's PATCH replaces every field.
func payloadFor(t ledger.Transaction) api.TransactionPayload {
	return api.TransactionPayload{
		ID:          t.ID,
		Label:       t.Fournisseur,
		Description: t.Description,
		Fournisseur: t.Fournisseur,
		Amount:      t.Amount,
		Date:        t.Date,
		CategoryID:  t.CategoryID,
	}
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
