// Package screen implements the treasury screen's client state: the
// transaction and category stores, filtering, selection, editors, and toast
// notifications. It talks to the backend only through the treasury API client
// and mirrors server state by merging returned entities into its caches.
package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tresoria/internal/api"
	"tresoria/internal/config"
	apperrors "tresoria/internal/errors"
	"tresoria/internal/ledger"
)

// TreasuryClient defines the treasury API operations the screen needs.
type TreasuryClient interface {
	ListTransactions(ctx context.Context) ([]api.Transaction, error)
	CreateTransaction(ctx context.Context, p api.TransactionPayload) (*api.Transaction, error)
	UpdateTransaction(ctx context.Context, p api.TransactionPayload) (*api.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]api.Category, error)
	CreateCategory(ctx context.Context, name string) (*api.Category, error)
	UpdateCategory(ctx context.Context, id, name, color string) (*api.Category, error)
}

// Options configures screen behavior.
type Options struct {
	ToastDuration time.Duration
	BulkMode      config.BulkMode
}

// Screen holds all client-side state of the treasury view. Every method is
// safe for concurrent use; state changes happen under one mutex, the Go
// rendition of the original single-threaded event loop.
type Screen struct {
	mu     sync.Mutex
	client TreasuryClient
	log    *zap.SugaredLogger

	bulkMode config.BulkMode
	toast    *Toast

	transactions []ledger.Transaction
	categories   []ledger.Category
	criteria     ledger.Criteria
	selection    map[string]struct{}
	loading      int
	editor       *Editor

	// pendingNames holds legacy name-only category references that arrived
	// before the category store was populated, keyed by transaction id. The
	// two initial fetches are independent, so either may land first.
	pendingNames map[string]string
}

// New creates a screen bound to a treasury API client.
func New(client TreasuryClient, opts Options, log *zap.SugaredLogger) *Screen {
	return &Screen{
		client:       client,
		log:          log,
		bulkMode:     opts.BulkMode,
		toast:        NewToast(opts.ToastDuration),
		selection:    make(map[string]struct{}),
		pendingNames: make(map[string]string),
	}
}

// Toast exposes the notification slot for rendering.
func (s *Screen) Toast() *Toast { return s.toast }

// Loading reports whether an initial fetch is still in flight.
func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// Load fetches transactions and categories independently, mirroring the two
// independent fetches issued on mount. Each failure surfaces as an error
// toast; the other fetch still populates its store.
func (s *Screen) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = 2
	s.mu.Unlock()

	var wg sync.WaitGroup
	var txErr, catErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		catErr = s.loadCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		txErr = s.loadTransactions(ctx)
	}()
	wg.Wait()

	if catErr != nil {
		return catErr
	}
	return txErr
}

// Refresh re-fetches the full transaction list, replacing the store.
func (s *Screen) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	return s.loadTransactions(ctx)
}

func (s *Screen) loadTransactions(ctx context.Context) error {
	fetched, err := s.client.ListTransactions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.log.Errorw("loading transactions failed", "error", err)
		s.toast.Show(NoticeError, "Impossible de charger les transactions")
		return err
	}

	s.transactions = make([]ledger.Transaction, 0, len(fetched))
	s.pendingNames = make(map[string]string)
	for _, t := range fetched {
		s.transactions = append(s.transactions, s.toLedgerLocked(t))
	}
	s.resolvePendingLocked()
	return nil
}

func (s *Screen) loadCategories(ctx context.Context) error {
	fetched, err := s.client.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.log.Errorw("loading categories failed", "error", err)
		s.toast.Show(NoticeError, "Impossible de charger les catégories")
		return err
	}

	s.categories = make([]ledger.Category, 0, len(fetched))
	for _, c := range fetched {
		s.categories = append(s.categories, ledger.Category(c))
	}
	s.resolvePendingLocked()
	return nil
}

// resolvePendingLocked retries the name-only category references recorded
// before the category store was available. Callers hold s.mu.
func (s *Screen) resolvePendingLocked() {
	if len(s.pendingNames) == 0 || len(s.categories) == 0 {
		return
	}
	for i := range s.transactions {
		name, ok := s.pendingNames[s.transactions[i].ID]
		if !ok {
			continue
		}
		if id := s.resolveCategoryLocked(name); id != nil {
			s.transactions[i].CategoryID = id
			delete(s.pendingNames, s.transactions[i].ID)
		}
	}
}

// Transactions returns a copy of the full transaction store.
func (s *Screen) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Filtered returns the transactions matching the current criteria, in store order.
func (s *Screen) Filtered() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.Filter(s.transactions, s.criteria)
}

// Metrics computes the revenue, expense, and balance cards over the
// currently filtered view.
func (s *Screen) Metrics() ledger.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.Totals(ledger.Filter(s.transactions, s.criteria))
}

// Criteria returns the active filter criteria.
func (s *Screen) Criteria() ledger.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the active filter criteria. The selection is not
// pruned; ids no longer visible simply stop matching bulk operations.
func (s *Screen) SetCriteria(c ledger.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// Categories returns a copy of the category store.
func (s *Screen) Categories() []ledger.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryName resolves a category id to its display name. Unknown or nil ids
// render as uncategorized (empty string).
func (s *Screen) CategoryName(id *string) string {
	if id == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categoryByIDLocked(*id); ok {
		return c.Name
	}
	return ""
}

// AddCategory creates a category through the API and appends it to the store.
// Server-reported validation errors (duplicate names) are returned for inline
// display; transport failures additionally raise an error toast.
func (s *Screen) AddCategory(ctx context.Context, name string) (*ledger.Category, error) {
	created, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		s.noteFailure("creating category", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	category := ledger.Category(*created)
	s.categories = append(s.categories, category)
	return &category, nil
}

// EditCategory updates a category's name and color through the API and
// replaces it in the store by id.
func (s *Screen) EditCategory(ctx context.Context, id, name, color string) error {
	updated, err := s.client.UpdateCategory(ctx, id, name, color)
	if err != nil {
		s.noteFailure("updating category", err)
		return err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == updated.ID {
			s.categories[i] = ledger.Category(*updated)
			break
		}
	}
	s.mu.Unlock()

	s.toast.Show(NoticeSuccess, "Catégorie mise à jour")
	return nil
}

// categoryByIDLocked looks a category up by id. Callers hold s.mu.
func (s *Screen) categoryByIDLocked(id string) (ledger.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return ledger.Category{}, false
}

// resolveCategoryLocked resolves a typed category name by exact match.
// Callers hold s.mu. An unresolved name yields nil: the transaction is saved
// uncategorized rather than fabricating a category.
func (s *Screen) resolveCategoryLocked(name string) *string {
	if name == "" {
		return nil
	}
	for _, c := range s.categories {
		if c.Name == name {
			id := c.ID
			return &id
		}
	}
	return nil
}

// toLedgerLocked normalizes an API transaction into the store shape. When the
// wire carried only a legacy category name, it is resolved against the
// category store once, at ingest. Callers hold s.mu.
func (s *Screen) toLedgerLocked(t api.Transaction) ledger.Transaction {
	out := ledger.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Fournisseur: t.Fournisseur,
		Description: t.Description,
		Amount:      t.Amount,
	}
	switch {
	case t.CategoryID != "":
		id := t.CategoryID
		out.CategoryID = &id
	case t.CategoryName != "":
		out.CategoryID = s.resolveCategoryLocked(t.CategoryName)
		if out.CategoryID == nil {
			s.pendingNames[t.ID] = t.CategoryName
		}
	}
	return out
}

// upsertLocked merges a returned entity into the store by id, replacing the
// existing row or prepending a new one. Callers hold s.mu.
func (s *Screen) upsertLocked(t ledger.Transaction) {
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return
		}
	}
	s.transactions = append([]ledger.Transaction{t}, s.transactions...)
}

// noteFailure logs an API failure and raises an error toast for transport
// errors. Server-reported validation errors are left to the caller, which
// shows them inline.
func (s *Screen) noteFailure(operation string, err error) {
	s.log.Errorw(operation+" failed", "error", err)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrRejected.Code {
		return
	}
	s.toast.Show(NoticeError, "La requête vers l'API a échoué")
}
