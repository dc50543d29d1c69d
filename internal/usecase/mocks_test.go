package usecase

import (
	"context"
	"sync"
	"time"

	"seller-marketplace/internal/domain"
	"seller-marketplace/internal/domain/model"
	"seller-marketplace/internal/domain/ports/adapter"
	"seller-marketplace/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockTxManager serializes transactions behind one mutex, which emulates
// the row lock competing claims would hit in Postgres.
type mockTxManager struct {
	mu sync.Mutex
}

func newMockTxManager() *mockTxManager { return &mockTxManager{} }

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}

// memCodeRepo is a small in-memory registry used by unit tests.
type memCodeRepo struct {
	mu      sync.RWMutex
	byHash  map[string]*model.SellerCode
	saveErr error // used by tests to simulate save failures
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{byHash: make(map[string]*model.SellerCode)}
}

func (m *memCodeRepo) Save(ctx context.Context, _ repository.Tx, code *model.SellerCode) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byHash[code.CodeHash]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *code
	m.byHash[code.CodeHash] = &cp
	return nil
}

func (m *memCodeRepo) FindByHash(ctx context.Context, _ repository.Tx, codeHash string) (*model.SellerCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byHash[codeHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCodeRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.SellerCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.byHash {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCodeRepo) UpdateStatus(ctx context.Context, _ repository.Tx, code *model.SellerCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byHash[code.CodeHash]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = code.Status
	stored.ClaimedByProfileID = code.ClaimedByProfileID
	stored.ClaimedAt = code.ClaimedAt
	stored.RevokedAt = code.RevokedAt
	return nil
}

func (m *memCodeRepo) List(ctx context.Context, _ repository.Tx, offset, limit int) ([]*model.SellerCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.SellerCode
	for _, c := range m.byHash {
		cp := *c
		out = append(out, &cp)
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *memCodeRepo) Count(ctx context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byHash), nil
}

// memProfileRepo stores profiles in memory.
type memProfileRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *memProfileRepo) Save(ctx context.Context, _ repository.Tx, p *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memProfileRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// memListingRepo stores listings in memory.
type memListingRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{store: make(map[string]*model.Listing)}
}

func (m *memListingRepo) Save(ctx context.Context, _ repository.Tx, l *model.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.store[l.ID] = &cp
	return nil
}

func (m *memListingRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memListingRepo) FindBySeller(ctx context.Context, _ repository.Tx, sellerID string) ([]*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Listing
	for _, l := range m.store {
		if l.SellerID == sellerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memListingRepo) ListActive(ctx context.Context, _ repository.Tx, offset, limit int) ([]*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Listing
	for _, l := range m.store {
		if l.Active {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memReportRepo stores reports in memory.
type memReportRepo struct {
	mu    sync.RWMutex
	store []*model.Report
}

func newMemReportRepo() *memReportRepo { return &memReportRepo{} }

func (m *memReportRepo) Save(ctx context.Context, _ repository.Tx, r *model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store = append(m.store, &cp)
	return nil
}

func (m *memReportRepo) ListRecent(ctx context.Context, _ repository.Tx, offset, limit int) ([]*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Report, len(m.store))
	copy(out, m.store)
	return out, nil
}

func (m *memReportRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// memLimiter is a deterministic fixed-window counter for tests; windows
// advance only when the test resets them.
type memLimiter struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMemLimiter() *memLimiter { return &memLimiter{counts: make(map[string]int)} }

func (m *memLimiter) Allow(ctx context.Context, key string, limit int, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key] <= limit, nil
}

func (m *memLimiter) resetWindow(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, key)
}

// stubSessionIssuer mints predictable sessions.
type stubSessionIssuer struct {
	err error
}

var _ adapter.SessionIssuer = (*stubSessionIssuer)(nil)

func (s *stubSessionIssuer) IssueSellerSession(ctx context.Context, codeHash, profileID string) (*adapter.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	handle := codeHash + "@seller.local"
	return &adapter.Session{
		Handle: handle,
		Token:  "token-" + profileID,
		URL:    "https://market.test/auth/session?token=token-" + profileID,
	}, nil
}
