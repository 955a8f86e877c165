package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

// AccountRepo is an in-memory stand-in for the postgres account repository.
// It mirrors the repository's error contract: missing rows come back as a
// wrapped account.ErrAccountNotFound.
type AccountRepo struct {
	mu         sync.Mutex
	db         map[account.ID]*account.Account
	fail       error
	failUpdate error
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		db: make(map[account.ID]*account.Account),
	}
}

// FailWith makes every subsequent call return err. Use it to exercise the
// compensation paths.
func (r *AccountRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

// FailUpdateWith makes only UpdateAccount fail, leaving reads working. Use it
// to exercise compensations that run after a successful fetch or upload.
func (r *AccountRepo) FailUpdateWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failUpdate = err
}

func (r *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}

	for _, existing := range r.db {
		if existing.Email() == a.Email() || existing.Username() == a.Username() {
			return account.ErrAccountAlreadyExists
		}
	}

	r.db[a.ID()] = a
	return nil
}

func (r *AccountRepo) DeleteAccount(ctx context.Context, id account.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}

	if _, ok := r.db[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(r.db, id)
	return nil
}

func (r *AccountRepo) GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}

	if a, ok := r.db[id]; ok {
		return a, nil
	}
	return nil, account.ErrAccountNotFound
}

func (r *AccountRepo) GetActiveAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}

	if a, ok := r.db[id]; ok && !a.IsAccountDeleted() {
		return a, nil
	}
	return nil, account.ErrAccountNotFound
}

func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}

	for _, a := range r.db {
		if a.Email() == email && !a.IsAccountDeleted() {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *AccountRepo) GetSignInAccount(ctx context.Context, email string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}

	for _, a := range r.db {
		if a.Email() == email && a.IsEmailVerified() && !a.IsAccountDeleted() {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *AccountRepo) IsAccountTaken(ctx context.Context, email, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return false, r.fail
	}

	for _, a := range r.db {
		if a.Email() == email || a.Username() == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepo) VerifyAccountEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}

	for _, a := range r.db {
		if a.Email() == email && !a.IsEmailVerified() && !a.IsAccountDeleted() {
			return a.VerifyEmail()
		}
	}
	return account.ErrAccountNotFound
}

func (r *AccountRepo) UpdateAccount(
	ctx context.Context,
	id account.ID,
	fn func(context.Context, *account.Account) error,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	if r.failUpdate != nil {
		return r.failUpdate
	}

	a, ok := r.db[id]
	if !ok {
		return account.ErrAccountNotFound
	}

	// Mutate a copy so a failing update leaves the stored account intact,
	// matching the transactional discard of the real repository.
	copied := *a
	if err := fn(ctx, &copied); err != nil {
		return errorx.Wrap(err, "mocks.AccountRepo.UpdateAccount")
	}

	r.db[id] = &copied
	return nil
}

func (r *AccountRepo) SeedAccount(t *testing.T, a *account.Account) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.db[a.ID()]; exists {
		t.Fatalf("account with ID %s already exists", a.ID())
	}
	for _, existing := range r.db {
		if existing.Email() == a.Email() {
			t.Fatalf("account with email %s already exists", a.Email())
		}
	}

	r.db[a.ID()] = a
}

func (r *AccountRepo) Account(t *testing.T, id account.ID) *account.Account {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.db[id]
	if !ok {
		t.Fatalf("account with ID %s not found", id)
	}
	return a
}

func (r *AccountRepo) AssertAccountExists(t *testing.T, id account.ID) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.db[id]; !ok {
		t.Errorf("expected account with ID %s to exist", id)
	}
}

func (r *AccountRepo) AssertAccountNotExists(t *testing.T, id account.ID) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.db[id]; ok {
		t.Errorf("expected account with ID %s to not exist", id)
	}
}

func (r *AccountRepo) AssertAccountByEmailNotExists(t *testing.T, email string) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.db {
		if a.Email() == email {
			t.Errorf("expected no account with email %s", email)
		}
	}
}
