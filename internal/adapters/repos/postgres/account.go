package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/otelx"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/postgres"
)

const insertAccountQuery = `
	INSERT INTO accounts (id, username, email, pass_hash, is_email_verified, is_account_deleted, is_logged_in,
		reset_otp_hash, media_folder_id, profile_image_url, profile_image_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

const selectAccountColumns = `
	id, username, email, pass_hash, is_email_verified, is_account_deleted, is_logged_in,
	reset_otp_hash, media_folder_id, profile_image_url, profile_image_id, created_at, updated_at`

type AccountRepo struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewAccountRepo creates a new instance of AccountRepo.
//
// WARNING: panics if pool is nil
func NewAccountRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *AccountRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &AccountRepo{
		tracer: t,
		logger: l,
		pool:   pool,
	}
}

func (r *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	const op = "postgres.AccountRepo.SaveAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.SaveAccount")
	defer span.End()

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto := DomainToAccountDTO(a)
		res, err := tx.Exec(ctx, insertAccountQuery,
			dto.ID,
			dto.Username,
			dto.Email,
			dto.Passhash,
			dto.IsEmailVerified,
			dto.IsAccountDeleted,
			dto.IsLoggedIn,
			dto.ResetOTPHash,
			dto.MediaFolderID,
			dto.ProfileImageURL,
			dto.ProfileImageID,
			dto.CreatedAt,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert account")
			if isUniqueViolation(err) {
				return errorx.Wrap(account.ErrAccountAlreadyExists, op)
			}
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected while inserting account")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to execute transaction")
		return err
	}

	return nil
}

// DeleteAccount removes the row entirely. It exists for compensations, not
// for the public delete flow, which is a soft delete via UpdateAccount.
func (r *AccountRepo) DeleteAccount(ctx context.Context, id account.ID) error {
	const op = "postgres.AccountRepo.DeleteAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.DeleteAccount")
	defer span.End()

	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, id.String())
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to delete account")
		return errorx.Wrap(err, op)
	}
	if res.RowsAffected() == 0 {
		return errorx.Wrap(account.ErrAccountNotFound, op)
	}

	return nil
}

func (r *AccountRepo) GetAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetAccountByID"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetAccountByID")
	defer span.End()

	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1;`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.Wrap(account.ErrAccountNotFound, op)
		}
		return nil, errorx.Wrap(err, op)
	}

	return a, nil
}

// GetActiveAccountByID resolves an account for authenticated requests;
// soft-deleted accounts are reported as missing.
func (r *AccountRepo) GetActiveAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetActiveAccountByID"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetActiveAccountByID")
	defer span.End()

	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1 AND is_account_deleted = FALSE;`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get active account by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.Wrap(account.ErrAccountNotFound, op)
		}
		return nil, errorx.Wrap(err, op)
	}

	return a, nil
}

func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetAccountByEmail"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetAccountByEmail")
	defer span.End()

	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE email = $1 AND is_account_deleted = FALSE;`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get account by email")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.Wrap(account.ErrAccountNotFound, op)
		}
		return nil, errorx.Wrap(err, op)
	}

	return a, nil
}

// GetSignInAccount resolves an account for the sign-in flow: the email must
// belong to a verified, non-deleted account.
func (r *AccountRepo) GetSignInAccount(ctx context.Context, email string) (*account.Account, error) {
	const op = "postgres.AccountRepo.GetSignInAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.GetSignInAccount")
	defer span.End()

	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE email = $1 AND is_email_verified = TRUE AND is_account_deleted = FALSE;`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get sign-in account")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.Wrap(account.ErrAccountNotFound, op)
		}
		return nil, errorx.Wrap(err, op)
	}

	return a, nil
}

func (r *AccountRepo) IsAccountTaken(ctx context.Context, email, username string) (bool, error) {
	const op = "postgres.AccountRepo.IsAccountTaken"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.IsAccountTaken")
	defer span.End()

	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 OR username = $2);`
	err := r.pool.QueryRow(ctx, query, email, username).Scan(&taken)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to check account existence")
		return false, errorx.Wrap(err, op)
	}

	return taken, nil
}

// VerifyAccountEmail flips the verification flag only if it is still unset,
// so a verification token cannot be consumed twice.
func (r *AccountRepo) VerifyAccountEmail(ctx context.Context, email string) error {
	const op = "postgres.AccountRepo.VerifyAccountEmail"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.VerifyAccountEmail")
	defer span.End()

	query := `
		UPDATE accounts
		SET is_email_verified = TRUE, updated_at = NOW()
		WHERE email = $1 AND is_email_verified = FALSE AND is_account_deleted = FALSE;`

	res, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to verify account email")
		return errorx.Wrap(err, op)
	}
	if res.RowsAffected() == 0 {
		return errorx.Wrap(account.ErrAccountNotFound, op)
	}

	return nil
}

func (r *AccountRepo) UpdateAccount(
	ctx context.Context,
	id account.ID,
	fn func(ctx context.Context, a *account.Account) error,
) error {
	const op = "postgres.AccountRepo.UpdateAccount"
	ctx, span := r.tracer.Start(ctx, "AccountRepo.UpdateAccount")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE;`

		a, err := r.scanAccount(tx.QueryRow(ctx, query, id.String()))
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get account by id")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.Wrap(account.ErrAccountNotFound, op)
			}
			return errorx.Wrap(err, op)
		}

		if fnerr := fn(ctx, a); fnerr != nil {
			otelx.RecordSpanError(span, fnerr, "update function returned an error and cannot continue")
			return errorx.Wrap(fnerr, op)
		}

		dto := DomainToAccountDTO(a)
		updateQuery := `
			UPDATE accounts
			SET username = $2, email = $3, pass_hash = $4,
				is_email_verified = $5, is_account_deleted = $6, is_logged_in = $7,
				reset_otp_hash = $8, media_folder_id = $9,
				profile_image_url = $10, profile_image_id = $11, updated_at = $12
			WHERE id = $1;`

		res, err := tx.Exec(ctx, updateQuery,
			dto.ID,
			dto.Username,
			dto.Email,
			dto.Passhash,
			dto.IsEmailVerified,
			dto.IsAccountDeleted,
			dto.IsLoggedIn,
			dto.ResetOTPHash,
			dto.MediaFolderID,
			dto.ProfileImageURL,
			dto.ProfileImageID,
			dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update account")
			if isUniqueViolation(err) {
				return errorx.Wrap(errorx.NewDuplicateEntry().WithCause(err), op)
			}
			return errorx.Wrap(err, op)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected while updating account")
			return errorx.Wrap(ErrNoRowsAffected, op)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *AccountRepo) scanAccount(row pgx.Row) (*account.Account, error) {
	var dto AccountDTO
	err := row.Scan(
		&dto.ID, &dto.Username, &dto.Email, &dto.Passhash,
		&dto.IsEmailVerified, &dto.IsAccountDeleted, &dto.IsLoggedIn,
		&dto.ResetOTPHash, &dto.MediaFolderID,
		&dto.ProfileImageURL, &dto.ProfileImageID,
		&dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return AccountToDomain(dto), nil
}
