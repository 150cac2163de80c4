package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/account-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, public_id, display_name, pending_email, confirmed_email, phone,
	email_confirmation_token, email_confirmation_requested_at, email_confirmation_completed_at,
	security_operation_performed_at, password_hash, created_at, updated_at`

// constraintFields maps unique constraint names to account field names.
var constraintFields = map[string]string{
	"accounts_public_id_key":                "publicId",
	"accounts_display_name_key":             "displayName",
	"accounts_pending_email_key":            "email",
	"accounts_confirmed_email_key":          "email",
	"accounts_phone_key":                    "phone",
	"accounts_email_confirmation_token_key": "emailConfirmationToken",
}

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByPendingEmail(ctx context.Context, email string) (model.Account, error) {
	return r.getBy(ctx, "pending_email", email)
}

func (r *AccountRepository) GetByDisplayName(ctx context.Context, displayName string) (model.Account, error) {
	return r.getBy(ctx, "display_name", displayName)
}

func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (model.Account, error) {
	return r.getBy(ctx, "phone", phone)
}

func (r *AccountRepository) GetByConfirmedEmail(ctx context.Context, email string) (model.Account, error) {
	return r.getBy(ctx, "confirmed_email", email)
}

func (r *AccountRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (model.Account, error) {
	return r.getBy(ctx, "public_id", publicID)
}

// getBy loads one account. column is always one of the constants above.
func (r *AccountRepository) getBy(ctx context.Context, column string, value any) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by %s: %w", column, err)
	}

	return account, nil
}

func (r *AccountRepository) Save(ctx context.Context, account *model.Account) error {
	if account.ID == 0 {
		return r.insert(ctx, account)
	}
	return r.update(ctx, account)
}

func (r *AccountRepository) insert(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (public_id, display_name, pending_email, confirmed_email, phone,
			  email_confirmation_token, email_confirmation_requested_at, email_confirmation_completed_at,
			  security_operation_performed_at, password_hash)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		account.PublicID, account.DisplayName, account.PendingEmail, account.ConfirmedEmail, account.Phone,
		account.EmailConfirmationToken, account.EmailConfirmationRequestedAt, account.EmailConfirmationCompletedAt,
		account.SecurityOperationPerformedAt, account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *AccountRepository) update(ctx context.Context, account *model.Account) error {
	query := `UPDATE accounts SET display_name = $2, pending_email = $3, confirmed_email = $4, phone = $5,
			  email_confirmation_token = $6, email_confirmation_requested_at = $7,
			  email_confirmation_completed_at = $8, security_operation_performed_at = $9,
			  password_hash = $10, updated_at = NOW()
			  WHERE id = $1
			  RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		account.ID, account.DisplayName, account.PendingEmail, account.ConfirmedEmail, account.Phone,
		account.EmailConfirmationToken, account.EmailConfirmationRequestedAt, account.EmailConfirmationCompletedAt,
		account.SecurityOperationPerformedAt, account.PasswordHash,
	).Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

func (r *AccountRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.PublicID, &a.DisplayName, &a.PendingEmail, &a.ConfirmedEmail, &a.Phone,
		&a.EmailConfirmationToken, &a.EmailConfirmationRequestedAt, &a.EmailConfirmationCompletedAt,
		&a.SecurityOperationPerformedAt, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func asConflict(err error) *model.ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		field = "unknown"
	}
	return &model.ConflictError{Field: field, Constraint: pgErr.ConstraintName}
}
