package pgsql

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepositoryFacade {
	return &PgxReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.ReferenceRepositoryFacade = (*PgxReferenceRepository)(nil)
	_ txManager                           = (*PgxReferenceRepository)(nil)
)

const chartColumns = `code, name, account_type, category, is_debit_balance, parent_code`

// ListChartAccounts retrieves the whole chart of accounts ordered by code.
func (r *PgxReferenceRepository) ListChartAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+chartColumns+` FROM chart_of_accounts ORDER BY code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart of accounts", err)
	}
	return collectChart(rows)
}

// FindChartAccountsByCodes retrieves chart accounts for the given codes keyed by code.
func (r *PgxReferenceRepository) FindChartAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.ChartAccount, error) {
	result := make(map[string]domain.ChartAccount, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT `+chartColumns+` FROM chart_of_accounts WHERE code = ANY($1);`, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart accounts by codes", err)
	}
	accounts, err := collectChart(rows)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		result[a.Code] = a
	}
	return result, nil
}

func collectChart(rows pgx.Rows) ([]domain.ChartAccount, error) {
	defer rows.Close()

	accounts := []domain.ChartAccount{}
	for rows.Next() {
		var m models.ChartAccount
		if err := rows.Scan(&m.Code, &m.Name, &m.AccountType, &m.Category, &m.IsDebitBalance, &m.ParentCode); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart account row", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart account rows", err)
	}
	return accounts, nil
}

// ListCategories retrieves transaction categories ordered by id.
func (r *PgxReferenceRepository) ListCategories(ctx context.Context) ([]domain.TransactionCategory, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name, type FROM transaction_categories ORDER BY id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction categories", err)
	}
	defer rows.Close()

	categories := []domain.TransactionCategory{}
	for rows.Next() {
		var m models.TransactionCategory
		if err := rows.Scan(&m.ID, &m.Name, &m.Type); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction category row", err)
		}
		categories = append(categories, mapping.ToDomainTransactionCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction category rows", err)
	}
	return categories, nil
}

// ListPaymentAccounts retrieves payment accounts ordered by name, optionally only the active ones.
func (r *PgxReferenceRepository) ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error) {
	query := `SELECT id, name, type, currency, is_active FROM payment_accounts`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment accounts", err)
	}
	defer rows.Close()

	accounts := []domain.PaymentAccount{}
	for rows.Next() {
		var m models.PaymentAccount
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Currency, &m.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment account row", err)
		}
		accounts = append(accounts, mapping.ToDomainPaymentAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment account rows", err)
	}
	return accounts, nil
}

// ListBusinesses retrieves businesses ordered by name.
func (r *PgxReferenceRepository) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name, color FROM businesses ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query businesses", err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		var m models.Business
		if err := rows.Scan(&m.ID, &m.Name, &m.Color); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan business row", err)
		}
		businesses = append(businesses, mapping.ToDomainBusiness(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating business rows", err)
	}
	return businesses, nil
}

// SeedReferenceData upserts businesses, chart, categories and payment accounts in one DB transaction.
// Chart accounts are inserted in the given order, so parents must precede their children.
func (r *PgxReferenceRepository) SeedReferenceData(ctx context.Context, data domain.ReferenceData) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, b := range data.Businesses {
		batch.Queue(`
			INSERT INTO businesses (id, name, color) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color;
		`, b.ID, b.Name, mapping.NullIfEmpty(b.Color))
	}
	for _, a := range data.Chart {
		m := mapping.ToModelChartAccount(a)
		batch.Queue(`
			INSERT INTO chart_of_accounts (`+chartColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, account_type = EXCLUDED.account_type,
				category = EXCLUDED.category, is_debit_balance = EXCLUDED.is_debit_balance,
				parent_code = EXCLUDED.parent_code;
		`, m.Code, m.Name, m.AccountType, m.Category, m.IsDebitBalance, m.ParentCode)
	}
	for _, c := range data.Categories {
		batch.Queue(`
			INSERT INTO transaction_categories (id, name, type) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type;
		`, c.ID, c.Name, string(c.Type))
	}
	for _, p := range data.PaymentAccounts {
		batch.Queue(`
			INSERT INTO payment_accounts (id, name, type, currency, is_active) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type,
				currency = EXCLUDED.currency, is_active = EXCLUDED.is_active;
		`, p.ID, p.Name, string(p.Type), p.Currency, p.IsActive)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to seed reference data", err)
	}

	return r.Commit(ctx, tx)
}
