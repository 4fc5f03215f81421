package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	"github.com/finledger/bank_recon_app/internal/models"
	"github.com/finledger/bank_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankStatementRepository struct {
	BaseRepository
}

func newPgxBankStatementRepository(pool *pgxpool.Pool) portsrepo.BankStatementRepositoryFacade {
	return &PgxBankStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankStatementRepositoryFacade = (*PgxBankStatementRepository)(nil)

// SaveStatement persists a statement and its transactions within a DB transaction.
func (r *PgxBankStatementRepository) SaveStatement(ctx context.Context, statement domain.BankStatement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelStatement := mapping.ToModelBankStatement(statement)
	statementQuery := `
		INSERT INTO bank_statements (statement_id, company_id, bank_account_id, period_start, period_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, statementQuery,
		modelStatement.StatementID,
		modelStatement.CompanyID,
		modelStatement.BankAccountID,
		modelStatement.PeriodStart,
		modelStatement.PeriodEnd,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank statement "+modelStatement.StatementID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO bank_transactions (
			bank_transaction_id, statement_id, transaction_date, description,
			debit, credit, balance, reference, type, category
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, txn := range statement.Transactions {
		modelTxn := mapping.ToModelBankTransaction(statement.StatementID, txn)
		batch.Queue(txnQuery,
			modelTxn.BankTransactionID,
			modelTxn.StatementID,
			modelTxn.TransactionDate,
			modelTxn.Description,
			modelTxn.Debit,
			modelTxn.Credit,
			modelTxn.Balance,
			modelTxn.Reference,
			modelTxn.Type,
			modelTxn.Category,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transactions for bank statement "+modelStatement.StatementID, err)
	}

	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a statement with its transactions.
func (r *PgxBankStatementRepository) FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.BankStatement, error) {
	query := `
		SELECT statement_id, company_id, bank_account_id, period_start, period_end
		FROM bank_statements
		WHERE company_id = $1 AND statement_id = $2;
	`
	var modelStatement models.BankStatement
	err := r.Pool.QueryRow(ctx, query, companyID, statementID).Scan(
		&modelStatement.StatementID,
		&modelStatement.CompanyID,
		&modelStatement.BankAccountID,
		&modelStatement.PeriodStart,
		&modelStatement.PeriodEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank statement by ID "+statementID, err)
	}

	statement := mapping.ToDomainBankStatement(modelStatement)

	txnQuery := `
		SELECT bank_transaction_id, statement_id, transaction_date, description,
		       debit, credit, balance, reference, type, category
		FROM bank_transactions
		WHERE statement_id = $1
		ORDER BY transaction_date, bank_transaction_id;
	`
	transactions, err := r.queryBankTransactions(ctx, txnQuery, statementID)
	if err != nil {
		return nil, err
	}
	statement.Transactions = transactions

	return &statement, nil
}

// ListBankTransactions retrieves the imported transactions of one bank account
// within a date range, ordered by date ascending.
func (r *PgxBankStatementRepository) ListBankTransactions(ctx context.Context, companyID, bankAccountID string, from, to time.Time) ([]domain.BankTransaction, error) {
	query := `
		SELECT t.bank_transaction_id, t.statement_id, t.transaction_date, t.description,
		       t.debit, t.credit, t.balance, t.reference, t.type, t.category
		FROM bank_transactions t
		JOIN bank_statements s ON s.statement_id = t.statement_id
		WHERE s.company_id = $1 AND s.bank_account_id = $2
		  AND t.transaction_date >= $3 AND t.transaction_date <= $4
		ORDER BY t.transaction_date, t.bank_transaction_id;
	`
	return r.queryBankTransactions(ctx, query, companyID, bankAccountID, from, to)
}

func (r *PgxBankStatementRepository) queryBankTransactions(ctx context.Context, query string, args ...any) ([]domain.BankTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.BankTransaction, 0)
	for rows.Next() {
		var modelTxn models.BankTransaction
		var debit, credit, balance decimal.NullDecimal
		if err := rows.Scan(
			&modelTxn.BankTransactionID,
			&modelTxn.StatementID,
			&modelTxn.TransactionDate,
			&modelTxn.Description,
			&debit,
			&credit,
			&balance,
			&modelTxn.Reference,
			&modelTxn.Type,
			&modelTxn.Category,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		if debit.Valid {
			modelTxn.Debit = &debit.Decimal
		}
		if credit.Valid {
			modelTxn.Credit = &credit.Decimal
		}
		if balance.Valid {
			modelTxn.Balance = &balance.Decimal
		}
		modelTxns = append(modelTxns, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}

	return mapping.ToDomainBankTransactionSlice(modelTxns), nil
}
