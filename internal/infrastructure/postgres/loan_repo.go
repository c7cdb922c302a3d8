package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
	pgpkg "github.com/UPAO-INSO/caso-agile-sub000/pkg/postgres"
)

// LoanRepo implements port.LoanRepository on PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists the loan and its schedule, guarded by the aggregate version.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return saveLoanTx(ctx, tx, loan)
	})
}

// SaveWithPayment persists the loan and inserts the payment in one
// transaction.
func (r *LoanRepo) SaveWithPayment(ctx context.Context, loan model.Loan, payment model.Payment) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveLoanTx(ctx, tx, loan); err != nil {
			return err
		}
		return insertPaymentTx(ctx, tx, payment)
	})
}

// SaveWithPaymentReversal persists the restored loan and flags the payment as
// reversed in one transaction.
func (r *LoanRepo) SaveWithPaymentReversal(ctx context.Context, loan model.Loan, payment model.Payment) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveLoanTx(ctx, tx, loan); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE payments SET reversed = TRUE WHERE id = $1 AND reversed = FALSE`,
			payment.ID(),
		)
		if err != nil {
			return fmt.Errorf("mark payment reversed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return port.ErrPaymentNotFound
		}
		return nil
	})
}

func saveLoanTx(ctx context.Context, tx pgx.Tx, loan model.Loan) error {
	loanQuery := `
		INSERT INTO loans (
			id, client_id, principal, annual_rate_pct, term_months,
			originated_at, status, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			version    = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		WHERE loans.version = EXCLUDED.version - 1
	`
	tag, err := tx.Exec(ctx, loanQuery,
		loan.ID(), loan.ClientID(), loan.Principal(), loan.AnnualRatePct(), loan.TermMonths(),
		loan.OriginatedAt(), loan.Status().String(), loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}

	for _, inst := range loan.Installments() {
		instQuery := `
			INSERT INTO installments (
				id, loan_id, number, due_date,
				total, principal_part, interest_part, principal_after,
				outstanding, paid_total, arrears_unpaid, arrears_assessed,
				final_adjusting, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (id) DO UPDATE SET
				outstanding      = EXCLUDED.outstanding,
				paid_total       = EXCLUDED.paid_total,
				arrears_unpaid   = EXCLUDED.arrears_unpaid,
				arrears_assessed = EXCLUDED.arrears_assessed,
				status           = EXCLUDED.status
		`
		_, err := tx.Exec(ctx, instQuery,
			inst.ID(), inst.LoanID(), inst.Number(), inst.DueDate(),
			inst.Total(), inst.PrincipalPart(), inst.InterestPart(), inst.PrincipalAfter(),
			inst.Outstanding(), inst.PaidTotal(), inst.ArrearsUnpaid(), inst.ArrearsAssessed(),
			inst.FinalAdjusting(), inst.Status().String(),
		)
		if err != nil {
			return fmt.Errorf("save installment %d: %w", inst.Number(), err)
		}
	}
	return nil
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, payment model.Payment) error {
	query := `
		INSERT INTO payments (
			id, installment_id, loan_id,
			amount, arrears_paid, ledger_amount, adjustment,
			medium, paid_at, reference, notes,
			tendered, change, reversed, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err := tx.Exec(ctx, query,
		payment.ID(), payment.InstallmentID(), payment.LoanID(),
		payment.Amount(), payment.ArrearsPaid(), payment.LedgerAmount(), payment.Adjustment(),
		payment.Medium().String(), payment.PaidAt(), payment.Reference(), payment.Notes(),
		payment.Tendered(), payment.Change(), payment.Reversed(), payment.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// FindByID retrieves a loan with its full schedule.
func (r *LoanRepo) FindByID(ctx context.Context, loanID string) (model.Loan, error) {
	query := `
		SELECT id, client_id, principal, annual_rate_pct, term_months,
		       originated_at, status, version, created_at, updated_at
		FROM loans
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, loanID)

	var (
		id, clientID, status     string
		principal, annualRatePct decimal.Decimal
		termMonths, version      int
		originatedAt             time.Time
		createdAt, updatedAt     time.Time
	)
	err := row.Scan(&id, &clientID, &principal, &annualRatePct, &termMonths,
		&originatedAt, &status, &version, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, port.ErrLoanNotFound
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("find loan: %w", err)
	}

	loanStatus, err := valueobject.NewLoanStatus(status)
	if err != nil {
		return model.Loan{}, fmt.Errorf("find loan: %w", err)
	}
	installments, err := loadInstallments(ctx, r.pool, id)
	if err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		id, clientID, principal, annualRatePct, termMonths,
		originatedAt, loanStatus, installments, version, createdAt, updatedAt,
	), nil
}

// ListActiveIDs returns the IDs of all active loans, oldest first.
func (r *LoanRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM loans WHERE status = 'ACTIVE' ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan loan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListOverdueInstallments returns unsettled installments of active loans past
// their due date as of asOf.
func (r *LoanRepo) ListOverdueInstallments(ctx context.Context, asOf time.Time) ([]model.Installment, error) {
	query := `
		SELECT i.id, i.loan_id, i.number, i.due_date,
		       i.total, i.principal_part, i.interest_part, i.principal_after,
		       i.outstanding, i.paid_total, i.arrears_unpaid, i.arrears_assessed,
		       i.final_adjusting, i.status
		FROM installments i
		JOIN loans l ON l.id = i.loan_id
		WHERE l.status = 'ACTIVE'
		  AND i.outstanding > 0
		  AND i.due_date < $1
		ORDER BY i.due_date, i.number
	`
	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("list overdue installments: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// loadInstallments works against either the pool or an open transaction.
func loadInstallments(ctx context.Context, q pgpkg.Querier, loanID string) ([]model.Installment, error) {
	query := `
		SELECT id, loan_id, number, due_date,
		       total, principal_part, interest_part, principal_after,
		       outstanding, paid_total, arrears_unpaid, arrears_assessed,
		       final_adjusting, status
		FROM installments
		WHERE loan_id = $1
		ORDER BY number
	`
	rows, err := q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("load installments: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

func scanInstallments(rows pgx.Rows) ([]model.Installment, error) {
	var out []model.Installment
	for rows.Next() {
		var (
			id, loanID, status                     string
			number                                 int
			dueDate                                time.Time
			total, principalPart, interestPart     decimal.Decimal
			principalAfter, outstanding, paidTotal decimal.Decimal
			arrearsUnpaid, arrearsAssessed         decimal.Decimal
			finalAdjusting                         bool
		)
		err := rows.Scan(&id, &loanID, &number, &dueDate,
			&total, &principalPart, &interestPart, &principalAfter,
			&outstanding, &paidTotal, &arrearsUnpaid, &arrearsAssessed,
			&finalAdjusting, &status)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}

		instStatus, err := valueobject.NewInstallmentStatus(status)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		out = append(out, model.ReconstructInstallment(
			id, loanID, number, dueDate,
			total, principalPart, interestPart, principalAfter,
			outstanding, paidTotal, arrearsUnpaid, arrearsAssessed,
			finalAdjusting, instStatus,
		))
	}
	return out, rows.Err()
}
