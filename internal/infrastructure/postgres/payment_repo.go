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
)

const paymentColumns = `
	id, installment_id, loan_id,
	amount, arrears_paid, ledger_amount, adjustment,
	medium, paid_at, reference, notes,
	tendered, change, reversed, created_at
`

// PaymentRepo implements port.PaymentRepository on PostgreSQL.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// FindByID retrieves a payment record.
func (r *PaymentRepo) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`,
		paymentID,
	)
	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payment{}, port.ErrPaymentNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("find payment: %w", err)
	}
	return payment, nil
}

// ListByInstallment returns all payments applied to an installment, oldest
// first, reversed ones included.
func (r *PaymentRepo) ListByInstallment(ctx context.Context, installmentID string) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE installment_id = $1 ORDER BY paid_at`,
		installmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, payment)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (model.Payment, error) {
	var (
		id, installmentID, loanID                     string
		amount, arrearsPaid, ledgerAmount, adjustment decimal.Decimal
		medium, reference, notes                      string
		paidAt, createdAt                             time.Time
		tendered, change                              decimal.Decimal
		reversed                                      bool
	)
	err := row.Scan(&id, &installmentID, &loanID,
		&amount, &arrearsPaid, &ledgerAmount, &adjustment,
		&medium, &paidAt, &reference, &notes,
		&tendered, &change, &reversed, &createdAt)
	if err != nil {
		return model.Payment{}, err
	}

	paymentMedium, err := valueobject.NewPaymentMedium(medium)
	if err != nil {
		return model.Payment{}, err
	}
	return model.ReconstructPayment(
		id, installmentID, loanID,
		amount, arrearsPaid, ledgerAmount, adjustment,
		paymentMedium, paidAt, reference, notes,
		tendered, change, reversed, createdAt,
	), nil
}
