package repository

import (
	"context"
	"database/sql"
	"finance-tracker/logger"
	"finance-tracker/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for transaction database operations.
// Lookups of a missing id return sql.ErrNoRows.
type ITransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	List(ctx context.Context) ([]*model.Transaction, error)
	GetByID(ctx context.Context, id int) (*model.Transaction, error)
	Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error)
	Delete(ctx context.Context, id int) error
}

const (
	insertTransactionQuery = `INSERT INTO transactions (name, amount) VALUES ($1, $2) RETURNING id, date`
	listTransactionsQuery  = `SELECT id, name, amount, date FROM transactions ORDER BY id`
	getTransactionQuery    = `SELECT id, name, amount, date FROM transactions WHERE id = $1`
	// COALESCE keeps the stored value for fields passed as NULL.
	updateTransactionQuery = `UPDATE transactions SET name = COALESCE($1, name), amount = COALESCE($2, amount) WHERE id = $3 RETURNING id, name, amount, date`
	deleteTransactionQuery = `DELETE FROM transactions WHERE id = $1`
)

// TransactionRepository implements ITransactionRepository on Postgres.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// Create inserts the transaction and fills in its ID and Date.
func (r *TransactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":   transaction.Name,
		"amount": transaction.Amount,
	})
	log.Info("Executing query to create a new transaction")

	err := r.DB.QueryRowContext(ctx, insertTransactionQuery, transaction.Name, transaction.Amount).
		Scan(&transaction.ID, &transaction.Date)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// List returns every transaction in insertion order. The result is never nil.
func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	logger.Log.Info("Executing query to list transactions")

	rows, err := r.DB.QueryContext(ctx, listTransactionsQuery)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list transactions query")
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Date); err != nil {
			logger.Log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to iterate transaction rows")
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int) (*model.Transaction, error) {
	log := logger.Log.WithField("transaction_id", id)
	log.Info("Executing query to get transaction by ID")

	t := &model.Transaction{}
	err := r.DB.QueryRowContext(ctx, getTransactionQuery, id).Scan(&t.ID, &t.Name, &t.Amount, &t.Date)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get transaction query")
		}
		return nil, err
	}
	return t, nil
}

// Update overwrites the non-nil fields and returns the stored row.
func (r *TransactionRepository) Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"transaction_id": id,
		"name_set":       name != nil,
		"amount_set":     amount != nil,
	})
	log.Info("Executing query to update transaction")

	t := &model.Transaction{}
	err := r.DB.QueryRowContext(ctx, updateTransactionQuery, name, amount, id).Scan(&t.ID, &t.Name, &t.Amount, &t.Date)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update transaction query")
		}
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log.WithField("transaction_id", id)
	log.Info("Executing query to delete transaction")

	res, err := r.DB.ExecContext(ctx, deleteTransactionQuery, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete transaction query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.WithError(err).Error("Failed to read affected rows")
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
