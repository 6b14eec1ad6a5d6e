package service

import (
	"context"
	"database/sql"
	"errors"
	"finance-tracker/logger"
	"finance-tracker/model"
	"finance-tracker/repository"
	"fmt"
	"time"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionService holds the transaction use cases. The cache is optional;
// without one every read goes to the repository.
type TransactionService struct {
	repo  repository.ITransactionRepository
	cache *transactionCache
}

func NewTransactionService(repo repository.ITransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// WithCache enables cache-aside reads for List and Get.
func (s *TransactionService) WithCache(client CacheClient, ttl time.Duration) *TransactionService {
	s.cache = &transactionCache{client: client, ttl: ttl}
	return s
}

func (s *TransactionService) Create(ctx context.Context, name string, amount float64) (*model.Transaction, error) {
	transaction := &model.Transaction{Name: name, Amount: amount}
	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("could not create transaction: %w", err)
	}

	s.cache.invalidate(ctx)
	logger.Log.WithField("transaction_id", transaction.ID).Info("Transaction created")
	return transaction, nil
}

func (s *TransactionService) List(ctx context.Context) ([]*model.Transaction, error) {
	if transactions, ok := s.cache.list(ctx); ok {
		return transactions, nil
	}

	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}

	s.cache.storeList(ctx, transactions)
	return transactions, nil
}

func (s *TransactionService) Get(ctx context.Context, id int) (*model.Transaction, error) {
	if transaction, ok := s.cache.get(ctx, id); ok {
		return transaction, nil
	}

	transaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("could not get transaction: %w", err)
	}

	s.cache.store(ctx, transaction)
	return transaction, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (s *TransactionService) Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error) {
	transaction, err := s.repo.Update(ctx, id, name, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("could not update transaction: %w", err)
	}

	s.cache.invalidate(ctx, id)
	logger.Log.WithField("transaction_id", id).Info("Transaction updated")
	return transaction, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("could not delete transaction: %w", err)
	}

	s.cache.invalidate(ctx, id)
	logger.Log.WithField("transaction_id", id).Info("Transaction deleted")
	return nil
}
