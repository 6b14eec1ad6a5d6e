// service/transaction_service_test.go
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"finance-tracker/logger"
	"finance-tracker/model"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// MockTransactionRepository is a mock for ITransactionRepository.
type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error) {
	args := m.Called(ctx, id, name, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockCache is a mock for CacheClient.
type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return redis.NewIntResult(int64(len(keys)), args.Error(0))
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(tr *model.Transaction) bool {
			return tr.Name == "Coffee" && tr.Amount == 4.5
		})).Run(func(args mock.Arguments) {
			tr := args.Get(1).(*model.Transaction)
			tr.ID = 1
			tr.Date = time.Now()
		}).Return(nil).Once()

		created, err := NewTransactionService(repo).Create(ctx, "Coffee", 4.5)

		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
		assert.False(t, created.Date.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		dbErr := errors.New("db down")
		repo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		_, err := NewTransactionService(repo).Create(ctx, "Coffee", 4.5)

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestTransactionService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		want := &model.Transaction{ID: 2, Name: "Rent", Amount: -900}
		repo.On("GetByID", ctx, 2).Return(want, nil).Once()

		got, err := NewTransactionService(repo).Get(ctx, 2)

		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("GetByID", ctx, 999999).Return(nil, sql.ErrNoRows).Once()

		_, err := NewTransactionService(repo).Get(ctx, 999999)

		assert.Equal(t, ErrTransactionNotFound, err)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("GetByID", ctx, 3).Return(nil, errors.New("timeout")).Once()

		_, err := NewTransactionService(repo).Get(ctx, 3)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()
	amount := 10.0

	t.Run("partial", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		updated := &model.Transaction{ID: 1, Name: "Coffee", Amount: 10}
		repo.On("Update", ctx, 1, (*string)(nil), &amount).Return(updated, nil).Once()

		got, err := NewTransactionService(repo).Update(ctx, 1, nil, &amount)

		assert.NoError(t, err)
		assert.Equal(t, updated, got)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Update", ctx, 5, (*string)(nil), &amount).Return(nil, sql.ErrNoRows).Once()

		_, err := NewTransactionService(repo).Update(ctx, 5, nil, &amount)

		assert.Equal(t, ErrTransactionNotFound, err)
	})
}

func TestTransactionService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("Delete", ctx, 1).Return(nil).Once()
	repo.On("Delete", ctx, 1).Return(sql.ErrNoRows).Once()
	svc := NewTransactionService(repo)

	assert.NoError(t, svc.Delete(ctx, 1))
	assert.Equal(t, ErrTransactionNotFound, svc.Delete(ctx, 1))
	repo.AssertExpectations(t)
}

func TestTransactionService_ListCaching(t *testing.T) {
	ctx := context.Background()
	stored := []*model.Transaction{{ID: 1, Name: "Coffee", Amount: 4.5, Date: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}}
	encoded, err := json.Marshal(stored)
	require.NoError(t, err)

	t.Run("miss populates cache", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		cache := new(mockCache)
		cache.On("Get", ctx, listCacheKey).Return("", redis.Nil).Once()
		repo.On("List", ctx).Return(stored, nil).Once()
		cache.On("Set", ctx, listCacheKey, encoded, time.Minute).Return(nil).Once()

		got, err := NewTransactionService(repo).WithCache(cache, time.Minute).List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stored, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("hit skips repository", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		cache := new(mockCache)
		cache.On("Get", ctx, listCacheKey).Return(string(encoded), nil).Once()

		got, err := NewTransactionService(repo).WithCache(cache, time.Minute).List(ctx)

		assert.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Coffee", got[0].Name)
		assert.True(t, stored[0].Date.Equal(got[0].Date))
		repo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("cache failure falls back", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		cache := new(mockCache)
		cache.On("Get", ctx, listCacheKey).Return("", errors.New("connection refused")).Once()
		repo.On("List", ctx).Return(stored, nil).Once()
		cache.On("Set", ctx, listCacheKey, mock.Anything, time.Minute).Return(errors.New("connection refused")).Once()

		got, err := NewTransactionService(repo).WithCache(cache, time.Minute).List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stored, got)
	})
}

func TestTransactionService_WritesInvalidateCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	cache := new(mockCache)
	svc := NewTransactionService(repo).WithCache(cache, time.Minute)

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	cache.On("Del", ctx, []string{listCacheKey}).Return(nil).Once()
	_, err := svc.Create(ctx, "Tea", 2)
	assert.NoError(t, err)

	name := "Green tea"
	repo.On("Update", ctx, 4, &name, (*float64)(nil)).Return(&model.Transaction{ID: 4, Name: name}, nil).Once()
	cache.On("Del", ctx, []string{listCacheKey, "transactions:4"}).Return(nil).Twice()
	_, err = svc.Update(ctx, 4, &name, nil)
	assert.NoError(t, err)

	repo.On("Delete", ctx, 4).Return(nil).Once()
	assert.NoError(t, svc.Delete(ctx, 4))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestTransactionService_GetCaching(t *testing.T) {
	ctx := context.Background()
	stored := &model.Transaction{ID: 2, Name: "Rent", Amount: -900, Date: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	encoded, err := json.Marshal(stored)
	require.NoError(t, err)
	key := transactionCacheKey(2)
	require.Equal(t, "transactions:2", key)

	tests := []struct {
		name    string
		setup   func(repo *MockTransactionRepository, cache *mockCache)
		want    *model.Transaction
		wantErr error
		verify  func(t *testing.T, repo *MockTransactionRepository, cache *mockCache)
	}{
		{
			name: "hit skips repository",
			setup: func(repo *MockTransactionRepository, cache *mockCache) {
				cache.On("Get", ctx, key).Return(string(encoded), nil).Once()
			},
			want: stored,
			verify: func(t *testing.T, repo *MockTransactionRepository, cache *mockCache) {
				repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
				cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "miss populates cache with ttl",
			setup: func(repo *MockTransactionRepository, cache *mockCache) {
				cache.On("Get", ctx, key).Return("", redis.Nil).Once()
				repo.On("GetByID", ctx, 2).Return(stored, nil).Once()
				cache.On("Set", ctx, key, encoded, time.Minute).Return(nil).Once()
			},
			want: stored,
		},
		{
			name: "not found is not cached",
			setup: func(repo *MockTransactionRepository, cache *mockCache) {
				cache.On("Get", ctx, key).Return("", redis.Nil).Once()
				repo.On("GetByID", ctx, 2).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: ErrTransactionNotFound,
			verify: func(t *testing.T, repo *MockTransactionRepository, cache *mockCache) {
				cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "undecodable entry falls back",
			setup: func(repo *MockTransactionRepository, cache *mockCache) {
				cache.On("Get", ctx, key).Return("{not json", nil).Once()
				repo.On("GetByID", ctx, 2).Return(stored, nil).Once()
				cache.On("Set", ctx, key, encoded, time.Minute).Return(nil).Once()
			},
			want: stored,
		},
		{
			name: "cache failure falls back",
			setup: func(repo *MockTransactionRepository, cache *mockCache) {
				cache.On("Get", ctx, key).Return("", errors.New("connection refused")).Once()
				repo.On("GetByID", ctx, 2).Return(stored, nil).Once()
				cache.On("Set", ctx, key, mock.Anything, time.Minute).Return(errors.New("connection refused")).Once()
			},
			want: stored,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockTransactionRepository)
			cache := new(mockCache)
			tc.setup(repo, cache)

			got, err := NewTransactionService(repo).WithCache(cache, time.Minute).Get(ctx, 2)

			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want.ID, got.ID)
				assert.Equal(t, tc.want.Name, got.Name)
				assert.Equal(t, tc.want.Amount, got.Amount)
				assert.True(t, tc.want.Date.Equal(got.Date))
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			if tc.verify != nil {
				tc.verify(t, repo, cache)
			}
		})
	}
}

func TestTransactionCache_NilIsNoop(t *testing.T) {
	ctx := context.Background()
	var c *transactionCache

	_, ok := c.get(ctx, 1)
	assert.False(t, ok)
	_, ok = c.list(ctx)
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		c.store(ctx, &model.Transaction{ID: 1})
		c.storeList(ctx, nil)
		c.invalidate(ctx, 1)
	})
}
