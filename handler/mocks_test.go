package handler

import (
	"context"
	"errors"
	"finance-tracker/model"

	"github.com/stretchr/testify/mock"
)

type mockTransactionService struct{ mock.Mock }

func (m *mockTransactionService) Create(ctx context.Context, name string, amount float64) (*model.Transaction, error) {
	args := m.Called(name, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockTransactionService) List(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *mockTransactionService) Get(ctx context.Context, id int) (*model.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockTransactionService) Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error) {
	args := m.Called(id, name, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockTransactionService) Delete(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockAuthenticator struct{ mock.Mock }

func (m *mockAuthenticator) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token    string
	identity string
}

func (s stubVerifier) Verify(token string) (string, error) {
	if token != s.token {
		return "", errors.New("bad token")
	}
	return s.identity, nil
}
