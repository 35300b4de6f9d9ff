package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/notify"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockPettyCashReader struct {
	mock.Mock
}

func (m *mockPettyCashReader) List(ctx context.Context, filter *pettycash.Filter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockPettyCashReader) ListByCreator(ctx context.Context, createdBy string) ([]ledger.Transaction, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event notify.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
