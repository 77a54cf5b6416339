package mocks

import (
	"context"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// SlotStore is a mock for repository.SlotStore.
type SlotStore struct {
	mock.Mock
}

func (m *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// ProjectAPI is a mock for state.API.
type ProjectAPI struct {
	mock.Mock
}

func (m *ProjectAPI) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectAPI) UpdateStatus(ctx context.Context, id string, status project.Status) (*project.Project, error) {
	args := m.Called(ctx, id, status)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectAPI) Update(ctx context.Context, id string, patch project.Patch) (*project.Project, error) {
	args := m.Called(ctx, id, patch)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}
