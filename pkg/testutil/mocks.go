package testutil

import (
	"context"

	"github.com/arthur-debert/tuckfix/pkg/backup"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockTool is a testify mock of types.Tool.
type MockTool struct {
	mock.Mock
}

func (m *MockTool) Add(ctx context.Context, group string, excludes []string) error {
	args := m.Called(ctx, group, excludes)
	return args.Error(0)
}

func (m *MockTool) Status(ctx context.Context, group string) (*types.StatusSnapshot, error) {
	args := m.Called(ctx, group)
	snap, _ := args.Get(0).(*types.StatusSnapshot)
	return snap, args.Error(1)
}

// MockRelocator is a testify mock of the resolver's relocation capability.
type MockRelocator struct {
	mock.Mock
}

func (m *MockRelocator) RelocateFolder(path, suffix string) (string, error) {
	args := m.Called(path, suffix)
	return args.String(0), args.Error(1)
}

func (m *MockRelocator) RelocateFile(entry types.ConflictEntry, suffix string) (backup.Relocation, error) {
	args := m.Called(entry, suffix)
	rel, _ := args.Get(0).(backup.Relocation)
	return rel, args.Error(1)
}
