package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/model"
	public "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

// mockRepository is a testify mock of Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Insert(ctx context.Context, contact *public.Contact) (int64, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*public.Contact, error) {
	args := m.Called(ctx, id)
	contact, _ := args.Get(0).(*public.Contact)
	return contact, args.Error(1)
}

func (m *mockRepository) Find(ctx context.Context, name string, onlyFavorites bool, limit int, offset int) ([]public.Contact, int, error) {
	args := m.Called(ctx, name, onlyFavorites, limit, offset)
	contacts, _ := args.Get(0).([]public.Contact)
	return contacts, args.Int(1), args.Error(2)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]public.Contact, error) {
	args := m.Called(ctx)
	contacts, _ := args.Get(0).([]public.Contact)
	return contacts, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, in model.UpdateContactInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// mockFiles is a testify mock of AvatarFiles that treats every path below /public/uploads/ as
// managed.
type mockFiles struct {
	mock.Mock
}

func (m *mockFiles) Managed(publicPath string) bool {
	return len(publicPath) > len("/public/uploads/") && publicPath[:len("/public/uploads/")] == "/public/uploads/"
}

func (m *mockFiles) RemoveAsync(publicPaths ...string) {
	m.Called(publicPaths)
}
