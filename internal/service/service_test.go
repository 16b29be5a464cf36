package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/model"
	public "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

func ptr[T any](v T) *T { return &v }

// newService builds the service on fresh mocks. Every test asserts that the mocks were called as
// expected and that nothing else was removed.
func newService(t *testing.T) (*ContactService, *mockRepository, *mockFiles) {
	repo := &mockRepository{}
	files := &mockFiles{}
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		files.AssertExpectations(t)
	})
	return New(repo, files, logger.NewNop()), repo, files
}

var errDatabase = errors.New("database is down")

func TestCreate(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("Insert", mock.Anything, &public.Contact{
		Name:   "Erika Mustermann",
		Email:  ptr("erika@example.com"),
		Avatar: ptr("/public/uploads/1-a.png"),
	}).Return(int64(42), nil).Once()

	contact, err := svc.Create(context.Background(), model.CreateContactInput{
		Name:   "Erika Mustermann",
		Email:  ptr("erika@example.com"),
		Avatar: ptr("/public/uploads/1-a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), contact.Id)
	assert.Equal(t, "Erika Mustermann", contact.Name)
	assert.False(t, contact.Favorite)
	assert.Equal(t, "/public/uploads/1-a.png", *contact.Avatar)
}

// TestCreateFailureDiscardsUpload expects the stored avatar to be removed when the insert fails.
func TestCreateFailureDiscardsUpload(t *testing.T) {
	svc, repo, files := newService(t)
	repo.On("Insert", mock.Anything, mock.Anything).Return(int64(0), errDatabase).Once()
	files.On("RemoveAsync", []string{"/public/uploads/1-a.png"}).Once()

	_, err := svc.Create(context.Background(), model.CreateContactInput{
		Name:     "Erika Mustermann",
		Favorite: ptr(true),
		Avatar:   ptr("/public/uploads/1-a.png"),
	})
	assert.ErrorIs(t, err, errDatabase)
}

func TestList(t *testing.T) {
	tests := []struct {
		name          string
		filter        model.ContactFilter
		onlyFavorites bool
		limit         int
		offset        int
	}{
		{"defaults", model.ContactFilter{}, false, 5, 0},
		{"favorite true", model.ContactFilter{Favorite: "true"}, true, 5, 0},
		{"favorite 1", model.ContactFilter{Favorite: "1"}, true, 5, 0},
		{"favorite false", model.ContactFilter{Favorite: "false"}, false, 5, 0},
		{"favorite 0", model.ContactFilter{Favorite: "0"}, false, 5, 0},
		{"paged", model.ContactFilter{Name: "jul", Page: "3", Limit: "10"}, false, 10, 20},
		{"limit clamped", model.ContactFilter{Page: "2", Limit: "500"}, false, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			contacts := []public.Contact{{Id: 1, Name: "Julius"}}
			repo.On("Find", mock.Anything, tt.filter.Name, tt.onlyFavorites, tt.limit, tt.offset).
				Return(contacts, 23, nil).Once()

			result, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, contacts, result.Contacts)
			assert.Equal(t, 23, result.Metadata.TotalRecords)
			assert.Equal(t, tt.limit, result.Metadata.Limit)
			assert.Equal(t, (23+tt.limit-1)/tt.limit, result.Metadata.LastPage)
			assert.Equal(t, 1, result.Metadata.FirstPage)
		})
	}
}

func TestListFailure(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("Find", mock.Anything, "", false, 5, 0).Return(nil, 0, errDatabase).Once()

	_, err := svc.List(context.Background(), model.ContactFilter{})
	assert.ErrorIs(t, err, errDatabase)
}

func TestGetByID(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("FindByID", mock.Anything, int64(29)).Return(&public.Contact{Id: 29, Name: "Erika"}, nil).Once()
	repo.On("FindByID", mock.Anything, int64(30)).Return(nil, ErrContactNotFound).Once()

	contact, err := svc.GetByID(context.Background(), 29)
	require.NoError(t, err)
	assert.Equal(t, "Erika", contact.Name)

	_, err = svc.GetByID(context.Background(), 30)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

// TestUpdateKeepsAvatar updates a contact without a new avatar and expects the existing avatar
// to be preserved and no file to be removed.
func TestUpdateKeepsAvatar(t *testing.T) {
	svc, repo, _ := newService(t)
	in := model.UpdateContactInput{Phone: ptr("+49 1234567890"), Favorite: ptr(true)}
	repo.On("FindByID", mock.Anything, int64(17)).Return(&public.Contact{
		Id:     17,
		Name:   "Rudi Völler",
		Phone:  ptr("0815"),
		Avatar: ptr("/public/uploads/1-a.png"),
	}, nil).Once()
	repo.On("Update", mock.Anything, int64(17), in).Return(nil).Once()

	contact, err := svc.Update(context.Background(), 17, in)
	require.NoError(t, err)
	assert.Equal(t, int64(17), contact.Id)
	assert.Equal(t, "Rudi Völler", contact.Name)
	assert.Equal(t, "+49 1234567890", *contact.Phone)
	assert.True(t, contact.Favorite)
	assert.Equal(t, "/public/uploads/1-a.png", *contact.Avatar)
}

// TestUpdateReplacesAvatar expects the old managed avatar file to be removed.
func TestUpdateReplacesAvatar(t *testing.T) {
	svc, repo, files := newService(t)
	in := model.UpdateContactInput{Avatar: ptr("/public/uploads/2-b.png")}
	repo.On("FindByID", mock.Anything, int64(17)).
		Return(&public.Contact{Id: 17, Name: "Rudi", Avatar: ptr("/public/uploads/1-a.png")}, nil).Once()
	repo.On("Update", mock.Anything, int64(17), in).Return(nil).Once()
	files.On("RemoveAsync", []string{"/public/uploads/1-a.png"}).Once()

	contact, err := svc.Update(context.Background(), 17, in)
	require.NoError(t, err)
	assert.Equal(t, "/public/uploads/2-b.png", *contact.Avatar)
}

// TestUpdateReplacesExternalAvatar expects that an avatar outside the managed directory is
// never removed.
func TestUpdateReplacesExternalAvatar(t *testing.T) {
	svc, repo, _ := newService(t)
	in := model.UpdateContactInput{Avatar: ptr("/public/uploads/2-b.png")}
	repo.On("FindByID", mock.Anything, int64(17)).
		Return(&public.Contact{Id: 17, Name: "Rudi", Avatar: ptr("https://example.com/rudi.png")}, nil).Once()
	repo.On("Update", mock.Anything, int64(17), in).Return(nil).Once()

	contact, err := svc.Update(context.Background(), 17, in)
	require.NoError(t, err)
	assert.Equal(t, "/public/uploads/2-b.png", *contact.Avatar)
}

// TestUpdateNotFound expects ErrContactNotFound and the new upload to be discarded.
func TestUpdateNotFound(t *testing.T) {
	svc, repo, files := newService(t)
	repo.On("FindByID", mock.Anything, int64(9999)).Return(nil, ErrContactNotFound).Once()
	files.On("RemoveAsync", []string{"/public/uploads/2-b.png"}).Once()

	_, err := svc.Update(context.Background(), 9999, model.UpdateContactInput{
		Name:   ptr("Rudi"),
		Avatar: ptr("/public/uploads/2-b.png"),
	})
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestUpdateFailure(t *testing.T) {
	svc, repo, _ := newService(t)
	in := model.UpdateContactInput{Name: ptr("Rudi")}
	repo.On("FindByID", mock.Anything, int64(17)).Return(&public.Contact{Id: 17, Name: "R"}, nil).Once()
	repo.On("Update", mock.Anything, int64(17), in).Return(errDatabase).Once()

	_, err := svc.Update(context.Background(), 17, in)
	assert.ErrorIs(t, err, errDatabase)
}

// TestDelete expects the deleted contact and its avatar file to be removed.
func TestDelete(t *testing.T) {
	svc, repo, files := newService(t)
	repo.On("FindByID", mock.Anything, int64(42)).
		Return(&public.Contact{Id: 42, Name: "Erika", Avatar: ptr("/public/uploads/1-a.png")}, nil).Once()
	repo.On("Delete", mock.Anything, int64(42)).Return(nil).Once()
	files.On("RemoveAsync", []string{"/public/uploads/1-a.png"}).Once()

	contact, err := svc.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), contact.Id)
}

// TestDeleteTwice expects the second delete of the same contact to report not found.
func TestDeleteTwice(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("FindByID", mock.Anything, int64(42)).Return(&public.Contact{Id: 42, Name: "Erika"}, nil).Once()
	repo.On("Delete", mock.Anything, int64(42)).Return(nil).Once()
	repo.On("FindByID", mock.Anything, int64(42)).Return(nil, ErrContactNotFound).Once()

	_, err := svc.Delete(context.Background(), 42)
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

// TestDeleteAll expects the managed avatar files of all removed contacts to be removed.
func TestDeleteAll(t *testing.T) {
	svc, repo, files := newService(t)
	contacts := []public.Contact{
		{Id: 1, Name: "Aaron", Avatar: ptr("/public/uploads/1-a.png")},
		{Id: 2, Name: "Berta"},
		{Id: 3, Name: "Carla", Avatar: ptr("https://example.com/carla.png")},
		{Id: 4, Name: "Dora", Avatar: ptr("/public/uploads/4-d.png")},
	}
	repo.On("FindAll", mock.Anything).Return(contacts, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(int64(4), nil).Once()
	files.On("RemoveAsync", []string{"/public/uploads/1-a.png", "/public/uploads/4-d.png"}).Once()

	removed, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contacts, removed)
}

// TestDeleteAllEmpty expects an empty result, not an error.
func TestDeleteAllEmpty(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("FindAll", mock.Anything).Return([]public.Contact{}, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(int64(0), nil).Once()

	removed, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, removed)
	assert.Empty(t, removed)
}
