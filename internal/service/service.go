// Package service implements the contact book operations on top of the row store and the
// managed upload directory.
//
// Multi-statement sequences (read then update, read then delete then remove files) are not
// wrapped in a transaction. A crash between the steps can leave a stale avatar file behind.
package service

import (
	"context"
	"errors"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/model"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/paginator"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/repository"
	public "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

// ErrContactNotFound is returned when no contact has the requested id.
var ErrContactNotFound = repository.ErrNotFound

// Repository is the row store the service works on.
type Repository interface {
	Insert(ctx context.Context, contact *public.Contact) (int64, error)
	FindByID(ctx context.Context, id int64) (*public.Contact, error)
	Find(ctx context.Context, name string, onlyFavorites bool, limit int, offset int) ([]public.Contact, int, error)
	FindAll(ctx context.Context) ([]public.Contact, error)
	Update(ctx context.Context, id int64, in model.UpdateContactInput) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// AvatarFiles removes avatar files from the managed upload directory.
type AvatarFiles interface {
	Managed(publicPath string) bool
	RemoveAsync(publicPaths ...string)
}

// ContactService implements create, list, fetch, update and delete of contacts.
type ContactService struct {
	repo  Repository
	files AvatarFiles
	log   *logger.Logger
}

// New creates a contact service on top of the repository and the avatar files.
func New(repo Repository, files AvatarFiles, log *logger.Logger) *ContactService {
	return &ContactService{repo: repo, files: files, log: log}
}

// Create stores a new contact and returns it including the generated id. A new contact is not a
// favorite unless stated otherwise. If the contact cannot be stored, its avatar file is removed.
func (s *ContactService) Create(ctx context.Context, in model.CreateContactInput) (*public.Contact, error) {
	contact := public.Contact{
		Name:     in.Name,
		Email:    in.Email,
		Address:  in.Address,
		Phone:    in.Phone,
		Favorite: in.Favorite != nil && *in.Favorite,
		Avatar:   in.Avatar,
	}
	id, err := s.repo.Insert(ctx, &contact)
	if err != nil {
		s.log.Error("[Create] error repo.Insert", "error", err)
		s.discardUpload(in.Avatar)
		return nil, err
	}
	contact.Id = id
	return &contact, nil
}

// List returns one page of the contacts matching the filter and the page metadata. The metadata
// reflects the number of contacts matching the filter, not the size of the whole table.
func (s *ContactService) List(ctx context.Context, filter model.ContactFilter) (*public.ContactListData, error) {
	p := paginator.New(filter.Page, filter.Limit)
	contacts, total, err := s.repo.Find(ctx, filter.Name, filter.OnlyFavorites(), p.Limit, p.Offset())
	if err != nil {
		s.log.Error("[List] error repo.Find", "error", err)
		return nil, err
	}
	return &public.ContactListData{
		Contacts: contacts,
		Metadata: p.Metadata(total),
	}, nil
}

// GetByID returns the contact with the given id or ErrContactNotFound.
func (s *ContactService) GetByID(ctx context.Context, id int64) (*public.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrContactNotFound) {
			s.log.Error("[GetByID] error repo.FindByID", "error", err, "id", id)
		}
		return nil, err
	}
	return contact, nil
}

// Update changes the fields present in the input and returns the merged contact.
//
// An absent avatar keeps the existing one; an avatar is only replaced by a newly uploaded file.
// The replaced file is removed in the background if it lives in the managed upload directory.
func (s *ContactService) Update(ctx context.Context, id int64, in model.UpdateContactInput) (*public.Contact, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrContactNotFound) {
			s.log.Error("[Update] error repo.FindByID", "error", err, "id", id)
		}
		s.discardUpload(in.Avatar)
		return nil, err
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		s.log.Error("[Update] error repo.Update", "error", err, "id", id)
		s.discardUpload(in.Avatar)
		return nil, err
	}

	merged := *existing
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Email != nil {
		merged.Email = in.Email
	}
	if in.Address != nil {
		merged.Address = in.Address
	}
	if in.Phone != nil {
		merged.Phone = in.Phone
	}
	if in.Favorite != nil {
		merged.Favorite = *in.Favorite
	}
	if in.Avatar != nil {
		merged.Avatar = in.Avatar
		if existing.Avatar != nil && *existing.Avatar != *in.Avatar && s.files.Managed(*existing.Avatar) {
			s.files.RemoveAsync(*existing.Avatar)
		}
	}
	return &merged, nil
}

// Delete removes the contact with the given id and, in the background, its avatar file. It
// returns the deleted contact or ErrContactNotFound.
func (s *ContactService) Delete(ctx context.Context, id int64) (*public.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrContactNotFound) {
			s.log.Error("[Delete] error repo.FindByID", "error", err, "id", id)
		}
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrContactNotFound) {
			s.log.Error("[Delete] error repo.Delete", "error", err, "id", id)
		}
		return nil, err
	}
	if contact.Avatar != nil && s.files.Managed(*contact.Avatar) {
		s.files.RemoveAsync(*contact.Avatar)
	}
	return contact, nil
}

// DeleteAll removes every contact and, in the background, every managed avatar file. It returns
// the removed contacts, an empty slice if there were none.
func (s *ContactService) DeleteAll(ctx context.Context) ([]public.Contact, error) {
	contacts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("[DeleteAll] error repo.FindAll", "error", err)
		return nil, err
	}
	if _, err := s.repo.DeleteAll(ctx); err != nil {
		s.log.Error("[DeleteAll] error repo.DeleteAll", "error", err)
		return nil, err
	}

	var avatars []string
	for _, contact := range contacts {
		if contact.Avatar != nil && s.files.Managed(*contact.Avatar) {
			avatars = append(avatars, *contact.Avatar)
		}
	}
	if len(avatars) > 0 {
		s.files.RemoveAsync(avatars...)
	}
	return contacts, nil
}

// discardUpload removes a freshly uploaded avatar that will not be referenced by any contact.
func (s *ContactService) discardUpload(avatar *string) {
	if avatar != nil && s.files.Managed(*avatar) {
		s.files.RemoveAsync(*avatar)
	}
}
