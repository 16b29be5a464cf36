package model

// CreateContactInput is the request body for creating a contact. It is bound from multipart
// forms, urlencoded forms and JSON alike. Avatar is never bound from the request; it is set from
// the file stored by the upload middleware.
type CreateContactInput struct {
	Name     string  `form:"name"     json:"name"     validate:"required,max=255"`
	Email    *string `form:"email"    json:"email"    validate:"omitnil,max=255"`
	Address  *string `form:"address"  json:"address"  validate:"omitnil,max=255"`
	Phone    *string `form:"phone"    json:"phone"    validate:"omitnil,max=255"`
	Favorite *bool   `form:"favorite" json:"favorite"`
	Avatar   *string `form:"-"        json:"-"`
}

// UpdateContactInput is the request body for updating a contact. Only the fields that are
// present in the request are changed.
type UpdateContactInput struct {
	Name     *string `form:"name"     json:"name"     validate:"omitnil,min=1,max=255"`
	Email    *string `form:"email"    json:"email"    validate:"omitnil,max=255"`
	Address  *string `form:"address"  json:"address"  validate:"omitnil,max=255"`
	Phone    *string `form:"phone"    json:"phone"    validate:"omitnil,max=255"`
	Favorite *bool   `form:"favorite" json:"favorite"`
	Avatar   *string `form:"-"        json:"-"`
}

// IsEmpty reports whether the update would not change anything.
func (in UpdateContactInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Address == nil && in.Phone == nil &&
		in.Favorite == nil && in.Avatar == nil
}

// ContactFilter holds the raw query parameters of a contact listing.
type ContactFilter struct {
	Name     string `form:"name"`
	Favorite string `form:"favorite"`
	Page     string `form:"page"`
	Limit    string `form:"limit"`
}

// OnlyFavorites reports whether the favorite parameter restricts the listing to favorites. An
// absent parameter, "0" and "false" do not restrict it.
func (f ContactFilter) OnlyFavorites() bool {
	return f.Favorite != "" && f.Favorite != "0" && f.Favorite != "false"
}
