package model

// Contact is the data structure for a person in the contact book.
// All fields with the exception of Id, Name and Favorite are optional.
type Contact struct {
	Id       int64   `json:"id"       db:"id"`
	Name     string  `json:"name"     db:"name"`
	Email    *string `json:"email"    db:"email"`
	Address  *string `json:"address"  db:"address"`
	Phone    *string `json:"phone"    db:"phone"`
	Favorite bool    `json:"favorite" db:"favorite"`
	Avatar   *string `json:"avatar"   db:"avatar"`
}

// Metadata describes the page of a contact listing.
type Metadata struct {
	TotalRecords int `json:"totalRecords"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	Page         int `json:"page"`
	Limit        int `json:"limit"`
}

// Envelope is the JSON wrapper around every response of the API.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ContactData is the payload of responses carrying a single contact.
type ContactData struct {
	Contact Contact `json:"contact"`
}

// ContactListData is the payload of the contact listing.
type ContactListData struct {
	Contacts []Contact `json:"contacts"`
	Metadata Metadata  `json:"metadata"`
}

// DeletedContactData is the payload of the response to deleting one contact.
type DeletedContactData struct {
	Message string  `json:"message"`
	Contact Contact `json:"contact"`
}

// DeletedContactsData is the payload of the response to deleting all contacts. Contacts lists the
// removed records and is empty, not null, when there was nothing to delete.
type DeletedContactsData struct {
	Message  string    `json:"message"`
	Contacts []Contact `json:"contacts"`
}
