package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/apierr"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/jsend"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/middleware"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/model"
	public "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

// ContactService is the contact book the controller exposes.
type ContactService interface {
	Create(ctx context.Context, in model.CreateContactInput) (*public.Contact, error)
	List(ctx context.Context, filter model.ContactFilter) (*public.ContactListData, error)
	GetByID(ctx context.Context, id int64) (*public.Contact, error)
	Update(ctx context.Context, id int64, in model.UpdateContactInput) (*public.Contact, error)
	Delete(ctx context.Context, id int64) (*public.Contact, error)
	DeleteAll(ctx context.Context) ([]public.Contact, error)
}

// ContactController implements the /contacts endpoints. Handlers never write error responses
// themselves; they record the error and leave the response to middleware.ErrorResponder.
type ContactController struct {
	service ContactService
}

// NewContactController creates the controller for the given contact service.
func NewContactController(service ContactService) *ContactController {
	return &ContactController{service: service}
}

// getContacts responds with one page of contacts and the pagination metadata.
//
// The URL parameter 'name' matches case-insensitively anywhere in the contact's name. If the URL
// parameter 'favorite' is set to anything but '0' or 'false', only favorites are returned. The
// URL parameters 'page' and 'limit' select the page; invalid values fall back to the first page
// and a page size of 5, and the page size is capped at 50.
//
// REST API calls:
//
//	> curl "http://localhost:8080/api/v1/contacts"
//	> curl "http://localhost:8080/api/v1/contacts?name=mus&favorite=true"
//	> curl "http://localhost:8080/api/v1/contacts?page=3&limit=10"
//
// @Summary  List contacts
// @Tags     contacts
// @Produce  json
// @Param    name     query string false "part of the name"
// @Param    favorite query string false "only favorites unless 0 or false"
// @Param    page     query int    false "page number, starting at 1"
// @Param    limit    query int    false "page size, at most 50"
// @Success  200 {object} model.ContactListData
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts [get]
func (h *ContactController) getContacts(c *gin.Context) {
	var filter model.ContactFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abort(c, apierr.BadRequest("invalid query parameters"))
		return
	}
	data, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, jsend.Success(data))
}

// createContact inserts the contact specified in the request body. It responds with the full
// contact including the newly assigned id, and with a Location header pointing at it.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/api/v1/contacts --include --form "name=Erika Mustermann" --form "avatarFile=@me.png"
//	> curl http://localhost:8080/api/v1/contacts --include --header "Content-Type: application/json" --data '{"name": "Hans Wurst", "phone": "0815"}'
//
// @Summary  Create a contact
// @Tags     contacts
// @Accept   multipart/form-data
// @Produce  json
// @Param    name       formData string true  "name"
// @Param    email      formData string false "email"
// @Param    address    formData string false "address"
// @Param    phone      formData string false "phone"
// @Param    favorite   formData bool   false "favorite"
// @Param    avatarFile formData file   false "avatar image"
// @Success  201 {object} model.ContactData
// @Failure  400 {object} model.Envelope[any]
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts [post]
func (h *ContactController) createContact(c *gin.Context) {
	var in model.CreateContactInput
	if err := c.ShouldBind(&in); err != nil {
		abort(c, apierr.BadRequest("invalid request body"))
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Avatar = middleware.AvatarPath(c)
	if err := validateInput(in); err != nil {
		abort(c, err)
		return
	}

	contact, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request.URL.Path, "/"), contact.Id))
	c.IndentedJSON(http.StatusCreated, jsend.Success(public.ContactData{Contact: *contact}))
}

// getContact responds with the contact whose id matches the id parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/v1/contacts/56
//
// @Summary  Get a contact
// @Tags     contacts
// @Produce  json
// @Param    id  path int true "contact id"
// @Success  200 {object} model.ContactData
// @Failure  404 {object} model.Envelope[any]
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts/{id} [get]
func (h *ContactController) getContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, jsend.Success(public.ContactData{Contact: *contact}))
}

// updateContact updates the values specified in the request body (and only those) of the contact
// whose id matches the id parameter of the request URL, and responds with the new version of the
// contact. The avatar is only replaced if a new file is uploaded.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/api/v1/contacts/56 --request "PUT" --form "phone=81970"
//	> curl http://localhost:8080/api/v1/contacts/56 --request "PUT" --form "avatarFile=@new.png"
//
// @Summary  Update a contact
// @Tags     contacts
// @Accept   multipart/form-data
// @Produce  json
// @Param    id         path     int    true  "contact id"
// @Param    name       formData string false "name"
// @Param    email      formData string false "email"
// @Param    address    formData string false "address"
// @Param    phone      formData string false "phone"
// @Param    favorite   formData bool   false "favorite"
// @Param    avatarFile formData file   false "avatar image"
// @Success  200 {object} model.ContactData
// @Failure  400 {object} model.Envelope[any]
// @Failure  404 {object} model.Envelope[any]
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts/{id} [put]
func (h *ContactController) updateContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in model.UpdateContactInput
	if err := c.ShouldBind(&in); err != nil {
		abort(c, apierr.BadRequest("invalid request body"))
		return
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	in.Avatar = middleware.AvatarPath(c)

	// It only makes sense to continue if we have at least one value to update.
	if in.IsEmpty() {
		abort(c, apierr.BadRequest("no values to be updated"))
		return
	}
	if err := validateInput(in); err != nil {
		abort(c, err)
		return
	}

	contact, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, jsend.Success(public.ContactData{Contact: *contact}))
}

// deleteContact deletes the contact whose id matches the id parameter of the request URL together
// with its avatar file.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/v1/contacts/56 --request "DELETE"
//
// @Summary  Delete a contact
// @Tags     contacts
// @Produce  json
// @Param    id  path int true "contact id"
// @Success  200 {object} model.DeletedContactData
// @Failure  404 {object} model.Envelope[any]
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts/{id} [delete]
func (h *ContactController) deleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, jsend.Success(public.DeletedContactData{
		Message: "Contact deleted",
		Contact: *contact,
	}))
}

// deleteAllContacts deletes every contact together with the avatar files.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/v1/contacts --request "DELETE"
//
// @Summary  Delete all contacts
// @Tags     contacts
// @Produce  json
// @Success  200 {object} model.DeletedContactsData
// @Failure  500 {object} model.Envelope[any]
// @Router   /contacts [delete]
func (h *ContactController) deleteAllContacts(c *gin.Context) {
	contacts, err := h.service.DeleteAll(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	if contacts == nil {
		contacts = []public.Contact{}
	}
	c.IndentedJSON(http.StatusOK, jsend.Success(public.DeletedContactsData{
		Message:  "All contacts deleted",
		Contacts: contacts,
	}))
}

// parseID reads the id parameter of the request URL. Anything but an integer cannot name a
// contact and is answered with 404.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, apierr.NotFound("invalid id parameter"))
		return 0, false
	}
	return id, true
}

// abort records the error for the error responder and stops the handler chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
