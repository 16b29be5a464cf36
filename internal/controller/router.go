package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "gitlab.com/dirk.krummacker/contactbook-service/docs"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/config"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/jsend"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/middleware"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/upload"
)

// APIPrefix is the versioned path prefix of the REST API.
const APIPrefix = "/api/v1"

// SetupHttpRouter initializes the REST API router and registers all endpoints:
//
//	GET    /                         service root, answers with a success envelope
//	GET    /public/*                 the public directory, including uploaded avatars
//	GET    /api-docs/*               OpenAPI document and UI
//	GET    /api/v1/contacts          list contacts
//	POST   /api/v1/contacts          create a contact
//	DELETE /api/v1/contacts          delete all contacts
//	GET    /api/v1/contacts/:id      get a contact
//	PUT    /api/v1/contacts/:id      update a contact
//	DELETE /api/v1/contacts/:id      delete a contact
//
// Unknown routes are answered with 404, unwired verbs on known routes with 405.
func SetupHttpRouter(cfg *config.Config, contacts *ContactController, store *upload.Store, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	if cfg.RequestLogging() {
		router.Use(middleware.RequestLogger(log))
	} else {
		log.Info("Turning off HTTP request logging.")
	}
	router.Use(
		middleware.CORS(cfg.HTTP.CORSOrigins),
		middleware.ErrorResponder(log),
		middleware.Recovery(),
	)
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.GET("/", func(c *gin.Context) {
		c.IndentedJSON(http.StatusOK, jsend.Success(nil))
	})
	router.Static(upload.PublicURLPath, store.PublicDir())
	router.GET("/api-docs/*any", gin.WrapH(httpSwagger.WrapHandler))

	avatarUpload := middleware.AvatarUpload(store, cfg.Uploads.MaxUploadBytes)
	api := router.Group(APIPrefix)
	api.GET("/contacts", contacts.getContacts)
	api.POST("/contacts", avatarUpload, contacts.createContact)
	api.DELETE("/contacts", contacts.deleteAllContacts)
	api.GET("/contacts/:id", contacts.getContact)
	api.PUT("/contacts/:id", avatarUpload, contacts.updateContact)
	api.DELETE("/contacts/:id", contacts.deleteContact)
	return router
}
