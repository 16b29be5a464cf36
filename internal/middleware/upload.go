package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/apierr"
)

// AvatarField is the multipart field an avatar file is uploaded under.
const AvatarField = "avatarFile"

// avatarPathKey is the gin context key the public path of a stored avatar is kept under.
const avatarPathKey = "avatarPath"

// maxMemory is the part of a multipart body kept in memory, the rest goes to temporary files.
const maxMemory = 1 << 20

// AvatarStore saves uploaded avatars and removes them again.
type AvatarStore interface {
	Save(file *multipart.FileHeader) (string, error)
	RemoveAsync(publicPaths ...string)
}

// AvatarUpload accepts at most one file under AvatarField in a multipart request and stores it.
// Requests of other content types pass through untouched.
//
// A body larger than maxBytes, a malformed body, a file under any other field and more than one
// avatar file are answered with 400. A file that cannot be stored is answered with 500. If a
// later handler fails the request with any error, the stored file is removed again; no contact
// refers to it then.
func AvatarUpload(store AvatarStore, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEMultipartPOSTForm {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abort(c, apierr.BadRequest("File too large"))
			} else {
				abort(c, apierr.BadRequest("invalid multipart body"))
			}
			return
		}

		var avatar *multipart.FileHeader
		for field, files := range c.Request.MultipartForm.File {
			if field != AvatarField || len(files) > 1 {
				abort(c, apierr.BadRequest("Unexpected field"))
				return
			}
			avatar = files[0]
		}
		if avatar == nil {
			c.Next()
			return
		}

		publicPath, err := store.Save(avatar)
		if err != nil {
			abort(c, apierr.Internal(err))
			return
		}
		c.Set(avatarPathKey, publicPath)
		c.Next()

		if len(c.Errors) > 0 {
			store.RemoveAsync(publicPath)
		}
	}
}

// AvatarPath returns the public path of the avatar stored for this request, or nil if the
// request did not carry one.
func AvatarPath(c *gin.Context) *string {
	publicPath := c.GetString(avatarPathKey)
	if publicPath == "" {
		return nil
	}
	return &publicPath
}

// abort records the error for the error responder and stops the handler chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
