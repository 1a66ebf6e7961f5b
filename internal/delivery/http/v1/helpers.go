package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
	"internview-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var registerOnce sync.Once

// registerValidators installs the custom tags on gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterValidators(v)
		}
	})
}

// bindError converts a binding failure into a 400 with readable field messages.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.BadRequest(validation.Message(err))
	}
	return apperror.BadRequest("Invalid request body: " + err.Error())
}

// idParam reads a UUID path parameter.
func idParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = c.Error(apperror.BadRequest(fmt.Sprintf("Invalid %s: must be a UUID", name)))
		return "", false
	}
	return id.String(), true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// formFile reads an optional multipart file fully into memory. At most
// maxBytes+1 bytes are read so oversized files still fail size validation.
func formFile(c *gin.Context, field string, maxBytes int64) (*domain.FileUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.BadRequest("Invalid multipart form: " + err.Error())
	}
	if header.Size > maxBytes {
		return nil, apperror.BadRequest(fmt.Sprintf("File too large (max %d MB)", maxBytes/(1024*1024)))
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.FileUpload{Filename: header.Filename, Data: data}, nil
}
