package validation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ErrMalformedBody marks a request body that could not be decoded as JSON
// into the target shape.
var ErrMalformedBody = errors.New("malformed request body")

// BindJSON decodes the JSON body into out without running validation, so
// callers decide how a decode failure differs from missing fields. A bare
// null is not an object and is rejected.
func BindJSON(c *gin.Context, out interface{}) error {
	raw, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrMalformedBody, err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: body is null", ErrMalformedBody)
	}
	if err := binding.JSON.BindBody(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
