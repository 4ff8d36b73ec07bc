package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
)

// Detail is the error body shape shared by every failing endpoint.
type Detail struct {
	Detail string `json:"detail"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error converts any error into its HTTP status and a detail body. Status mapping
// from error kinds happens here and nowhere else.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Detail{Detail: appErr.Message})
}
