package http

import (
	"github.com/gin-gonic/gin"

	"blogsvc/internal/core/domain"
)

type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Error"`
}

type successResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Success message"`
	Data    interface{} `json:"data,omitempty"`
}

type validationErrorResponse struct {
	Success bool               `json:"success" example:"false"`
	Message string             `json:"message" example:"Validation failed"`
	Errors  domain.FieldErrors `json:"errors"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Success: false,
		Message: message,
	})
}

func newSuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// newValidationErrorResponse renders the full field->messages set with a
// 422, never as a fatal error.
func newValidationErrorResponse(c *gin.Context, verr *domain.ValidationError) {
	c.AbortWithStatusJSON(422, validationErrorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}
