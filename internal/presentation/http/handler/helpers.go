package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/sangkips/caixa-api/internal/presentation/http/dto/response"
	"github.com/sangkips/caixa-api/internal/presentation/http/middleware"
	"github.com/sangkips/caixa-api/pkg/apperror"
)

// GetUserID extracts the operator ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetMatricula extracts the operator matricula from the Gin context
func GetMatricula(c *gin.Context) string {
	return c.GetString(middleware.ContextMatricula)
}

// IsAdmin checks if the operator has the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(middleware.ContextRole) == enum.RoleAdmin
}

// requireUserID writes a 401 and returns false when no operator is signed in
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, false
	}
	return *userID, true
}

// uuidParam parses a UUID path parameter, writing a 400 on failure
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body. Malformed JSON is a 400; failed
// binding rules become a 422 listing each field.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   jsonFieldName(fe.Field()),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		response.ValidationError(c, fields)
		return false
	}

	response.BadRequest(c, "Invalid request body")
	return false
}

// jsonFieldName turns a Go field name like "DataCaixa" into "data_caixa"
func jsonFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
