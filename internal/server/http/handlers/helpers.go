package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/server/http/dto"
	"github.com/nross83/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps a domain error to the HTTP boundary. Typed errors keep
// their message so the caller learns which product or transition failed.
func respondError(c *gin.Context, err error) {
	var (
		stockErr      domainErrors.InsufficientStockError
		transitionErr domainErrors.InvalidTransitionError
	)
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: stockErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: transitionErr.Error()})
	case errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
