package handlers

import (
	"errors"
	"net/http"

	"luma-service/internal/dto"
	"luma-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service sentinel errors onto the HTTP error
// taxonomy. Anything unmapped is a 500 with an opaque body.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("insufficient role"))
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSupplyNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid credentials"))
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrProductInUse):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	default:
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}
