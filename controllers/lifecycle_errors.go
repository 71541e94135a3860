package controllers

import (
	"errors"

	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/SwatiiB/kleCanteen-sub000/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeLifecycleError maps the lifecycle error taxonomy onto HTTP codes.
func writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Unprocessable(c, err.Error())
	case errors.Is(err, services.ErrCancellationWindowClosed):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrConcurrentModification):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRefundFailed):
		resp.BadGateway(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
