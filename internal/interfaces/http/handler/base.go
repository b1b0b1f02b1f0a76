// Package handler contains the gin handlers of the API. Handlers bind the
// request, call an application service and answer with the Status envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/interfaces/http/dto"
	"github.com/orders/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the envelope helpers shared by all handlers
type BaseHandler struct{}

// currentUser returns the authenticated caller's id; the Require* guards
// guarantee presence on protected routes.
func (h *BaseHandler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	return middleware.CurrentUserID(c)
}

// OK answers 200 with a success envelope
func (h *BaseHandler) OK(c *gin.Context, extra map[string]any) {
	c.JSON(http.StatusOK, dto.OK(extra))
}

// Data answers 200 with a raw payload (list endpoints)
func (h *BaseHandler) Data(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Fail maps an error to the wire: authorization failures get HTTP 403,
// other domain errors a 200 soft failure, anything else a 500.
func (h *BaseHandler) Fail(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if shared.AuthCodes[domainErr.Code] {
			c.JSON(http.StatusForbidden, dto.Forbidden(domainErr.Message))
			return
		}
		c.JSON(http.StatusOK, dto.Fail(domainErr.Message))
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.Fail("Внутренняя ошибка сервера"))
}

// BadJSON answers the malformed-body soft failure
func (h *BaseHandler) BadJSON(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Fail(shared.ErrInvalidInput.Message))
}
