package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "plantillas-system/pkg/errors"
)

// HTTPResponse is the envelope of every response. Callers check Success only;
// Message and Error are informational.
type HTTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(ctx echo.Context, data interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(ctx echo.Context, data interface{}, meta interface{}, message string) error {
	return ctx.JSON(http.StatusOK, &HTTPResponse{Success: true, Message: message, Data: data, Meta: meta})
}

// ErrorResponse maps err onto a status code and writes the failure envelope.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		resp := &HTTPResponse{Success: false, Message: httpErr.Message}
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			resp.Error = httpErr.Err.Error()
		}
		return c.JSON(httpErr.Code, resp)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, "campo '"+e.Field()+"' no cumple la regla '"+e.Tag()+"'")
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Success: false,
			Message: "Error de validación: " + strings.Join(msgs, "; "),
		})
	}

	var invalidInput *apperrors.InvalidInputError
	switch {
	case errors.As(err, &invalidInput):
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Success: false, Message: invalidInput.Message})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, &HTTPResponse{Success: false, Message: "Ticket o plantilla no encontrada"})
	case errors.Is(err, apperrors.ErrInvalidAction), errors.Is(err, apperrors.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Success: false, Message: apperrors.ErrInvalidAction.Error(), Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		return c.JSON(http.StatusConflict, &HTTPResponse{Success: false, Message: apperrors.ErrConflict.Error()})
	case errors.Is(err, apperrors.ErrUpstreamFetch):
		logger.Error("Upstream Error", zap.Error(err))
		return c.JSON(http.StatusBadGateway, &HTTPResponse{Success: false, Message: "Error al leer los tickets de producción", Error: err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Success: false,
		Message: "Error interno del servidor",
		Error:   err.Error(),
	})
}
