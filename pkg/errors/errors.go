package errors

import (
	"errors"
	"fmt"
)

var (
	// Fulfillment engine
	ErrNotFound      = errors.New("registro no encontrado")
	ErrInvalidAction = errors.New("acción no válida o datos incompletos")
	ErrConflict      = errors.New("ya existe una plantilla activa para este ticket")

	// Infrastructure
	ErrUpstreamFetch = errors.New("no se pudo leer el archivo de producción")
	ErrStoreFailure  = errors.New("error de base de datos")

	// General
	ErrBadRequest = errors.New("solicitud inválida")
)

// Custom error types
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and user-facing message for a failed request.
// Err and Context are only written to the log.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// StoreError marks a failed persistence call. It matches ErrStoreFailure with errors.Is.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreFailure, err))
}

// UpstreamError marks a failed feed fetch. It matches ErrUpstreamFetch with errors.Is.
func UpstreamError(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", source, errors.Join(ErrUpstreamFetch, err))
}
