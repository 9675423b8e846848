// Package apperr maps domain errors to HTTP error responses.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/notify"
)

var (
	ErrNotFound          = New("NOT_FOUND", "Recurso não encontrado", http.StatusNotFound)
	ErrBadRequest        = New("BAD_REQUEST", "Requisição inválida", http.StatusBadRequest)
	ErrInvalidInput      = New("INVALID_INPUT", "Pontuações inválidas: informe ao menos um indicador com nota numérica inteira", http.StatusBadRequest)
	ErrValidation        = New("VALIDATION_ERROR", "Erro de validação", http.StatusBadRequest)
	ErrIndicatorNotFound = New("INDICATOR_NOT_FOUND", "Indicador não encontrado", http.StatusNotFound)
	ErrActionNotFound    = New("ACTION_NOT_FOUND", "Ação não encontrada", http.StatusNotFound)
	ErrRateLimited       = New("RATE_LIMIT_EXCEEDED", "Muitas requisições. Tente novamente em alguns instantes.", http.StatusTooManyRequests)
	ErrUnavailable       = New("SERVICE_UNAVAILABLE", "Diagnóstico indisponível no momento", http.StatusServiceUnavailable)
	ErrInternalServer    = New("INTERNAL_SERVER_ERROR", "Erro interno do servidor", http.StatusInternalServerError)
)

// AppError is an error with an HTTP status and a stable code.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New returns an AppError with no cause.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]any),
	}
}

// Wrap returns an AppError caused by err.
func Wrap(err error, code, message string, statusCode int) *AppError {
	e := New(code, message, statusCode)
	e.Err = err
	return e
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	c := e.clone()
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

// WithError returns a copy of e caused by err.
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

func (e *AppError) clone() *AppError {
	c := *e
	c.Details = make(map[string]any, len(e.Details))
	for k, v := range e.Details {
		c.Details[k] = v
	}
	return &c
}

// FromError converts any error into an AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, diagnosis.ErrInvalidInput):
		return ErrInvalidInput.WithError(err)
	case errors.Is(err, notify.ErrInvalid):
		return ErrBadRequest.WithError(err)
	case errors.As(err, &verrs):
		return ParseValidationErrors(err)
	case errors.Is(err, context.Canceled):
		return Wrap(err, "REQUEST_CANCELED", "Requisição cancelada pelo cliente", http.StatusRequestTimeout)
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, "REQUEST_TIMEOUT", "Tempo limite da requisição excedido", http.StatusGatewayTimeout)
	}
	return Wrap(err, "UNKNOWN_ERROR", "Erro desconhecido", http.StatusInternalServerError)
}

// ParseValidationErrors lists validator field errors under details.fields.
func ParseValidationErrors(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrBadRequest.WithError(err)
	}

	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field":   fe.Field(),
			"message": translate(fe),
		})
	}
	return ErrValidation.WithError(err).WithDetails(map[string]any{"fields": fields})
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min", "gte":
		return fmt.Sprintf("Valor mínimo: %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Valor máximo: %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor deve ser um de: %s", fe.Param())
	case "url":
		return "URL inválida"
	}
	return "Valor inválido"
}
