package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/domain"
)

// respondError traduce los errores de dominio a códigos HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var malformed *domain.MalformedInputError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrNotLoaded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_LOADED", Message: "el conjunto de datos aún no está cargado"})
	case errors.As(err, &malformed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_INPUT", Message: malformed.Error()})
	case errors.Is(err, domain.ErrEmptyResult):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPTY_RESULT", Message: "el conjunto de datos está vacío"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseRequest lee los query params comunes del dashboard.
func parseRequest(c *fiber.Ctx) (dto.DashboardRequest, error) {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return req, fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)
	}
	return req, nil
}
