package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/velocita/velocita-backend/internal/response"
	"github.com/velocita/velocita-backend/internal/service"
)

// failFromError maps service and repository errors to API error responses.
// Unrecognized errors become a generic 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotEventOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotEventOwner)
	case errors.Is(err, service.ErrInvalidRuleConfig):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrInvalidRuleConfig, map[string]string{
			"config": err.Error(),
		})
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				response.Fail(c, http.StatusConflict, response.ErrConflict)
				return
			case "23503": // foreign_key_violation
				response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
				return
			}
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseUUIDParam parses a UUID path parameter, replying 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
