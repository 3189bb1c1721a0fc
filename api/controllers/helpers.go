package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/api/middleware"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

// actor resolves the authenticated caller from the request context.
func actor(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	rawID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid authenticated identity")
	}

	rawRole, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	role, err := enums.ParseUserRole(rawRole)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid authenticated role")
	}

	return userID, role, nil
}
