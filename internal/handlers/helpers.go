package handlers

import (
	"net/http"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// getClaims extracts the authenticated principal set by the JWT middleware
func getClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// toHTTPError maps a domain error kind to an HTTP status code
func toHTTPError(err error) error {
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindState:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errs.KindPermission:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errs.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		zap.L().Error("unhandled error", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
