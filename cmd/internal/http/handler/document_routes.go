package handler

import (
	"context"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/utils/apierror"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

type DocumentService interface {
	InspectDocument(ctx context.Context, raw string) (*contract.DocumentResponse, apierror.ErrorResponse)
}

type DefaultDocumentRoute struct {
	DocumentService DocumentService
}

func NewDocumentDefault(documentService DocumentService) *DefaultDocumentRoute {
	return &DefaultDocumentRoute{DocumentService: documentService}
}

// GetDocument accepts the document bare or punctuated. A CNPJ slash must be
// sent escaped as %2F.
func (d *DefaultDocumentRoute) GetDocument(c echo.Context) error {
	raw := c.Param("document")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	resp, apierr := d.DocumentService.InspectDocument(c.Request().Context(), strings.TrimSpace(raw))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// HealthCheck backs the Docker Compose healthcheck.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
