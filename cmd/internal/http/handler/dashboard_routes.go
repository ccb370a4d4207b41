package handler

import (
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/stats"
	"farmregistry/cmd/internal/registry"
	"net/http"

	"github.com/labstack/echo/v4"
)

type RegistryReader interface {
	State() registry.State
}

// DefaultDashboardRoute serves whatever the registry store currently holds.
// It never reads the database, the store is refreshed by the registry
// refresher job and after every write.
type DefaultDashboardRoute struct {
	Registry RegistryReader
}

func NewDashboardDefault(reg RegistryReader) *DefaultDashboardRoute {
	return &DefaultDashboardRoute{Registry: reg}
}

func (d *DefaultDashboardRoute) GetDashboard(c echo.Context) error {
	state := d.Registry.State()

	resp := &contract.DashboardResponse{
		Status:           string(state.Status),
		Producers:        state.Producers,
		OrderedProducers: state.OrderedProducers,
		Summary:          stats.Summarize(state.Producers),
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
