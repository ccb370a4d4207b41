package handler

import (
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ProducerService interface {
	GetAllProducers(query string) ([]*contract.Producer, apierror.ErrorResponse)
	GetProducerByID(id int64) (*contract.Producer, apierror.ErrorResponse)
	CreateProducer(req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse)
	UpdateProducer(id int64, req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse)
	DeleteProducer(id int64) apierror.ErrorResponse
}

type DefaultProducerRoute struct {
	ProducerService ProducerService
}

func NewProducerDefault(producerService ProducerService) *DefaultProducerRoute {
	return &DefaultProducerRoute{ProducerService: producerService}
}

// GetProducers answers with a plain JSON array, optionally filtered by ?q=.
func (p *DefaultProducerRoute) GetProducers(c echo.Context) error {
	producers, err := p.ProducerService.GetAllProducers(c.QueryParam("q"))
	if err != nil {
		return c.JSON(err.Code(), err)
	}
	return c.JSON(http.StatusOK, producers)
}

func (p *DefaultProducerRoute) GetProducer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	producer, apierr := p.ProducerService.GetProducerByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, producer)
}

func (p *DefaultProducerRoute) CreateProducer(c echo.Context) error {
	var req contract.ProducerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	producer, apierr := p.ProducerService.CreateProducer(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, producer)
}

func (p *DefaultProducerRoute) UpdateProducer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	var req contract.ProducerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	producer, apierr := p.ProducerService.UpdateProducer(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, producer)
}

func (p *DefaultProducerRoute) DeleteProducer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	serr := p.ProducerService.DeleteProducer(id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
