package handler

import (
	"encoding/json"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/utils/apierror"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducerService struct {
	producers map[int64]*contract.Producer
	lastQuery string
	nextID    int64
}

func newFakeProducerService() *fakeProducerService {
	return &fakeProducerService{producers: map[int64]*contract.Producer{}, nextID: 1}
}

func (f *fakeProducerService) GetAllProducers(query string) ([]*contract.Producer, apierror.ErrorResponse) {
	f.lastQuery = query
	all := []*contract.Producer{}
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.producers[id]; ok {
			all = append(all, p)
		}
	}
	return all, nil
}

func (f *fakeProducerService) GetProducerByID(id int64) (*contract.Producer, apierror.ErrorResponse) {
	p, ok := f.producers[id]
	if !ok {
		return nil, apierror.NotFoundError
	}
	return p, nil
}

func (f *fakeProducerService) CreateProducer(req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse) {
	if len(req.ProducerName) < 3 {
		problems := apierror.NewStructured(http.StatusBadRequest)
		problems.Add(contract.FieldProducerName, "Value is too short, min: 3")
		return nil, problems
	}

	p := &contract.Producer{ID: f.nextID, ProducerName: req.ProducerName}
	f.producers[p.ID] = p
	f.nextID++
	return p, nil
}

func (f *fakeProducerService) UpdateProducer(id int64, req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse) {
	p, ok := f.producers[id]
	if !ok {
		return nil, apierror.NotFoundError
	}
	p.ProducerName = req.ProducerName
	return p, nil
}

func (f *fakeProducerService) DeleteProducer(id int64) apierror.ErrorResponse {
	if _, ok := f.producers[id]; !ok {
		return apierror.NotFoundError
	}
	delete(f.producers, id)
	return nil
}

func newProducerServer(svc ProducerService) *echo.Echo {
	routes := NewProducerDefault(svc)

	e := echo.New()
	e.GET("/api/producers", routes.GetProducers)
	e.GET("/api/producers/:id", routes.GetProducer)
	e.POST("/api/producers", routes.CreateProducer)
	e.PUT("/api/producers/:id", routes.UpdateProducer)
	e.DELETE("/api/producers/:id", routes.DeleteProducer)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProducerRoutes_Lifecycle(t *testing.T) {
	svc := newFakeProducerService()
	e := newProducerServer(svc)

	rec := doRequest(e, http.MethodPost, "/api/producers", `{"producerName":"Maria Souza"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created contract.Producer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rec = doRequest(e, http.MethodGet, "/api/producers?q=maria", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maria", svc.lastQuery)

	var list []contract.Producer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doRequest(e, http.MethodPut, "/api/producers/1", `{"producerName":"Maria Lima"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria Lima")

	rec = doRequest(e, http.MethodDelete, "/api/producers/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/producers/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducerRoutes_EmptyListIsArray(t *testing.T) {
	e := newProducerServer(newFakeProducerService())

	rec := doRequest(e, http.MethodGet, "/api/producers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProducerRoutes_ValidationErrors(t *testing.T) {
	e := newProducerServer(newFakeProducerService())

	rec := doRequest(e, http.MethodPost, "/api/producers", `{"producerName":"Jo"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"producerName":["Value is too short, min: 3"]}}`, rec.Body.String())
}

func TestProducerRoutes_BadInput(t *testing.T) {
	e := newProducerServer(newFakeProducerService())

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"non numeric id", http.MethodGet, "/api/producers/abc", ""},
		{"zero id", http.MethodDelete, "/api/producers/0", ""},
		{"negative id", http.MethodPut, "/api/producers/-3", `{}`},
		{"malformed body", http.MethodPost, "/api/producers", `{"producerName":`},
		{"wrong area type", http.MethodPost, "/api/producers", `{"totalArea":"ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message"`)
		})
	}
}
