package producerapi

import (
	"context"
	"encoding/json"
	"errors"
	"farmregistry/cmd/internal/contract"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	return client
}

func TestClient_ListProducers(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"id":1,"producerName":"Ana","totalArea":10,"crops":["Soja"]},{"id":2,"producerName":"Bia","totalArea":null}]`))
	})

	producers, err := client.ListProducers(context.Background(), "an a")
	require.NoError(t, err)

	assert.Equal(t, "/api/producers", gotPath)
	assert.Equal(t, "an a", gotQuery)
	require.Len(t, producers, 2)
	assert.Equal(t, int64(1), producers[0].ID)
	require.NotNil(t, producers[0].TotalArea)
	assert.Equal(t, 10.0, *producers[0].TotalArea)
	assert.Nil(t, producers[1].TotalArea)
}

func TestClient_ListProducers_NoQuery(t *testing.T) {
	var rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	producers, err := client.ListProducers(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, producers)
	assert.Empty(t, rawQuery)
}

func TestClient_CreateProducer(t *testing.T) {
	total := 10.0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/producers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req contract.ProducerRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Maria Souza", req.ProducerName)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&contract.Producer{ID: 9, ProducerName: req.ProducerName})
	})

	producer, err := client.CreateProducer(context.Background(), &contract.ProducerRequest{
		ProducerName: "Maria Souza",
		TotalArea:    &total,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), producer.ID)
}

func TestClient_UpdateAndDelete(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`{"id":7}`))
	})

	ctx := context.Background()
	_, err := client.UpdateProducer(ctx, 7, &contract.ProducerRequest{})
	require.NoError(t, err)
	require.NoError(t, client.DeleteProducer(ctx, 7))

	assert.Equal(t, []string{"PUT /api/producers/7", "DELETE /api/producers/7"}, calls)
}

func TestClient_Errors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/producers/404":
			w.WriteHeader(http.StatusNotFound)
		case "/api/producers/400":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":{"producerName":["Value is too short, min: 3"]}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		}
	})
	ctx := context.Background()

	_, err := client.GetProducer(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.UpdateProducer(ctx, 400, &contract.ProducerRequest{})
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
	assert.Equal(t, []string{"Value is too short, min: 3"}, respErr.Fields["producerName"])

	_, err = client.ListProducers(ctx, "")
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadGateway, respErr.StatusCode)
	assert.Contains(t, err.Error(), "502")
}
