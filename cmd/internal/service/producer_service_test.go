package service

import (
	"context"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/sqlite"
	"farmregistry/cmd/internal/domain/sqlite/repository"
	"farmregistry/cmd/internal/utils/apierror"
	"farmregistry/cmd/internal/utils/validators"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderFunc func(ctx context.Context, query string) error

func (f loaderFunc) Load(ctx context.Context, query string) error {
	return f(ctx, query)
}

func newTestProducerService(t *testing.T) *DefaultProducerService {
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewProducerService(repository.NewProducerRepository(db), validators.New())
}

func ptr(v float64) *float64 {
	return &v
}

func validRequest() *contract.ProducerRequest {
	return &contract.ProducerRequest{
		CPFOrCNPJ:        "52998224725",
		ProducerName:     "Maria Souza",
		FarmName:         "Fazenda Aurora",
		City:             "Uberaba",
		State:            "mg",
		TotalArea:        ptr(100),
		AgriculturalArea: ptr(60),
		VegetationArea:   ptr(40),
		Crops:            []string{"Soja", "Cana de Açúcar"},
	}
}

func TestProducerService_CreateAndGet(t *testing.T) {
	svc := newTestProducerService(t)

	created, apierr := svc.CreateProducer(validRequest())
	require.Nil(t, apierr)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "529.982.247-25", created.CPFOrCNPJ)
	assert.Equal(t, "MG", created.State)
	assert.Equal(t, []string{"Soja", "Cana de Açúcar"}, created.Crops)
	assert.NotEmpty(t, created.CreatedAt)

	found, apierr := svc.GetProducerByID(created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, created, found)
}

func TestProducerService_CreateInvalid(t *testing.T) {
	svc := newTestProducerService(t)

	req := validRequest()
	req.ProducerName = "Jo"
	req.TotalArea = ptr(10)

	_, apierr := svc.CreateProducer(req)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	problems, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		contract.FieldProducerName, contract.FieldAgriculturalArea, contract.FieldVegetationArea,
	}, problems.Fields())

	all, apierr := svc.GetAllProducers("")
	require.Nil(t, apierr)
	assert.Empty(t, all)
}

func TestProducerService_Update(t *testing.T) {
	svc := newTestProducerService(t)

	created, apierr := svc.CreateProducer(validRequest())
	require.Nil(t, apierr)

	req := validRequest()
	req.FarmName = "Fazenda Nova"
	req.Crops = []string{"Café"}

	updated, apierr := svc.UpdateProducer(created.ID, req)
	require.Nil(t, apierr)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Fazenda Nova", updated.FarmName)
	assert.Equal(t, []string{"Café"}, updated.Crops)

	all, apierr := svc.GetAllProducers("")
	require.Nil(t, apierr)
	assert.Len(t, all, 1)
}

func TestProducerService_NotFound(t *testing.T) {
	svc := newTestProducerService(t)

	_, apierr := svc.GetProducerByID(99)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = svc.UpdateProducer(99, validRequest())
	assert.Equal(t, apierror.NotFoundError, apierr)

	assert.Equal(t, apierror.NotFoundError, svc.DeleteProducer(99))
}

func TestProducerService_UpdateValidatesBeforeLookup(t *testing.T) {
	svc := newTestProducerService(t)

	req := validRequest()
	req.State = "MGA"

	_, apierr := svc.UpdateProducer(99, req)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestProducerService_Delete(t *testing.T) {
	svc := newTestProducerService(t)

	created, apierr := svc.CreateProducer(validRequest())
	require.Nil(t, apierr)
	require.Nil(t, svc.DeleteProducer(created.ID))

	_, apierr = svc.GetProducerByID(created.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestProducerService_ListProducersFilters(t *testing.T) {
	svc := newTestProducerService(t)

	_, apierr := svc.CreateProducer(validRequest())
	require.Nil(t, apierr)

	other := validRequest()
	other.ProducerName = "José Lima"
	other.City = "Sorriso"
	_, apierr = svc.CreateProducer(other)
	require.Nil(t, apierr)

	found, err := svc.ListProducers(context.Background(), "sorriso")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "José Lima", found[0].ProducerName)
}

func TestProducerService_WritesReloadRegistry(t *testing.T) {
	svc := newTestProducerService(t)

	reloads := make(chan string, 3)
	svc.Registry = loaderFunc(func(_ context.Context, query string) error {
		reloads <- query
		return nil
	})

	created, apierr := svc.CreateProducer(validRequest())
	require.Nil(t, apierr)
	_, apierr = svc.UpdateProducer(created.ID, validRequest())
	require.Nil(t, apierr)
	require.Nil(t, svc.DeleteProducer(created.ID))

	for i := 0; i < 3; i++ {
		select {
		case q := <-reloads:
			assert.Empty(t, q)
		case <-time.After(time.Second):
			t.Fatalf("registry reload %d never happened", i+1)
		}
	}
}
