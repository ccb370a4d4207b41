package service

import (
	"context"
	"errors"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/entity"
	"farmregistry/cmd/internal/utils"
	"farmregistry/cmd/internal/utils/apierror"
	"farmregistry/cmd/internal/utils/validators"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type ProducerRepository interface {
	FindAll(query string) ([]*entity.Producer, error)
	FindByID(id int64) (*entity.Producer, error)
	Save(producer *entity.Producer) error
	Delete(producer *entity.Producer) error
}

// RegistryLoader is notified after every write so cached views can reload.
type RegistryLoader interface {
	Load(ctx context.Context, query string) error
}

type DefaultProducerService struct {
	ProducerRepo ProducerRepository
	Validate     *validator.Validate

	// Registry is optional. When set, it is reloaded in the background
	// after each create, update and delete.
	Registry RegistryLoader
}

func NewProducerService(repo ProducerRepository, validate *validator.Validate) *DefaultProducerService {
	return &DefaultProducerService{
		ProducerRepo: repo,
		Validate:     validate,
	}
}

func (s *DefaultProducerService) GetAllProducers(query string) ([]*contract.Producer, apierror.ErrorResponse) {
	producers, err := s.ProducerRepo.FindAll(query)
	if err != nil {
		log.Errorf("failed to fetch producers: %v", err)
		return nil, apierror.InternalServerError
	}
	return toProducerResponses(producers), nil
}

// ListProducers lets the service act as the registry store's data source
// inside the API process.
func (s *DefaultProducerService) ListProducers(_ context.Context, query string) ([]*contract.Producer, error) {
	producers, err := s.ProducerRepo.FindAll(query)
	if err != nil {
		return nil, fmt.Errorf("list producers: %w", err)
	}
	return toProducerResponses(producers), nil
}

func (s *DefaultProducerService) GetProducerByID(id int64) (*contract.Producer, apierror.ErrorResponse) {
	producer, err := s.ProducerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch producer %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if producer == nil {
		return nil, apierror.NotFoundError
	}
	return toProducerResponse(producer), nil
}

func (s *DefaultProducerService) CreateProducer(req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse) {
	producer, valerr := ValidateProducer(s.Validate, req)
	if valerr != nil {
		return nil, valerr
	}

	now := utils.NowUTC()
	producer.CreatedAt = now
	producer.UpdatedAt = now

	if err := s.ProducerRepo.Save(producer); err != nil {
		log.Errorf("failed to save producer: %v", err)
		return nil, apierror.InternalServerError
	}

	go s.reloadRegistry()
	return toProducerResponse(producer), nil
}

// UpdateProducer replaces every editable field. ID and creation time are
// kept from the stored row.
func (s *DefaultProducerService) UpdateProducer(id int64, req *contract.ProducerRequest) (*contract.Producer, apierror.ErrorResponse) {
	changes, valerr := ValidateProducer(s.Validate, req)
	if valerr != nil {
		return nil, valerr
	}

	producer, err := s.ProducerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch producer %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if producer == nil {
		return nil, apierror.NotFoundError
	}

	changes.ID = producer.ID
	changes.CreatedAt = producer.CreatedAt
	changes.UpdatedAt = utils.NowUTC()

	if err = s.ProducerRepo.Save(changes); err != nil {
		log.Errorf("failed to update producer %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	go s.reloadRegistry()
	return toProducerResponse(changes), nil
}

func (s *DefaultProducerService) DeleteProducer(id int64) apierror.ErrorResponse {
	producer, err := s.ProducerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch producer %d: %v", id, err)
		return apierror.InternalServerError
	}

	if producer == nil {
		return apierror.NotFoundError
	}

	if err = s.ProducerRepo.Delete(producer); err != nil {
		log.Errorf("failed to delete producer %d: %v", id, err)
		return apierror.InternalServerError
	}

	go s.reloadRegistry()
	return nil
}

func (s *DefaultProducerService) reloadRegistry() {
	if s.Registry == nil {
		return
	}

	err := s.Registry.Load(context.Background(), "")
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warnf("registry reload after write failed: %v", err)
	}
}

// ValidateProducer checks req and converts it into an entity without ID
// or timestamps. req is trimmed and its document masked in place.
func ValidateProducer(validate *validator.Validate, req *contract.ProducerRequest) (*entity.Producer, *apierror.StructuredError) {
	if valerr := validators.Producer(validate, req); valerr != nil {
		return nil, valerr
	}

	return &entity.Producer{
		Document:         req.CPFOrCNPJ,
		ProducerName:     req.ProducerName,
		FarmName:         req.FarmName,
		City:             req.City,
		State:            strings.ToUpper(req.State),
		TotalArea:        *req.TotalArea,
		AgriculturalArea: *req.AgriculturalArea,
		VegetationArea:   *req.VegetationArea,
		Crops:            strings.Join(req.Crops, entity.CropSeparator),
	}, nil
}

func toProducerResponses(producers []*entity.Producer) []*contract.Producer {
	resp := make([]*contract.Producer, len(producers))
	for i, p := range producers {
		resp[i] = toProducerResponse(p)
	}
	return resp
}

func toProducerResponse(p *entity.Producer) *contract.Producer {
	total, agricultural, vegetation := p.TotalArea, p.AgriculturalArea, p.VegetationArea
	return &contract.Producer{
		ID:               p.ID,
		CPFOrCNPJ:        p.Document,
		ProducerName:     p.ProducerName,
		FarmName:         p.FarmName,
		City:             p.City,
		State:            p.State,
		TotalArea:        &total,
		AgriculturalArea: &agricultural,
		VegetationArea:   &vegetation,
		Crops:            toCropsArray(p.Crops),
		CreatedAt:        utils.FormatEpoch(p.CreatedAt),
	}
}

func toCropsArray(crops string) []string {
	if len(crops) == 0 {
		return []string{}
	}
	return strings.Split(crops, entity.CropSeparator)
}
