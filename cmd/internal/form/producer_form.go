// Package form holds the producer create/edit flow used by clients of the
// REST API. Input is checked locally with the same rules the server applies,
// so an invalid form never reaches the network.
package form

import (
	"context"
	"errors"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/utils"
	"farmregistry/cmd/internal/utils/apierror"
	"farmregistry/cmd/internal/utils/validators"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Saver persists a valid form. producerapi.Client satisfies it.
type Saver interface {
	CreateProducer(ctx context.Context, req *contract.ProducerRequest) (*contract.Producer, error)
	UpdateProducer(ctx context.Context, id int64, req *contract.ProducerRequest) (*contract.Producer, error)
}

// InvalidError is returned by Submit when local validation fails or the
// server rejects the payload field by field.
type InvalidError struct {
	Problems *apierror.StructuredError
}

func (e *InvalidError) Error() string {
	fields := e.Problems.Fields()
	slices.Sort(fields)
	return "invalid producer form: " + strings.Join(fields, ", ")
}

// fieldErrors is implemented by saver errors that carry per-field messages,
// such as producerapi.ResponseError.
type fieldErrors interface {
	FieldErrors() map[string][]string
}

var areaFields = []string{
	contract.FieldTotalArea,
	contract.FieldAgriculturalArea,
	contract.FieldVegetationArea,
}

var allFields = []string{
	contract.FieldDocument,
	contract.FieldProducerName,
	contract.FieldFarmName,
	contract.FieldCity,
	contract.FieldState,
	contract.FieldTotalArea,
	contract.FieldAgriculturalArea,
	contract.FieldVegetationArea,
	contract.FieldCrops,
}

// ProducerForm tracks the values and inline errors of one producer being
// created or edited. Errors only show on fields the user has touched, or on
// every field once Submit was attempted.
//
// A ProducerForm is not safe for concurrent use.
type ProducerForm struct {
	values    contract.ProducerRequest
	problems  *apierror.StructuredError
	touched   map[string]bool
	submitted bool

	// id is 0 while creating.
	id int64

	validate *validator.Validate
	saver    Saver
}

func New(validate *validator.Validate, saver Saver) *ProducerForm {
	return &ProducerForm{
		problems: apierror.NewStructured(http.StatusBadRequest),
		touched:  make(map[string]bool),
		validate: validate,
		saver:    saver,
	}
}

// LoadFrom fills the form with an existing producer, switching Submit to
// update it. Loaded fields count as touched.
func (f *ProducerForm) LoadFrom(p *contract.Producer) {
	f.Reset()
	f.id = p.ID
	f.values = contract.ProducerRequest{
		CPFOrCNPJ:        utils.NormalizeDocument(p.CPFOrCNPJ),
		ProducerName:     p.ProducerName,
		FarmName:         p.FarmName,
		City:             p.City,
		State:            p.State,
		TotalArea:        cloneFloat(p.TotalArea),
		AgriculturalArea: cloneFloat(p.AgriculturalArea),
		VegetationArea:   cloneFloat(p.VegetationArea),
		Crops:            slices.Clone(p.Crops),
	}

	for _, field := range allFields {
		f.touched[field] = true
	}
	f.revalidate(allFields...)
}

// SetDocument masks raw as a CPF or CNPJ. Meant to be called on every
// keystroke.
func (f *ProducerForm) SetDocument(raw string) {
	f.values.CPFOrCNPJ = utils.NormalizeDocument(raw)
	f.change(contract.FieldDocument)
}

func (f *ProducerForm) SetProducerName(name string) {
	f.values.ProducerName = name
	f.change(contract.FieldProducerName)
}

func (f *ProducerForm) SetFarmName(name string) {
	f.values.FarmName = name
	f.change(contract.FieldFarmName)
}

func (f *ProducerForm) SetCity(city string) {
	f.values.City = city
	f.change(contract.FieldCity)
}

func (f *ProducerForm) SetState(state string) {
	f.values.State = state
	f.change(contract.FieldState)
}

func (f *ProducerForm) SetCrops(crops ...string) {
	f.values.Crops = slices.Clone(crops)
	f.change(contract.FieldCrops)
}

// SetTotalArea sets the total area in hectares, nil clears it. Like the
// other area setters it re-runs the area rule over all three area fields.
func (f *ProducerForm) SetTotalArea(area *float64) {
	f.values.TotalArea = cloneFloat(area)
	f.areaChanged(contract.FieldTotalArea)
}

func (f *ProducerForm) SetAgriculturalArea(area *float64) {
	f.values.AgriculturalArea = cloneFloat(area)
	f.areaChanged(contract.FieldAgriculturalArea)
}

func (f *ProducerForm) SetVegetationArea(area *float64) {
	f.values.VegetationArea = cloneFloat(area)
	f.areaChanged(contract.FieldVegetationArea)
}

// ID is the producer being edited, 0 while creating.
func (f *ProducerForm) ID() int64 {
	return f.id
}

// Values returns a copy of the current input.
func (f *ProducerForm) Values() contract.ProducerRequest {
	return cloneRequest(&f.values)
}

// Errors returns the visible problems keyed by field name.
func (f *ProducerForm) Errors() map[string][]string {
	out := make(map[string][]string, len(f.problems.Errors))
	for field, problems := range f.problems.Errors {
		out[field] = slices.Clone(problems)
	}
	return out
}

func (f *ProducerForm) Valid() bool {
	return f.problems.Empty()
}

// Submit validates every field and, only if the form is valid, hands the
// cleaned payload to the saver. Validation failures come back as
// *InvalidError without any call to the saver.
func (f *ProducerForm) Submit(ctx context.Context) (*contract.Producer, error) {
	f.submitted = true
	f.revalidate(allFields...)
	if !f.problems.Empty() {
		return nil, &InvalidError{Problems: f.snapshot()}
	}

	req := cloneRequest(&f.values)
	validators.Clean(&req)

	var (
		saved *contract.Producer
		err   error
	)
	if f.id == 0 {
		saved, err = f.saver.CreateProducer(ctx, &req)
	} else {
		saved, err = f.saver.UpdateProducer(ctx, f.id, &req)
	}

	if err != nil {
		var fe fieldErrors
		if errors.As(err, &fe) && len(fe.FieldErrors()) > 0 {
			for field, problems := range fe.FieldErrors() {
				f.problems.Errors[field] = slices.Clone(problems)
			}
			return nil, &InvalidError{Problems: f.snapshot()}
		}
		return nil, fmt.Errorf("save producer: %w", err)
	}

	f.id = saved.ID
	return saved, nil
}

// Reset clears values, errors and touched state and goes back to creating.
func (f *ProducerForm) Reset() {
	f.values = contract.ProducerRequest{}
	f.problems = apierror.NewStructured(http.StatusBadRequest)
	clear(f.touched)
	f.submitted = false
	f.id = 0
}

func (f *ProducerForm) change(field string) {
	f.touched[field] = true
	f.revalidate(field)
}

// areaChanged re-checks all three area fields, so fixing the total alone can
// clear the sum error previously attached to the sub-areas.
func (f *ProducerForm) areaChanged(field string) {
	f.touched[field] = true
	f.revalidate(areaFields...)
}

// revalidate runs the full rule set on a copy of the input and refreshes the
// visible errors of the given fields.
func (f *ProducerForm) revalidate(fields ...string) {
	req := cloneRequest(&f.values)
	result := validators.Producer(f.validate, &req)

	for _, field := range fields {
		delete(f.problems.Errors, field)
		if result == nil || !result.Has(field) {
			continue
		}
		if f.submitted || f.touched[field] {
			f.problems.Errors[field] = result.Errors[field]
		}
	}
}

func (f *ProducerForm) snapshot() *apierror.StructuredError {
	problems := apierror.NewStructured(f.problems.Status)
	problems.Errors = maps.Clone(f.problems.Errors)
	return problems
}

func cloneRequest(req *contract.ProducerRequest) contract.ProducerRequest {
	out := *req
	out.TotalArea = cloneFloat(req.TotalArea)
	out.AgriculturalArea = cloneFloat(req.AgriculturalArea)
	out.VegetationArea = cloneFloat(req.VegetationArea)
	out.Crops = slices.Clone(req.Crops)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
