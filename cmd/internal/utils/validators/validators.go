package validators

import (
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/entity"
	"farmregistry/cmd/internal/utils"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// New returns a validator with the registry rules registered and JSON
// names used as field names, so error maps are keyed like the payload.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	_ = validate.RegisterValidation("document", Document)
	_ = validate.RegisterValidation("crop", Crop)
	_ = validate.RegisterValidation("nodupes", NoDupes)
	validate.RegisterStructValidation(ProducerAreas, contract.ProducerRequest{})
	return validate
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Document accepts a punctuated CPF or CNPJ. It does not normalize, callers
// mask the input before validating.
func Document(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return utils.ValidateDocument(val)
}

func Crop(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return entity.IsCrop(val)
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}

// ProducerAreas reports "areasum" on both sub-areas when they do not fit in
// the total area. totalArea never carries this error. The rule is skipped
// while any area is missing or negative, those already fail on their own.
func ProducerAreas(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(contract.ProducerRequest)
	if !ok {
		return
	}

	for _, a := range []*float64{req.TotalArea, req.AgriculturalArea, req.VegetationArea} {
		if a == nil || *a < 0 {
			return
		}
	}

	if entity.AreasFit(*req.TotalArea, *req.AgriculturalArea, *req.VegetationArea) {
		return
	}
	sl.ReportError(*req.AgriculturalArea, contract.FieldAgriculturalArea, "AgriculturalArea", "areasum", "")
	sl.ReportError(*req.VegetationArea, contract.FieldVegetationArea, "VegetationArea", "areasum", "")
}
