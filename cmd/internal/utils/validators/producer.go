package validators

import (
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/utils"
	"farmregistry/cmd/internal/utils/apierror"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// Producer cleans req in place (see Clean), then runs every field rule and
// the area rule. It returns nil when req is valid.
func Producer(validate *validator.Validate, req *contract.ProducerRequest) *apierror.StructuredError {
	Clean(req)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if valerr := apierror.FromValidationError(err); valerr != nil {
		return valerr
	}

	log.Errorf("unexpected producer validation failure: %v", err)
	problems := apierror.NewStructured(http.StatusBadRequest)
	problems.Add("body", "Invalid value provided")
	return problems
}

// Clean trims every string of req and punctuates a document carrying
// exactly a CPF or CNPJ worth of digits. Any other document is left as
// typed, so the shape check sees it unchanged.
func Clean(req *contract.ProducerRequest) {
	utils.Sanitize(req)

	switch len(utils.OnlyDigits(req.CPFOrCNPJ)) {
	case utils.CPFDigits, utils.CNPJDigits:
		req.CPFOrCNPJ = utils.NormalizeDocument(req.CPFOrCNPJ)
	}
}
