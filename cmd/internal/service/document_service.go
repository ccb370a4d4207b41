package service

import (
	"context"
	"errors"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/entity"
	"farmregistry/cmd/internal/infrastructure/minhareceita"
	"farmregistry/cmd/internal/utils"
	"farmregistry/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type CompanyRepository interface {
	Save(company *entity.Company) error
	FindByCNPJ(cnpj string) (*entity.Company, error)
}

type CompanyLookup interface {
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error)
}

// DocumentService backs the CPF/CNPJ helper endpoint the producer form
// uses to mask input and prefill company data.
type DocumentService struct {
	Lookup      CompanyLookup
	CompanyRepo CompanyRepository
}

func NewDocumentService(lookup CompanyLookup, companyRepo CompanyRepository) *DocumentService {
	return &DocumentService{
		Lookup:      lookup,
		CompanyRepo: companyRepo,
	}
}

// InspectDocument masks raw, classifies it and checks its digits. For a
// CNPJ with valid check digits the Receita registration is attached when
// one exists.
func (d *DocumentService) InspectDocument(ctx context.Context, raw string) (*contract.DocumentResponse, apierror.ErrorResponse) {
	normalized := utils.NormalizeDocument(raw)
	digits := utils.OnlyDigits(normalized)

	resp := &contract.DocumentResponse{
		Input:      raw,
		Normalized: normalized,
		ShapeValid: utils.ValidateDocument(normalized),
	}

	if !resp.ShapeValid {
		return resp, nil
	}

	if utils.IsCNPJDocument(normalized) {
		resp.Kind = contract.DocumentCNPJ
		resp.CheckDigitsValid = utils.IsCNPJValid(digits)
	} else {
		resp.Kind = contract.DocumentCPF
		resp.CheckDigitsValid = utils.IsCPFValid(digits)
	}

	if resp.Kind != contract.DocumentCNPJ || !resp.CheckDigitsValid {
		return resp, nil
	}

	company, cached, apierr := d.findCompany(ctx, digits)
	if apierr != nil {
		return nil, apierr
	}

	if company != nil {
		resp.Company = toCompanyResp(company, cached)
	}
	return resp, nil
}

// findCompany resolves a CNPJ through the local cache first. It returns the
// company (nil when Receita has no record), whether it came from the cache
// and a possible error response.
func (d *DocumentService) findCompany(ctx context.Context, cnpj string) (*entity.Company, bool, apierror.ErrorResponse) {
	cached, err := d.CompanyRepo.FindByCNPJ(cnpj)
	if err != nil {
		log.Errorf("failed to find company by cnpj %s: %v", cnpj, err)
		return nil, false, apierror.InternalServerError
	}

	if cached != nil {
		if cached.Found {
			return cached, true, nil
		}
		return nil, true, nil
	}

	company, err := d.Lookup.GetByCNPJ(ctx, cnpj)
	if errors.Is(err, minhareceita.ErrNotFound) {
		d.cacheNegativeResult(cnpj)
		return nil, false, nil
	}

	if err != nil {
		log.Errorf("failed to fetch company by cnpj %s: %v", cnpj, err)
		return nil, false, apierror.LookupFailedError
	}

	company.Found = true
	company.CachedAt = utils.NowUTC()
	if err = d.CompanyRepo.Save(company); err != nil {
		// The lookup succeeded, only the cache write failed.
		log.Errorf("failed to save company cache for CNPJ %s: %v", cnpj, err)
	}
	return company, false, nil
}

func (d *DocumentService) cacheNegativeResult(cnpj string) {
	err := d.CompanyRepo.Save(&entity.Company{
		CNPJ:     cnpj,
		Found:    false,
		CachedAt: utils.NowUTC(),
	})
	if err != nil {
		log.Warnf("failed to cache missing CNPJ %s: %v", cnpj, err)
	}
}

func toCompanyResp(c *entity.Company, cached bool) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		CNPJ:      c.CNPJ,
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		City:      c.City,
		State:     c.State,
		MainCNAE:  c.MainCNAE,
		RegStatus: string(c.RegStatus),
		Cached:    cached,
	}
}
