package minhareceita

import (
	"farmregistry/cmd/internal/domain/entity"
	"farmregistry/cmd/internal/utils"
	"strings"
)

type companyResponse struct {
	CNPJ               string `json:"cnpj"`
	LegalName          string `json:"razao_social"`
	TradeName          string `json:"nome_fantasia"`
	City               string `json:"municipio"`
	State              string `json:"uf"`
	MainCNAE           string `json:"cnae_fiscal_descricao"`
	RegistrationStatus string `json:"descricao_situacao_cadastral"`
}

func (c *companyResponse) ToDomain() *entity.Company {
	return &entity.Company{
		CNPJ:      utils.OnlyDigits(c.CNPJ),
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		City:      c.City,
		State:     strings.ToUpper(c.State),
		MainCNAE:  c.MainCNAE,
		RegStatus: translateStatus(c.RegistrationStatus),
	}
}

func translateStatus(status string) entity.RegStatus {
	switch strings.ToUpper(status) {
	case "ATIVA":
		return entity.StatusActive
	case "BAIXADA":
		return entity.StatusClosed
	case "SUSPENSA":
		return entity.StatusSuspended
	case "INAPTA":
		return entity.StatusUnfit
	default:
		return entity.StatusUnknown
	}
}
