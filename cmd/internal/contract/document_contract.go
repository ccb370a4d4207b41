package contract

const (
	DocumentCPF  = "CPF"
	DocumentCNPJ = "CNPJ"
)

type DocumentResponse struct {
	Input            string           `json:"input"`
	Normalized       string           `json:"normalized"`
	Kind             string           `json:"kind,omitempty"`
	ShapeValid       bool             `json:"shape_valid"`
	CheckDigitsValid bool             `json:"check_digits_valid"`
	Company          *CompanyResponse `json:"company,omitempty"`
}

type CompanyResponse struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	City      string `json:"city"`
	State     string `json:"state"`
	MainCNAE  string `json:"main_cnae"`
	RegStatus string `json:"registration_status"`
	Cached    bool   `json:"cached"`
}
