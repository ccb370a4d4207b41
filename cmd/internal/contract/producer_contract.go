package contract

// Producer is the wire shape of a registry row, shared by the REST API and
// the client-side registry store.
type Producer struct {
	ID               int64    `json:"id"`
	CPFOrCNPJ        string   `json:"cpfOrCnpj"`
	ProducerName     string   `json:"producerName"`
	FarmName         string   `json:"farmName"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	TotalArea        *float64 `json:"totalArea"`
	AgriculturalArea *float64 `json:"agriculturalArea"`
	VegetationArea   *float64 `json:"vegetationArea"`
	Crops            []string `json:"crops"`
	CreatedAt        string   `json:"created_at"`
}

// ProducerRequest is the create/edit payload. Besides the tags below, a
// struct-level rule keeps agriculturalArea + vegetationArea <= totalArea.
type ProducerRequest struct {
	CPFOrCNPJ        string   `json:"cpfOrCnpj" validate:"required,document"`
	ProducerName     string   `json:"producerName" validate:"required,min=3"`
	FarmName         string   `json:"farmName" validate:"required,min=3"`
	City             string   `json:"city" validate:"required,min=3"`
	State            string   `json:"state" validate:"required,len=2"`
	TotalArea        *float64 `json:"totalArea" validate:"required,gte=0"`
	AgriculturalArea *float64 `json:"agriculturalArea" validate:"required,gte=0"`
	VegetationArea   *float64 `json:"vegetationArea" validate:"required,gte=0"`
	Crops            []string `json:"crops" validate:"required,min=1,nodupes,dive,crop"`
}

// Field keys used in validation error maps.
const (
	FieldDocument         = "cpfOrCnpj"
	FieldProducerName     = "producerName"
	FieldFarmName         = "farmName"
	FieldCity             = "city"
	FieldState            = "state"
	FieldTotalArea        = "totalArea"
	FieldAgriculturalArea = "agriculturalArea"
	FieldVegetationArea   = "vegetationArea"
	FieldCrops            = "crops"
)
