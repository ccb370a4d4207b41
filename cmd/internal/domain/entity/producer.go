package entity

// Producer is a registered farm and the individual or company running it.
type Producer struct {
	ID int64 `gorm:"primaryKey"`

	// Document is the punctuated CPF or CNPJ.
	Document     string `gorm:"not null;index"`
	ProducerName string `gorm:"not null"`
	FarmName     string `gorm:"not null"`
	City         string `gorm:"not null"`
	State        string `gorm:"not null;size:2;index"`

	// Areas are in hectares. AgriculturalArea + VegetationArea never
	// exceeds TotalArea for rows written through the service.
	TotalArea        float64 `gorm:"not null"`
	AgriculturalArea float64 `gorm:"not null"`
	VegetationArea   float64 `gorm:"not null"`

	// Crops keeps insertion order, joined by CropSeparator.
	Crops     string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}

// areaTolerance absorbs float rounding, so 0.1 + 0.2 fits in 0.3.
const areaTolerance = 1e-9

// AreasFit reports whether the sub-areas fit inside the total area.
func AreasFit(total, agricultural, vegetation float64) bool {
	return agricultural+vegetation <= total+areaTolerance
}
