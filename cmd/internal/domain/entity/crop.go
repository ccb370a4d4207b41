package entity

import "slices"

// Crop is one entry of the closed crop vocabulary a farm may declare.
type Crop string

const (
	CropSoy       Crop = "Soja"
	CropCorn      Crop = "Milho"
	CropCotton    Crop = "Algodão"
	CropCoffee    Crop = "Café"
	CropSugarcane Crop = "Cana de Açúcar"
)

// CropSeparator joins crops in the database column. Crop names contain
// spaces, so they are comma separated.
const CropSeparator = ","

var Crops = []Crop{CropSoy, CropCorn, CropCotton, CropCoffee, CropSugarcane}

func IsCrop(name string) bool {
	return slices.Contains(Crops, Crop(name))
}
