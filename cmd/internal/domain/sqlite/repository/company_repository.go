package repository

import (
	"errors"
	"farmregistry/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultCompanyRepository stores Receita lookups done by the producer
// form's document helper. Rows with Found=false mark CNPJs Receita has no
// record of.
type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// FindByCNPJ looks up a cached company by its 14 bare digits. Negative
// cache rows come back too, check Found.
func (r *DefaultCompanyRepository) FindByCNPJ(cnpj string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.Where("cnpj = ?", cnpj).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Save inserts or refreshes the lookup result of one CNPJ.
func (r *DefaultCompanyRepository) Save(company *entity.Company) error {
	return r.db.Save(company).Error
}

// DeleteStale drops found companies cached before foundBefore and missing
// ones cached before missingBefore, both epoch millis. It returns how many
// rows went away.
func (r *DefaultCompanyRepository) DeleteStale(foundBefore, missingBefore int64) (int64, error) {
	res := r.db.
		Where("(found = ? AND cached_at < ?) OR (found = ? AND cached_at < ?)", true, foundBefore, false, missingBefore).
		Delete(&entity.Company{})
	return res.RowsAffected, res.Error
}
