package repository

import (
	"errors"
	"farmregistry/cmd/internal/domain/entity"
	"strings"

	"gorm.io/gorm"
)

// likeEscaper makes % and _ in a search query match themselves.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type DefaultProducerRepository struct {
	db *gorm.DB
}

func NewProducerRepository(db *gorm.DB) *DefaultProducerRepository {
	return &DefaultProducerRepository{db: db}
}

// FindAll returns producers in insertion order. A non-empty query matches
// a case-insensitive literal substring of the names, city, state or
// document.
func (r *DefaultProducerRepository) FindAll(query string) ([]*entity.Producer, error) {
	tx := r.db.Order("id ASC")

	query = strings.TrimSpace(query)
	if query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		tx = tx.Where(
			`LOWER(producer_name) LIKE ? ESCAPE '\' OR LOWER(farm_name) LIKE ? ESCAPE '\' OR `+
				`LOWER(city) LIKE ? ESCAPE '\' OR LOWER(state) LIKE ? ESCAPE '\' OR document LIKE ? ESCAPE '\'`,
			like, like, like, like, like,
		)
	}

	producers := []*entity.Producer{}
	if err := tx.Find(&producers).Error; err != nil {
		return nil, err
	}
	return producers, nil
}

func (r *DefaultProducerRepository) FindByID(id int64) (*entity.Producer, error) {
	var producer entity.Producer
	err := r.db.First(&producer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &producer, nil
}

func (r *DefaultProducerRepository) Save(producer *entity.Producer) error {
	return r.db.Save(producer).Error
}

func (r *DefaultProducerRepository) Delete(producer *entity.Producer) error {
	return r.db.Delete(producer).Error
}
