package repository

import (
	"controle_frete/internal/models"

	"gorm.io/gorm"
)

// PrecoFilter narrows a paginated price listing.
type PrecoFilter struct {
	Marca  string
	Search string
	Page   int
	Limit  int
}

type PrecoRepository interface {
	Create(preco *models.Preco) error
	GetByID(id string) (*models.Preco, error)
	List(filter PrecoFilter) ([]models.Preco, int64, error)
	Marcas() ([]string, error)
	Update(preco *models.Preco) error
	Delete(id string) error
}

type precoRepository struct {
	db *gorm.DB
}

func NewPrecoRepository(db *gorm.DB) PrecoRepository {
	return &precoRepository{db: db}
}

func (r *precoRepository) Create(preco *models.Preco) error {
	return r.db.Create(preco).Error
}

func (r *precoRepository) GetByID(id string) (*models.Preco, error) {
	var preco models.Preco
	err := r.db.First(&preco, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &preco, nil
}

func (r *precoRepository) List(filter PrecoFilter) ([]models.Preco, int64, error) {
	query := r.db.Model(&models.Preco{})

	if filter.Marca != "" {
		query = query.Where("marca = ?", filter.Marca)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("codigo ILIKE ? OR descricao ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var precos []models.Preco
	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("marca asc, codigo asc").Offset(offset).Limit(filter.Limit).Find(&precos).Error
	return precos, total, err
}

func (r *precoRepository) Marcas() ([]string, error) {
	var marcas []string
	err := r.db.Model(&models.Preco{}).Distinct("marca").Order("marca asc").Pluck("marca", &marcas).Error
	return marcas, err
}

func (r *precoRepository) Update(preco *models.Preco) error {
	return r.db.Save(preco).Error
}

func (r *precoRepository) Delete(id string) error {
	return r.db.Delete(&models.Preco{}, "id = ?", id).Error
}
