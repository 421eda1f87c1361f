package repository

import (
	"controle_frete/internal/models"

	"gorm.io/gorm"
)

type FreteRepository interface {
	Create(frete *models.Frete) error
	GetByID(id string) (*models.Frete, error)
	GetAll() ([]models.Frete, error)
	Update(frete *models.Frete) error
	UpdateStatus(id string, status *string, dataEntrega *string) error
	Delete(id string) error
	Count() (int64, error)
}

type freteRepository struct {
	db *gorm.DB
}

func NewFreteRepository(db *gorm.DB) FreteRepository {
	return &freteRepository{db: db}
}

func (r *freteRepository) Create(frete *models.Frete) error {
	return r.db.Create(frete).Error
}

func (r *freteRepository) GetByID(id string) (*models.Frete, error) {
	var frete models.Frete
	err := r.db.First(&frete, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &frete, nil
}

func (r *freteRepository) GetAll() ([]models.Frete, error) {
	var fretes []models.Frete
	err := r.db.Order("data_emissao desc").Find(&fretes).Error
	return fretes, err
}

func (r *freteRepository) Update(frete *models.Frete) error {
	return r.db.Save(frete).Error
}

// UpdateStatus writes only the status/data_entrega pair, used by the toggle path.
// A map is used so nil values reach the database as explicit NULLs.
func (r *freteRepository) UpdateStatus(id string, status *string, dataEntrega *string) error {
	result := r.db.Model(&models.Frete{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"data_entrega": dataEntrega,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *freteRepository) Delete(id string) error {
	return r.db.Delete(&models.Frete{}, "id = ?", id).Error
}

func (r *freteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Frete{}).Count(&count).Error
	return count, err
}
