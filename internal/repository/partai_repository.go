package repository

import (
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

type PartaiRepository interface {
	GetAll() ([]model.Partai, error)
	FindByIDs(ids []uint) ([]model.Partai, error)
	Create(partai *model.Partai) error
}

type partaiRepository struct {
	db *gorm.DB
}

func NewPartaiRepository(db *gorm.DB) PartaiRepository {
	return &partaiRepository{db}
}

func (r *partaiRepository) GetAll() ([]model.Partai, error) {
	list := []model.Partai{}
	err := r.db.Order("nama").Find(&list).Error
	return list, err
}

func (r *partaiRepository) FindByIDs(ids []uint) ([]model.Partai, error) {
	list := []model.Partai{}
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *partaiRepository) Create(partai *model.Partai) error {
	return r.db.Create(partai).Error
}
