package repository

import (
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

type PaslonRepository interface {
	Create(paslon *model.Paslon) error
	GetByJenis(jenis model.JenisPemilihan) ([]model.Paslon, error)
	GetByID(jenis model.JenisPemilihan, id uint) (*model.Paslon, error)
}

type paslonRepository struct {
	db *gorm.DB
}

func NewPaslonRepository(db *gorm.DB) PaslonRepository {
	return &paslonRepository{db}
}

func (r *paslonRepository) Create(paslon *model.Paslon) error {
	// partai sudah ada, cukup isi tabel relasi paslon_partai
	return r.db.Omit("Partai.*").Create(paslon).Error
}

func (r *paslonRepository) GetByJenis(jenis model.JenisPemilihan) ([]model.Paslon, error) {
	list := []model.Paslon{}
	err := r.db.Preload("Partai").Where("jenis_pemilihan = ?", jenis).Order("no_urut, id").Find(&list).Error
	return list, err
}

func (r *paslonRepository) GetByID(jenis model.JenisPemilihan, id uint) (*model.Paslon, error) {
	var paslon model.Paslon
	err := r.db.Preload("Partai").Where("jenis_pemilihan = ?", jenis).First(&paslon, id).Error
	return &paslon, err
}
