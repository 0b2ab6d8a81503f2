package repository

import (
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

type SuaraRepository interface {
	FindByTPS(tpsID uint, jenis model.JenisPemilihan) (*model.Suara, error)
	FindByUser(userID uint, jenis model.JenisPemilihan) (*model.Suara, error)
	FindExisting(tpsID uint, jenis model.JenisPemilihan) (*model.Suara, error)
	Create(suara *model.Suara) error
	ReplaceVotes(suara *model.Suara) error
	FindAll(jenis model.JenisPemilihan, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Suara, error)
}

type suaraRepository struct {
	db *gorm.DB
}

func NewSuaraRepository(db *gorm.DB) SuaraRepository {
	return &suaraRepository{db}
}

func (r *suaraRepository) detail() *gorm.DB {
	return r.db.
		Preload("SuaraPaslon", func(db *gorm.DB) *gorm.DB { return db.Order("suara_paslon.id") }).
		Preload("SuaraPaslon.Paslon.Partai").
		Preload("TPS").
		Preload("User")
}

func (r *suaraRepository) FindByTPS(tpsID uint, jenis model.JenisPemilihan) (*model.Suara, error) {
	var suara model.Suara
	err := r.detail().Where("tps_id = ? AND jenis_pemilihan = ?", tpsID, jenis).First(&suara).Error
	return &suara, err
}

func (r *suaraRepository) FindByUser(userID uint, jenis model.JenisPemilihan) (*model.Suara, error) {
	var suara model.Suara
	err := r.detail().Where("user_id = ? AND jenis_pemilihan = ?", userID, jenis).
		Order("updated_at desc").First(&suara).Error
	return &suara, err
}

// FindExisting dipakai di dalam transaksi input suara. Mengembalikan
// (nil, nil) jika TPS belum punya rekap untuk jenis ini.
func (r *suaraRepository) FindExisting(tpsID uint, jenis model.JenisPemilihan) (*model.Suara, error) {
	var list []model.Suara
	// Find + Limit(1) agar GORM tidak mencetak log "record not found"
	err := r.db.Where("tps_id = ? AND jenis_pemilihan = ?", tpsID, jenis).Limit(1).Find(&list).Error
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// Create menyimpan suara beserta daftar SuaraPaslon-nya.
func (r *suaraRepository) Create(suara *model.Suara) error {
	return r.db.Omit("TPS", "User", "SuaraPaslon.Paslon").Create(suara).Error
}

// ReplaceVotes mengganti seluruh daftar suara paslon dan memperbarui
// total serta foto. UserID (saksi pertama) tidak ikut diubah.
func (r *suaraRepository) ReplaceVotes(suara *model.Suara) error {
	if err := r.db.Where("suara_id = ?", suara.ID).Delete(&model.SuaraPaslon{}).Error; err != nil {
		return err
	}

	for i := range suara.SuaraPaslon {
		suara.SuaraPaslon[i].ID = 0
		suara.SuaraPaslon[i].SuaraID = suara.ID
	}
	if len(suara.SuaraPaslon) > 0 {
		if err := r.db.Omit("Paslon").Create(&suara.SuaraPaslon).Error; err != nil {
			return err
		}
	}

	return r.db.Model(suara).Updates(map[string]interface{}{
		"total_suara_sah": suara.TotalSuaraSah,
		"image":           suara.Image,
		"image_key":       suara.ImageKey,
	}).Error
}

// FindAll mengambil semua rekap satu jenis pemilihan, scopes boleh memfilter
// kolom tabel tps (sudah di-join).
func (r *suaraRepository) FindAll(jenis model.JenisPemilihan, scopes ...func(*gorm.DB) *gorm.DB) ([]model.Suara, error) {
	list := []model.Suara{}
	err := r.db.Model(&model.Suara{}).
		Joins("JOIN tps ON tps.id = suara.tps_id AND tps.deleted_at IS NULL").
		Where("suara.jenis_pemilihan = ?", jenis).
		Scopes(scopes...).
		Preload("SuaraPaslon").
		Order("suara.tps_id").
		Find(&list).Error
	return list, err
}
