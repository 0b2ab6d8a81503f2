package repository

import (
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TPSRepository interface {
	Create(tps *model.TPS) error
	GetByID(id uint) (*model.TPS, error)
	LockByID(id uint) (*model.TPS, error)
	UpdateRekap(id uint, jenis model.JenisPemilihan, rekap model.RekapSuara) error
	DistinctNames(field filter.DistinctField, region filter.Region) ([]string, error)
	DistinctKode(region filter.Region) ([]int, error)
	Paginate(page, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]model.TPS, int64, error)
	FindAll(scopes ...func(*gorm.DB) *gorm.DB) ([]model.TPS, error)
}

type tpsRepository struct {
	db *gorm.DB
}

func NewTPSRepository(db *gorm.DB) TPSRepository {
	return &tpsRepository{db}
}

// urutan baku daftar TPS: wilayah lalu nomor TPS
const tpsOrder = "tps.dapil, tps.kecamatan, tps.desa, tps.kode_tps"

func (r *tpsRepository) Create(tps *model.TPS) error {
	return r.db.Create(tps).Error
}

func (r *tpsRepository) GetByID(id uint) (*model.TPS, error) {
	var tps model.TPS
	err := r.db.First(&tps, id).Error
	return &tps, err
}

// LockByID mengunci baris TPS sampai transaksi selesai (SELECT ... FOR UPDATE).
// SQLite mengabaikan klausa ini, di sana penulisan sudah berurutan.
func (r *tpsRepository) LockByID(id uint) (*model.TPS, error) {
	var tps model.TPS
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tps, id).Error
	return &tps, err
}

func (r *tpsRepository) UpdateRekap(id uint, jenis model.JenisPemilihan, rekap model.RekapSuara) error {
	prefix := string(jenis) + "_"
	// keberadaan baris sudah dipastikan LockByID, MySQL melaporkan 0 baris
	// jika nilainya tidak berubah
	return r.db.Model(&model.TPS{}).Where("id = ?", id).Updates(map[string]interface{}{
		prefix + "suara_sah":            rekap.SuaraSah,
		prefix + "suara_tidak_sah":      rekap.SuaraTidakSah,
		prefix + "suara_tidak_terpakai": rekap.SuaraTidakTerpakai,
		prefix + "kertas_suara":         rekap.KertasSuara,
		prefix + "saksi_id":             rekap.SaksiID,
	}).Error
}

func (r *tpsRepository) DistinctNames(field filter.DistinctField, region filter.Region) ([]string, error) {
	var names []string
	err := r.db.Model(&model.TPS{}).
		Scopes(region.Apply).
		Distinct(field.Column).
		Order(field.Column).
		Pluck(field.Column, &names).Error
	return names, err
}

func (r *tpsRepository) DistinctKode(region filter.Region) ([]int, error) {
	var kode []int
	err := r.db.Model(&model.TPS{}).
		Scopes(region.Apply).
		Distinct("kode_tps").
		Order("kode_tps").
		Pluck("kode_tps", &kode).Error
	return kode, err
}

func (r *tpsRepository) Paginate(page, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]model.TPS, int64, error) {
	var total int64
	if err := r.db.Model(&model.TPS{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := []model.TPS{}
	err := r.db.Model(&model.TPS{}).Scopes(scopes...).
		Order(tpsOrder).
		Offset(page * limit).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *tpsRepository) FindAll(scopes ...func(*gorm.DB) *gorm.DB) ([]model.TPS, error) {
	list := []model.TPS{}
	err := r.db.Model(&model.TPS{}).Scopes(scopes...).Order(tpsOrder).Find(&list).Error
	return list, err
}
