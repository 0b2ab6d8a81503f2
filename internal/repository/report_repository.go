package repository

import (
	"strings"
	"time"

	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

// VoteRow adalah satu baris suara paslon yang sudah diratakan bersama
// saksi, TPS dan waktu update rekapnya.
type VoteRow struct {
	PaslonID  uint
	SuaraSah  int
	UserID    uint
	TPSID     uint `gorm:"column:tps_id"`
	UpdatedAt time.Time
}

type ReportRepository interface {
	FlattenVotes(jenis model.JenisPemilihan, region filter.Region) ([]VoteRow, error)
	CountWilayah(level filter.Level, region filter.Region) (int64, error)
	CountWilayahWithSuara(level filter.Level, jenis model.JenisPemilihan, region filter.Region) (int64, error)
	CountSaksi(region filter.Region) (int64, error)
	CountSaksiWithSuara(jenis model.JenisPemilihan, region filter.Region) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

// TPS dianggap sudah ada suara jika rekapnya punya total suara sah > 0
const existsSuara = "EXISTS (SELECT 1 FROM suara WHERE suara.tps_id = tps.id AND suara.jenis_pemilihan = ? AND suara.total_suara_sah > 0 AND suara.deleted_at IS NULL)"

func (r *reportRepository) FlattenVotes(jenis model.JenisPemilihan, region filter.Region) ([]VoteRow, error) {
	rows := []VoteRow{}
	err := r.db.Table("suara_paslon").
		Select("suara_paslon.paslon_id, suara_paslon.suara_sah, suara.user_id, suara.tps_id, suara.updated_at").
		Joins("JOIN suara ON suara.id = suara_paslon.suara_id AND suara.deleted_at IS NULL").
		Joins("JOIN tps ON tps.id = suara.tps_id AND tps.deleted_at IS NULL").
		Where("suara.jenis_pemilihan = ?", jenis).
		Scopes(region.Apply).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) countDistinct(level filter.Level, region filter.Region, extra ...func(*gorm.DB) *gorm.DB) (int64, error) {
	cols := strings.Join(level.KeyColumns(), ", ")
	sub := r.db.Table("tps").
		Select(cols).
		Where("tps.deleted_at IS NULL").
		Scopes(region.Apply).
		Scopes(extra...).
		Group(cols)

	var total int64
	err := r.db.Table("(?) AS w", sub).Count(&total).Error
	return total, err
}

// CountWilayah menghitung jumlah wilayah berbeda pada level di dalam region.
func (r *reportRepository) CountWilayah(level filter.Level, region filter.Region) (int64, error) {
	return r.countDistinct(level, region)
}

func (r *reportRepository) CountWilayahWithSuara(level filter.Level, jenis model.JenisPemilihan, region filter.Region) (int64, error) {
	return r.countDistinct(level, region, func(db *gorm.DB) *gorm.DB {
		return db.Where(existsSuara, jenis)
	})
}

// CountSaksi menghitung user saksi. Tanpa filter wilayah semua saksi dihitung,
// termasuk yang belum ditugaskan ke TPS.
func (r *reportRepository) CountSaksi(region filter.Region) (int64, error) {
	query := r.db.Model(&model.User{}).Where("users.role = ?", model.RoleSaksi)
	if !region.IsEmpty() {
		query = query.Joins("JOIN tps ON tps.id = users.tps_id AND tps.deleted_at IS NULL").Scopes(region.Apply)
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *reportRepository) CountSaksiWithSuara(jenis model.JenisPemilihan, region filter.Region) (int64, error) {
	sub := r.db.Table("suara").
		Select("DISTINCT suara.user_id").
		Joins("JOIN tps ON tps.id = suara.tps_id AND tps.deleted_at IS NULL").
		Where("suara.jenis_pemilihan = ? AND suara.total_suara_sah > 0 AND suara.deleted_at IS NULL", jenis).
		Scopes(region.Apply)

	var total int64
	err := r.db.Table("(?) AS w", sub).Count(&total).Error
	return total, err
}
