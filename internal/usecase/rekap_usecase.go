package usecase

import (
	"sort"
	"time"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
)

// Waktu ditampilkan dalam WIB (Asia/Jakarta, tanpa DST).
var wib = time.FixedZone("WIB", 7*60*60)

const LayoutWaktu = "2006-01-02 15:04:05"

type RekapPaslon struct {
	PaslonID    uint    `json:"paslonId"`
	NoUrut      int     `json:"noUrut"`
	Ketua       string  `json:"ketua"`
	WakilKetua  string  `json:"wakilKetua"`
	Panggilan   string  `json:"panggilan"`
	Partai      string  `json:"partai"`
	TotalSuara  int     `json:"totalSuara"`
	TotalSaksi  int     `json:"totalSaksi"`
	LastUpdated *string `json:"lastUpdated"`
}

type Capaian struct {
	Total     int64                          `json:"total"`
	WithSuara map[model.JenisPemilihan]int64 `json:"withSuara"`
}

type Ringkasan struct {
	Dapil     Capaian `json:"dapil"`
	Kecamatan Capaian `json:"kecamatan"`
	Desa      Capaian `json:"desa"`
	TPS       Capaian `json:"tps"`
	Saksi     Capaian `json:"saksi"`
}

type LaporanDaerah struct {
	Tingkat               filter.Level `json:"tingkat"`
	TotalWilayah          int64        `json:"totalWilayah"`
	TotalWilayahWithSuara int64        `json:"totalWilayahWithSuara"`
	TotalTPS              int64        `json:"totalTPS"`
	TotalTPSWithSuara     int64        `json:"totalTPSWithSuara"`

	// Hanya diisi jika filter menunjuk satu TPS dan paslonId dikirim.
	TotalSuaraSahPerPaslon      *int `json:"totalSuaraSahPerPaslon,omitempty"`
	TotalSuaraSahPerSelectedTPS *int `json:"totalSuaraSahPerSelectedTPS,omitempty"`
}

type RekapUsecase struct {
	paslonRepo repository.PaslonRepository
	reportRepo repository.ReportRepository
}

func NewRekapUsecase(paslonRepo repository.PaslonRepository, reportRepo repository.ReportRepository) *RekapUsecase {
	return &RekapUsecase{paslonRepo: paslonRepo, reportRepo: reportRepo}
}

// PerPaslon menghitung total suara setiap paslon di dalam region. Paslon yang
// belum mendapat suara tetap muncul dengan total 0.
func (u *RekapUsecase) PerPaslon(jenis string, region filter.Region) ([]RekapPaslon, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}

	paslon, err := u.paslonRepo.GetByJenis(j)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data paslon", err)
	}

	rows, err := u.reportRepo.FlattenVotes(j, region)
	if err != nil {
		return nil, apperror.Internal("Gagal menghitung rekap suara", err)
	}
	return RollupPaslon(paslon, rows), nil
}

func (u *RekapUsecase) Paslon(jenis string, paslonID uint, region filter.Region) (*RekapPaslon, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}

	p, err := u.paslonRepo.GetByID(j, paslonID)
	if err != nil {
		return nil, notFoundOr(err, "Paslon tidak ditemukan")
	}

	rows, err := u.reportRepo.FlattenVotes(j, region)
	if err != nil {
		return nil, apperror.Internal("Gagal menghitung rekap suara", err)
	}
	result := RollupPaslon([]model.Paslon{*p}, rows)
	return &result[0], nil
}

// RollupPaslon mengelompokkan baris suara per paslon. Hasil diurutkan
// berdasarkan nomor urut, lalu ID.
func RollupPaslon(paslon []model.Paslon, rows []repository.VoteRow) []RekapPaslon {
	type acc struct {
		total  int
		saksi  map[uint]struct{}
		latest time.Time
	}
	byPaslon := make(map[uint]*acc, len(paslon))
	for _, p := range paslon {
		byPaslon[p.ID] = &acc{saksi: map[uint]struct{}{}}
	}

	for _, r := range rows {
		a, ok := byPaslon[r.PaslonID]
		if !ok {
			continue
		}
		a.total += r.SuaraSah
		a.saksi[r.UserID] = struct{}{}
		if r.UpdatedAt.After(a.latest) {
			a.latest = r.UpdatedAt
		}
	}

	sorted := make([]model.Paslon, len(paslon))
	copy(sorted, paslon)
	sort.SliceStable(sorted, func(i, k int) bool {
		if sorted[i].NoUrut != sorted[k].NoUrut {
			return sorted[i].NoUrut < sorted[k].NoUrut
		}
		return sorted[i].ID < sorted[k].ID
	})

	result := make([]RekapPaslon, 0, len(sorted))
	for _, p := range sorted {
		a := byPaslon[p.ID]
		item := RekapPaslon{
			PaslonID:   p.ID,
			NoUrut:     p.NoUrut,
			Ketua:      p.Ketua,
			WakilKetua: p.WakilKetua,
			Panggilan:  p.Panggilan,
			Partai:     p.LabelPartai(),
			TotalSuara: a.total,
			TotalSaksi: len(a.saksi),
		}
		if !a.latest.IsZero() {
			s := a.latest.In(wib).Format(LayoutWaktu)
			item.LastUpdated = &s
		}
		result = append(result, item)
	}
	return result
}

// Ringkasan menghitung berapa wilayah, TPS dan saksi yang sudah
// melaporkan suara. Tanpa jenis, kedua pemilihan dihitung.
func (u *RekapUsecase) Ringkasan(region filter.Region, jenis string) (*Ringkasan, error) {
	semua := model.SemuaJenisPemilihan
	if jenis != "" {
		j, err := model.ParseJenisPemilihan(jenis)
		if err != nil {
			return nil, apperror.Validation("Jenis pemilihan tidak valid")
		}
		semua = []model.JenisPemilihan{j}
	}

	var out Ringkasan
	levels := []struct {
		level filter.Level
		dest  *Capaian
	}{
		{filter.LevelDapil, &out.Dapil},
		{filter.LevelKecamatan, &out.Kecamatan},
		{filter.LevelDesa, &out.Desa},
		{filter.LevelTPS, &out.TPS},
	}

	for _, l := range levels {
		total, err := u.reportRepo.CountWilayah(l.level, region)
		if err != nil {
			return nil, apperror.Internal("Gagal menghitung wilayah", err)
		}
		l.dest.Total = total
		l.dest.WithSuara = make(map[model.JenisPemilihan]int64, len(semua))
		for _, j := range semua {
			n, err := u.reportRepo.CountWilayahWithSuara(l.level, j, region)
			if err != nil {
				return nil, apperror.Internal("Gagal menghitung wilayah", err)
			}
			l.dest.WithSuara[j] = n
		}
	}

	totalSaksi, err := u.reportRepo.CountSaksi(region)
	if err != nil {
		return nil, apperror.Internal("Gagal menghitung saksi", err)
	}
	out.Saksi.Total = totalSaksi
	out.Saksi.WithSuara = make(map[model.JenisPemilihan]int64, len(semua))
	for _, j := range semua {
		n, err := u.reportRepo.CountSaksiWithSuara(j, region)
		if err != nil {
			return nil, apperror.Internal("Gagal menghitung saksi", err)
		}
		out.Saksi.WithSuara[j] = n
	}

	return &out, nil
}

// LaporanDaerah menghitung capaian satu tingkat di bawah filter wilayah
// paling spesifik. Mengembalikan nil jika hanya paslonId yang dikirim.
func (u *RekapUsecase) LaporanDaerah(jenis string, region filter.Region, paslonID *uint) (*LaporanDaerah, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}
	if region.IsEmpty() && paslonID != nil {
		return nil, nil
	}

	out := &LaporanDaerah{Tingkat: region.NextLevel()}

	if out.TotalWilayah, err = u.reportRepo.CountWilayah(out.Tingkat, region); err != nil {
		return nil, apperror.Internal("Gagal menghitung wilayah", err)
	}
	if out.TotalWilayahWithSuara, err = u.reportRepo.CountWilayahWithSuara(out.Tingkat, j, region); err != nil {
		return nil, apperror.Internal("Gagal menghitung wilayah", err)
	}
	if out.TotalTPS, err = u.reportRepo.CountWilayah(filter.LevelTPS, region); err != nil {
		return nil, apperror.Internal("Gagal menghitung TPS", err)
	}
	if out.TotalTPSWithSuara, err = u.reportRepo.CountWilayahWithSuara(filter.LevelTPS, j, region); err != nil {
		return nil, apperror.Internal("Gagal menghitung TPS", err)
	}

	if region.IsComplete() && paslonID != nil {
		if _, err := u.paslonRepo.GetByID(j, *paslonID); err != nil {
			return nil, notFoundOr(err, "Paslon tidak ditemukan")
		}

		rows, err := u.reportRepo.FlattenVotes(j, region)
		if err != nil {
			return nil, apperror.Internal("Gagal menghitung rekap suara", err)
		}
		perPaslon, perTPS := 0, 0
		for _, r := range rows {
			perTPS += r.SuaraSah
			if r.PaslonID == *paslonID {
				perPaslon += r.SuaraSah
			}
		}
		out.TotalSuaraSahPerPaslon = &perPaslon
		out.TotalSuaraSahPerSelectedTPS = &perTPS
	}

	return out, nil
}
