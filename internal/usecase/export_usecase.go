package usecase

import (
	"io"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/export"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
)

type ExportUsecase struct {
	tpsRepo    repository.TPSRepository
	suaraRepo  repository.SuaraRepository
	paslonRepo repository.PaslonRepository
}

func NewExportUsecase(tpsRepo repository.TPSRepository, suaraRepo repository.SuaraRepository, paslonRepo repository.PaslonRepository) *ExportUsecase {
	return &ExportUsecase{tpsRepo: tpsRepo, suaraRepo: suaraRepo, paslonRepo: paslonRepo}
}

// TPS menulis data TPS hasil pencarian (filter substring) ke xlsx.
func (u *ExportUsecase) TPS(w io.Writer, set filter.Set) error {
	stations, err := u.tpsRepo.FindAll(set.Apply)
	if err != nil {
		return apperror.Internal("Gagal mengambil data TPS", err)
	}
	if err := export.WriteTPSWorkbook(w, stations); err != nil {
		return apperror.Internal("Gagal membuat file Excel", err)
	}
	return nil
}

func (u *ExportUsecase) Rekap(jenis string, region filter.Region) (export.Projection, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return export.Projection{}, apperror.Validation("Jenis pemilihan tidak valid")
	}

	stations, err := u.tpsRepo.FindAll(region.Apply)
	if err != nil {
		return export.Projection{}, apperror.Internal("Gagal mengambil data TPS", err)
	}
	paslon, err := u.paslonRepo.GetByJenis(j)
	if err != nil {
		return export.Projection{}, apperror.Internal("Gagal mengambil data paslon", err)
	}
	records, err := u.suaraRepo.FindAll(j, region.Apply)
	if err != nil {
		return export.Projection{}, apperror.Internal("Gagal mengambil rekap suara", err)
	}

	return export.ProjectRekap(j, stations, paslon, records), nil
}

// WriteRekap menulis rekap suara per TPS per paslon ke xlsx.
func (u *ExportUsecase) WriteRekap(w io.Writer, jenis string, region filter.Region) error {
	p, err := u.Rekap(jenis, region)
	if err != nil {
		return err
	}
	if err := export.WriteRekapWorkbook(w, p); err != nil {
		return apperror.Internal("Gagal membuat file Excel", err)
	}
	return nil
}
