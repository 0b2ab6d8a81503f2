package usecase

import (
	"context"
	"errors"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/storage"

	"gorm.io/gorm"
)

// PaslonUsecase mengelola data paslon dan partai pengusungnya.
type PaslonUsecase struct {
	paslonRepo repository.PaslonRepository
	partaiRepo repository.PartaiRepository
	store      storage.Store
}

func NewPaslonUsecase(paslonRepo repository.PaslonRepository, partaiRepo repository.PartaiRepository, store storage.Store) *PaslonUsecase {
	return &PaslonUsecase{paslonRepo: paslonRepo, partaiRepo: partaiRepo, store: store}
}

type CreatePartaiInput struct {
	Nama  string
	Image string // URL logo jika tidak upload file
	File  *FileInput
}

func (u *PaslonUsecase) CreatePartai(ctx context.Context, in CreatePartaiInput) (*model.Partai, error) {
	partai := &model.Partai{Nama: strings.TrimSpace(in.Nama), Image: in.Image}
	if partai.Nama == "" {
		return nil, apperror.Validation("Nama partai wajib diisi")
	}

	var key string
	if in.File != nil {
		obj, err := u.store.Put(ctx, storage.NewKey("partai", "logo", in.File.Filename), in.File.ContentType, in.File.Reader, in.File.Size)
		if err != nil {
			return nil, apperror.Upstream("Gagal upload logo partai", err)
		}
		key = obj.Key
		partai.Image = obj.URL
	}

	if err := u.partaiRepo.Create(partai); err != nil {
		if key != "" {
			_ = u.store.Delete(ctx, key)
		}
		return nil, apperror.Internal("Gagal membuat partai", err)
	}
	return partai, nil
}

func (u *PaslonUsecase) ListPartai() ([]model.Partai, error) {
	list, err := u.partaiRepo.GetAll()
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data partai", err)
	}
	return list, nil
}

type CreatePaslonInput struct {
	Ketua      string `json:"ketua"`
	WakilKetua string `json:"wakilKetua"`
	Panggilan  string `json:"panggilan"`
	NoUrut     int    `json:"noUrut"`
	Partai     []uint `json:"partai"`
}

func (u *PaslonUsecase) Create(jenis string, in CreatePaslonInput) (*model.Paslon, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}
	if strings.TrimSpace(in.Ketua) == "" || strings.TrimSpace(in.WakilKetua) == "" {
		return nil, apperror.Validation("Ketua dan wakil wajib diisi")
	}
	if in.NoUrut <= 0 {
		return nil, apperror.Validation("Nomor urut harus lebih dari 0")
	}

	partai, err := u.partaiRepo.FindByIDs(in.Partai)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data partai", err)
	}
	if len(partai) != len(uniqueIDs(in.Partai)) {
		return nil, apperror.Validation("Partai tidak ditemukan")
	}

	paslon := &model.Paslon{
		JenisPemilihan: j,
		Ketua:          strings.TrimSpace(in.Ketua),
		WakilKetua:     strings.TrimSpace(in.WakilKetua),
		Panggilan:      strings.TrimSpace(in.Panggilan),
		NoUrut:         in.NoUrut,
		Partai:         partai,
	}
	if err := u.paslonRepo.Create(paslon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("Nomor urut sudah dipakai paslon lain")
		}
		return nil, apperror.Internal("Gagal membuat paslon", err)
	}
	return paslon, nil
}

func (u *PaslonUsecase) List(jenis string) ([]model.Paslon, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}
	list, err := u.paslonRepo.GetByJenis(j)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data paslon", err)
	}
	return list, nil
}

func (u *PaslonUsecase) Get(jenis string, id uint) (*model.Paslon, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}
	p, err := u.paslonRepo.GetByID(j, id)
	if err != nil {
		return nil, notFoundOr(err, "Paslon tidak ditemukan")
	}
	return p, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
