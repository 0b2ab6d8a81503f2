package usecase

import (
	"errors"
	"strings"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"

	"gorm.io/gorm"
)

type TPSUsecase struct {
	tx       repository.Transactor
	repo     repository.TPSRepository
	userRepo repository.UserRepository
}

func NewTPSUsecase(tx repository.Transactor, repo repository.TPSRepository, userRepo repository.UserRepository) *TPSUsecase {
	return &TPSUsecase{tx: tx, repo: repo, userRepo: userRepo}
}

type CreateTPSInput struct {
	Dapil     string            `json:"dapil"`
	Kecamatan string            `json:"kecamatan"`
	Desa      string            `json:"desa"`
	KodeTPS   int               `json:"kodeTPS"`
	Pilkada   *model.RekapSuara `json:"pilkada"`
	Pilgub    *model.RekapSuara `json:"pilgub"`
}

func (u *TPSUsecase) Create(in CreateTPSInput) (*model.TPS, error) {
	tps := &model.TPS{
		Dapil:     strings.TrimSpace(in.Dapil),
		Kecamatan: strings.TrimSpace(in.Kecamatan),
		Desa:      strings.TrimSpace(in.Desa),
		KodeTPS:   in.KodeTPS,
	}
	if tps.Dapil == "" || tps.Kecamatan == "" || tps.Desa == "" {
		return nil, apperror.Validation("Dapil, kecamatan dan desa wajib diisi")
	}
	if tps.KodeTPS <= 0 {
		return nil, apperror.Validation("Kode TPS harus lebih dari 0")
	}
	if in.Pilkada != nil {
		tps.Pilkada = *in.Pilkada
	}
	if in.Pilgub != nil {
		tps.Pilgub = *in.Pilgub
	}
	for _, j := range model.SemuaJenisPemilihan {
		if negatif(*tps.Rekap(j)) {
			return nil, apperror.Validation("Jumlah suara tidak boleh negatif")
		}
	}

	if err := u.repo.Create(tps); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("TPS dengan wilayah dan kode yang sama sudah ada")
		}
		return nil, apperror.Internal("Gagal membuat TPS", err)
	}
	return tps, nil
}

// RekapPatch berisi hitungan yang ingin diubah, nil berarti tetap.
type RekapPatch struct {
	SuaraSah           *int `json:"suaraSah"`
	SuaraTidakSah      *int `json:"suaraTidakSah"`
	SuaraTidakTerpakai *int `json:"suaraTidakTerpakai"`
	KertasSuara        *int `json:"kertasSuara"`
}

func (p RekapPatch) apply(r model.RekapSuara) model.RekapSuara {
	if p.SuaraSah != nil {
		r.SuaraSah = *p.SuaraSah
	}
	if p.SuaraTidakSah != nil {
		r.SuaraTidakSah = *p.SuaraTidakSah
	}
	if p.SuaraTidakTerpakai != nil {
		r.SuaraTidakTerpakai = *p.SuaraTidakTerpakai
	}
	if p.KertasSuara != nil {
		r.KertasSuara = *p.KertasSuara
	}
	return r
}

// UpdateTPSInput hanya menerima hitungan. Wilayah TPS tidak bisa diubah.
type UpdateTPSInput struct {
	Pilkada *RekapPatch `json:"pilkada"`
	Pilgub  *RekapPatch `json:"pilgub"`
}

func (u *TPSUsecase) UpdateCounters(id uint, in UpdateTPSInput) (*model.TPS, error) {
	tps, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "TPS tidak ditemukan")
	}

	patches := map[model.JenisPemilihan]*RekapPatch{model.Pilkada: in.Pilkada, model.Pilgub: in.Pilgub}
	updates := map[model.JenisPemilihan]model.RekapSuara{}
	for _, j := range model.SemuaJenisPemilihan {
		patch := patches[j]
		if patch == nil {
			continue
		}
		rekap := patch.apply(*tps.Rekap(j))
		if negatif(rekap) {
			return nil, apperror.Validation("Jumlah suara tidak boleh negatif")
		}
		updates[j] = rekap
	}

	// pilkada dan pilgub disimpan bersama, gagal satu berarti tidak ada yang berubah
	err = u.tx.WithinTransaction(func(r repository.TxRepositories) error {
		for _, j := range model.SemuaJenisPemilihan {
			rekap, ok := updates[j]
			if !ok {
				continue
			}
			if err := r.TPS.UpdateRekap(tps.ID, j, rekap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Internal("Gagal memperbarui TPS", err)
	}

	updated, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "TPS tidak ditemukan")
	}
	return updated, nil
}

func (u *TPSUsecase) Get(actor Actor, id uint) (*model.TPS, error) {
	scope, err := u.scope(actor)
	if err != nil {
		return nil, err
	}
	if !scope.CanSubmit(id) {
		return nil, apperror.Forbidden("Anda tidak ditugaskan di TPS ini")
	}

	tps, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "TPS tidak ditemukan")
	}
	return tps, nil
}

// GetByWitness mengambil TPS tempat saksi ditugaskan.
func (u *TPSUsecase) GetByWitness(actor Actor, userID uint) (*model.TPS, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperror.Forbidden("Tidak boleh melihat TPS saksi lain")
	}
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan")
	}
	if user.TPSID == nil {
		return nil, apperror.NotFound("Saksi belum ditugaskan ke TPS")
	}

	tps, err := u.repo.GetByID(*user.TPSID)
	if err != nil {
		return nil, notFoundOr(err, "TPS tidak ditemukan")
	}
	return tps, nil
}

// List mengembalikan TPS berhalaman. Saksi hanya melihat TPS-nya sendiri.
func (u *TPSUsecase) List(actor Actor, set filter.Set, page, limit int) (*Page[model.TPS], error) {
	scope, err := u.scope(actor)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	list, total, err := u.repo.Paginate(page, limit, scope.TPS, set.Apply)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data TPS", err)
	}
	return NewPage(list, page, limit, total), nil
}

// Distinct mengembalikan nilai unik satu field untuk dropdown bertingkat.
// Filter yang sama atau lebih halus dari field diabaikan.
func (u *TPSUsecase) Distinct(field string, region filter.Region) (interface{}, error) {
	f, err := filter.ParseDistinctField(field)
	if err != nil {
		return nil, err
	}
	region = region.Ancestors(f)

	if f.Name == "kodeTPS" {
		kode, err := u.repo.DistinctKode(region)
		if err != nil {
			return nil, apperror.Internal("Gagal mengambil data TPS", err)
		}
		if kode == nil {
			kode = []int{}
		}
		return kode, nil
	}

	names, err := u.repo.DistinctNames(f, region)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data TPS", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (u *TPSUsecase) scope(actor Actor) (Scope, error) {
	user, err := u.userRepo.FindByID(actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Auth("User tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil data user", err)
	}
	return NewScope(user), nil
}

func negatif(r model.RekapSuara) bool {
	return r.SuaraSah < 0 || r.SuaraTidakSah < 0 || r.SuaraTidakTerpakai < 0 || r.KertasSuara < 0
}
