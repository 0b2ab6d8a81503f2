package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FileInput adalah file upload yang belum disimpan.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type SubmitInput struct {
	Actor       Actor
	Jenis       string
	TPSID       uint
	SuaraPaslon []model.SuaraPaslon

	// Hitungan mentah TPS, nil berarti tidak dikirim.
	SuaraSah           *int
	SuaraTidakSah      *int
	SuaraTidakTerpakai *int
	KertasSuara        *int

	Image *FileInput
}

type SubmitResult struct {
	Suara   *model.Suara
	Created bool
}

type SuaraUsecase struct {
	tx         repository.Transactor
	tpsRepo    repository.TPSRepository
	suaraRepo  repository.SuaraRepository
	paslonRepo repository.PaslonRepository
	userRepo   repository.UserRepository
	store      storage.Store
	strict     bool
}

func NewSuaraUsecase(
	tx repository.Transactor,
	tpsRepo repository.TPSRepository,
	suaraRepo repository.SuaraRepository,
	paslonRepo repository.PaslonRepository,
	userRepo repository.UserRepository,
	store storage.Store,
	strict bool,
) *SuaraUsecase {
	return &SuaraUsecase{
		tx:         tx,
		tpsRepo:    tpsRepo,
		suaraRepo:  suaraRepo,
		paslonRepo: paslonRepo,
		userRepo:   userRepo,
		store:      store,
		strict:     strict,
	}
}

// Submit menyimpan rekap suara satu TPS. Satu TPS hanya punya satu rekap per
// jenis pemilihan: input pertama membuat rekap, input berikutnya menimpa
// daftar suara paslon tanpa mengganti saksi yang pertama kali mengisi.
func (u *SuaraUsecase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	jenis, err := model.ParseJenisPemilihan(in.Jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}

	tps, err := u.tpsRepo.GetByID(in.TPSID)
	if err != nil {
		return nil, notFoundOr(err, "TPS tidak ditemukan")
	}

	user, err := u.userRepo.FindByID(in.Actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Auth("User tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil data user", err)
	}
	if !NewScope(user).CanSubmit(tps.ID) {
		return nil, apperror.Forbidden("Anda tidak ditugaskan di TPS ini")
	}

	if err := u.validateVotes(jenis, in); err != nil {
		return nil, err
	}
	if jenis.WajibFoto() && in.Image == nil {
		return nil, apperror.Validation("Foto C1 wajib diupload")
	}

	var uploaded *storage.Object
	if in.Image != nil {
		key := storage.NewKey(string(jenis)+"/c1", fmt.Sprintf("tps-%d", tps.ID), in.Image.Filename)
		obj, err := u.store.Put(ctx, key, in.Image.ContentType, in.Image.Reader, in.Image.Size)
		if err != nil {
			return nil, apperror.Upstream("Gagal upload foto C1", err)
		}
		uploaded = &obj
	}

	var (
		suara       *model.Suara
		created     bool
		replacedKey string
	)
	for attempt := 1; ; attempt++ {
		suara, created, replacedKey, err = u.upsert(tps.ID, jenis, in, uploaded)
		// insert kalah balapan dengan input lain: ulangi sekali sebagai update
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 1 {
			logging.Log.WithFields(logrus.Fields{"tps_id": tps.ID, "jenis": jenis}).Warn("Rekap suara bentrok, mencoba ulang")
			continue
		}
		break
	}

	if err != nil {
		if uploaded != nil {
			u.deleteObject(ctx, uploaded.Key)
		}
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperror.Conflict("Rekap suara TPS ini sedang diubah, silakan coba lagi")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperror.NotFound("TPS tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal menyimpan rekap suara", err)
	}

	if replacedKey != "" && (uploaded == nil || replacedKey != uploaded.Key) {
		u.deleteObject(ctx, replacedKey)
	}

	logging.Log.WithFields(logrus.Fields{
		"tps_id":  tps.ID,
		"jenis":   jenis,
		"user_id": in.Actor.UserID,
		"created": created,
		"total":   suara.TotalSuaraSah,
	}).Info("Rekap suara disimpan")

	return &SubmitResult{Suara: suara, Created: created}, nil
}

// upsert menjalankan create-atau-update dalam satu transaksi yang mengunci
// baris TPS. Rekap dibaca ulang di dalam transaksi yang sama, lalu
// dikembalikan bersama key foto lama yang tergantikan (jika ada).
func (u *SuaraUsecase) upsert(tpsID uint, jenis model.JenisPemilihan, in SubmitInput, image *storage.Object) (*model.Suara, bool, string, error) {
	var (
		saved       *model.Suara
		created     bool
		replacedKey string
	)

	err := u.tx.WithinTransaction(func(r repository.TxRepositories) error {
		tps, err := r.TPS.LockByID(tpsID)
		if err != nil {
			return err
		}

		existing, err := r.Suara.FindExisting(tpsID, jenis)
		if err != nil {
			return err
		}

		votes := make([]model.SuaraPaslon, len(in.SuaraPaslon))
		for i, v := range in.SuaraPaslon {
			votes[i] = model.SuaraPaslon{PaslonID: v.PaslonID, SuaraSah: v.SuaraSah}
		}
		total := model.HitungTotal(votes)

		if existing == nil {
			suara := &model.Suara{
				TPSID:          tpsID,
				JenisPemilihan: jenis,
				UserID:         in.Actor.UserID,
				SuaraPaslon:    votes,
				TotalSuaraSah:  total,
			}
			if image != nil {
				suara.Image = image.URL
				suara.ImageKey = image.Key
			}
			if err := r.Suara.Create(suara); err != nil {
				return err
			}
			created = true
		} else {
			existing.SuaraPaslon = votes
			existing.TotalSuaraSah = total
			if image != nil {
				replacedKey = existing.ImageKey
				existing.Image = image.URL
				existing.ImageKey = image.Key
			}
			if err := r.Suara.ReplaceVotes(existing); err != nil {
				return err
			}
		}

		rekap := *tps.Rekap(jenis)
		rekap.SuaraSah = total
		if in.SuaraSah != nil {
			rekap.SuaraSah = *in.SuaraSah
		}
		if in.SuaraTidakSah != nil {
			rekap.SuaraTidakSah = *in.SuaraTidakSah
		}
		if in.SuaraTidakTerpakai != nil {
			rekap.SuaraTidakTerpakai = *in.SuaraTidakTerpakai
		}
		if in.KertasSuara != nil {
			rekap.KertasSuara = *in.KertasSuara
		}
		if created || rekap.SaksiID == nil {
			saksiID := in.Actor.UserID
			if existing != nil {
				saksiID = existing.UserID
			}
			rekap.SaksiID = &saksiID
		}
		if err := r.TPS.UpdateRekap(tpsID, jenis, rekap); err != nil {
			return err
		}

		saved, err = r.Suara.FindByTPS(tpsID, jenis)
		return err
	})

	if err != nil {
		return nil, false, "", err
	}
	return saved, created, replacedKey, nil
}

func (u *SuaraUsecase) validateVotes(jenis model.JenisPemilihan, in SubmitInput) error {
	if len(in.SuaraPaslon) == 0 {
		return apperror.Validation("Suara paslon wajib diisi")
	}

	paslon, err := u.paslonRepo.GetByJenis(jenis)
	if err != nil {
		return apperror.Internal("Gagal mengambil data paslon", err)
	}
	known := make(map[uint]bool, len(paslon))
	for _, p := range paslon {
		known[p.ID] = true
	}

	seen := make(map[uint]bool, len(in.SuaraPaslon))
	for _, v := range in.SuaraPaslon {
		if !known[v.PaslonID] {
			return apperror.Validation(fmt.Sprintf("Paslon %d bukan paslon %s", v.PaslonID, jenis.Label()))
		}
		if seen[v.PaslonID] {
			return apperror.Validation(fmt.Sprintf("Paslon %d dikirim lebih dari sekali", v.PaslonID))
		}
		if v.SuaraSah < 0 {
			return apperror.Validation("Suara sah tidak boleh negatif")
		}
		seen[v.PaslonID] = true
	}

	for _, n := range []*int{in.SuaraSah, in.SuaraTidakSah, in.SuaraTidakTerpakai, in.KertasSuara} {
		if n != nil && *n < 0 {
			return apperror.Validation("Jumlah suara tidak boleh negatif")
		}
	}

	total := model.HitungTotal(in.SuaraPaslon)
	mismatch := in.SuaraSah != nil && *in.SuaraSah != total
	partial := len(seen) != len(known)

	if u.strict {
		if partial {
			return apperror.Validation("Suara semua paslon wajib diisi")
		}
		if mismatch {
			return apperror.Validation(fmt.Sprintf("Jumlah suara paslon (%d) tidak sama dengan suara sah (%d)", total, *in.SuaraSah))
		}
	} else if mismatch || partial {
		fields := logrus.Fields{
			"tps_id": in.TPSID,
			"jenis":  jenis,
			"total":  total,
			"paslon": len(seen),
		}
		if in.SuaraSah != nil {
			fields["suara_sah"] = *in.SuaraSah
		}
		logging.Log.WithFields(fields).Warn("Rekap suara tidak konsisten")
	}
	return nil
}

func (u *SuaraUsecase) deleteObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.store.Delete(ctx, key); err != nil {
		logging.Log.WithError(err).WithField("key", key).Error("Gagal menghapus foto C1")
	}
}

func (u *SuaraUsecase) GetByTPS(actor Actor, jenis string, tpsID uint) (*model.Suara, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}

	user, err := u.userRepo.FindByID(actor.UserID)
	if err != nil {
		return nil, apperror.Auth("User tidak ditemukan")
	}
	if !NewScope(user).CanSubmit(tpsID) {
		return nil, apperror.Forbidden("Anda tidak ditugaskan di TPS ini")
	}

	suara, err := u.suaraRepo.FindByTPS(tpsID, j)
	if err != nil {
		return nil, notFoundOr(err, "Rekap suara TPS belum ada")
	}
	return suara, nil
}

func (u *SuaraUsecase) GetByUser(actor Actor, jenis string, userID uint) (*model.Suara, error) {
	j, err := model.ParseJenisPemilihan(jenis)
	if err != nil {
		return nil, apperror.Validation("Jenis pemilihan tidak valid")
	}
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperror.Forbidden("Tidak boleh melihat rekap saksi lain")
	}

	suara, err := u.suaraRepo.FindByUser(userID, j)
	if err != nil {
		return nil, notFoundOr(err, "Rekap suara saksi belum ada")
	}
	return suara, nil
}

// notFoundOr menerjemahkan record not found menjadi NotFound dengan pesan msg.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal(msg, err)
}
