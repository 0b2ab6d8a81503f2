package usecase

import (
	"errors"
	"testing"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/filter"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTPSUsecase(db *gorm.DB) *TPSUsecase {
	return NewTPSUsecase(repository.NewTransactor(db), repository.NewTPSRepository(db), repository.NewUserRepository(db))
}

func TestCreateTPS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uc := newTPSUsecase(db)

	tps, err := uc.Create(CreateTPSInput{Dapil: " 1 ", Kecamatan: "A", Desa: "X", KodeTPS: 1, Pilgub: &model.RekapSuara{KertasSuara: 300}})
	require.NoError(t, err)
	assert.Equal(t, "1", tps.Dapil)
	assert.Equal(t, 300, tps.Pilgub.KertasSuara)

	cases := []CreateTPSInput{
		{Dapil: "1", Kecamatan: "A", Desa: "X", KodeTPS: 1},
		{Dapil: "1", Kecamatan: "", Desa: "X", KodeTPS: 2},
		{Dapil: "1", Kecamatan: "A", Desa: "X", KodeTPS: 0},
		{Dapil: "1", Kecamatan: "A", Desa: "X", KodeTPS: 3, Pilkada: &model.RekapSuara{SuaraSah: -1}},
	}
	for _, in := range cases {
		_, err := uc.Create(in)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "%+v", in)
	}
}

func TestUpdateCountersMergesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uc := newTPSUsecase(db)
	tps, err := uc.Create(CreateTPSInput{Dapil: "1", Kecamatan: "A", Desa: "X", KodeTPS: 1, Pilkada: &model.RekapSuara{SuaraSah: 10, KertasSuara: 300}})
	require.NoError(t, err)

	tidakSah := 4
	got, err := uc.UpdateCounters(tps.ID, UpdateTPSInput{Pilkada: &RekapPatch{SuaraTidakSah: &tidakSah}})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Pilkada.SuaraSah)
	assert.Equal(t, 4, got.Pilkada.SuaraTidakSah)
	assert.Equal(t, 300, got.Pilkada.KertasSuara)
	assert.Equal(t, "X", got.Desa)

	neg := -2
	_, err = uc.UpdateCounters(tps.ID, UpdateTPSInput{Pilgub: &RekapPatch{KertasSuara: &neg}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.UpdateCounters(404, UpdateTPSInput{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

// pilgubFailsTPSRepo gagal saat menyimpan hitungan pilgub.
type pilgubFailsTPSRepo struct {
	repository.TPSRepository
}

func (r pilgubFailsTPSRepo) UpdateRekap(id uint, jenis model.JenisPemilihan, rekap model.RekapSuara) error {
	if jenis == model.Pilgub {
		return errors.New("disk penuh")
	}
	return r.TPSRepository.UpdateRekap(id, jenis, rekap)
}

type pilgubFailsTransactor struct {
	db *gorm.DB
}

func (t pilgubFailsTransactor) WithinTransaction(fn func(repository.TxRepositories) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(repository.TxRepositories{
			TPS:   pilgubFailsTPSRepo{repository.NewTPSRepository(tx)},
			Suara: repository.NewSuaraRepository(tx),
		})
	})
}

func TestUpdateCountersIsAtomic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tps := testutil.CreateTPS(t, db, "1", "A", "X", 1)
	uc := newTPSUsecase(db)
	uc.tx = pilgubFailsTransactor{db: db}

	_, err := uc.UpdateCounters(tps.ID, UpdateTPSInput{
		Pilkada: &RekapPatch{SuaraSah: testutil.IntPtr(150)},
		Pilgub:  &RekapPatch{SuaraSah: testutil.IntPtr(140)},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInternal))

	got, err := repository.NewTPSRepository(db).GetByID(tps.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Pilkada.SuaraSah)
	assert.Equal(t, 0, got.Pilgub.SuaraSah)
}

func TestListTPSScopedBySaksi(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := testutil.CreateTPS(t, db, "1", "A", "X", 1)
	testutil.CreateTPS(t, db, "1", "A", "X", 2)
	saksi := testutil.CreateUser(t, db, "saksi", model.RoleSaksi, &a.ID)
	tanpaTPS := testutil.CreateUser(t, db, "baru", model.RoleSaksi, nil)
	admin := testutil.CreateUser(t, db, "admin", model.RoleAdmin, nil)
	uc := newTPSUsecase(db)

	page, err := uc.List(Actor{UserID: admin.ID, Role: model.RoleAdmin}, filter.Set{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalRows)
	assert.Equal(t, DefaultLimit, page.Limit)
	assert.Equal(t, 1, page.TotalPage)

	page, err = uc.List(Actor{UserID: saksi.ID, Role: model.RoleSaksi}, filter.Set{}, 0, 500)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, a.ID, page.Results[0].ID)
	assert.Equal(t, MaxLimit, page.Limit)

	page, err = uc.List(Actor{UserID: tanpaTPS.ID, Role: model.RoleSaksi}, filter.Set{}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.NotNil(t, page.Results)

	_, err = uc.Get(Actor{UserID: saksi.ID, Role: model.RoleSaksi}, a.ID+1)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	got, err := uc.GetByWitness(Actor{UserID: saksi.ID, Role: model.RoleSaksi}, saksi.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = uc.GetByWitness(Actor{UserID: admin.ID, Role: model.RoleAdmin}, tanpaTPS.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDistinctHierarchy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTPS(t, db, "1", "A", "X", 1)
	testutil.CreateTPS(t, db, "1", "A", "X", 12)
	testutil.CreateTPS(t, db, "1", "B", "Y", 3)
	testutil.CreateTPS(t, db, "2", "C", "Z", 1)
	uc := newTPSUsecase(db)

	// filter desa diabaikan saat meminta daftar desa
	got, err := uc.Distinct("desa", filter.Region{Dapil: "1", Desa: "Z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, got)

	got, err = uc.Distinct("kodeTPS", filter.Region{Dapil: "1", Kecamatan: "A", Desa: "X"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 12}, got)

	got, err = uc.Distinct("kecamatan", filter.Region{Dapil: "9"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	_, err = uc.Distinct("provinsi", filter.Region{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
