package usecase

import (
	"context"
	"testing"
	"time"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserUsecase(db *gorm.DB, store *recordingStore) *UserUsecase {
	return NewUserUsecase(repository.NewUserRepository(db), repository.NewTPSRepository(db), store, testutil.TestJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tps := testutil.CreateTPS(t, db, "1", "A", "X", 1)
	uc := newUserUsecase(db, &recordingStore{})

	user, err := uc.Register(RegisterInput{Name: "Budi", Username: "budi", Password: "rahasia", TPSID: &tps.ID})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSaksi, user.Role)
	assert.NotEqual(t, "rahasia", user.Password)

	_, err = uc.Register(RegisterInput{Username: "budi", Password: "lain"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.Register(RegisterInput{Username: "x", Password: "y", Role: "camat"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.Register(RegisterInput{Username: "x", Password: "y", TPSID: testutil.UintPtr(999)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	token, logged, err := uc.Login("budi", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	actor, err := ParseToken([]byte(testutil.TestJWTSecret), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, model.RoleSaksi, actor.Role)

	checked, err := uc.Check(token)
	require.NoError(t, err)
	require.NotNil(t, checked.TPS)
	assert.Equal(t, tps.ID, checked.TPS.ID)

	_, _, err = uc.Login("budi", "salah")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	_, _, err = uc.Login("siapa", "rahasia")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte(testutil.TestJWTSecret)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"role":    "admin",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("bukan-rahasia"))
	require.NoError(t, err)

	for _, tok := range []string{"", "abc.def.ghi", expired, otherSecret} {
		_, err := ParseToken(secret, tok)
		assert.True(t, apperror.Is(err, apperror.KindAuth), tok)
	}
}

func TestUpdateUserAndAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tps := testutil.CreateTPS(t, db, "1", "A", "X", 1)
	saksi := testutil.CreateUser(t, db, "saksi", model.RoleSaksi, nil)
	other := testutil.CreateUser(t, db, "lain", model.RoleSaksi, nil)
	store := &recordingStore{}
	uc := newUserUsecase(db, store)

	name := "Saksi Satu"
	got, err := uc.Update(saksi.ID, UpdateUserInput{Name: &name, TPSID: &tps.ID})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	require.NotNil(t, got.TPSID)
	assert.Equal(t, tps.ID, *got.TPSID)

	actor := Actor{UserID: saksi.ID, Role: model.RoleSaksi}
	got, err = uc.Attendance(context.Background(), actor, saksi.ID, true, image("hadir.jpg"))
	require.NoError(t, err)
	assert.True(t, got.IsAttending)
	require.Len(t, store.put, 1)
	assert.Equal(t, "https://cdn.test/"+store.put[0], got.AttendanceImage)

	_, err = uc.Attendance(context.Background(), actor, other.ID, true, nil)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	page, err := uc.List(0, 10, "saksi", "SAK")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "saksi", page.Results[0].Username)
}
