package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rekap-suara-backend/internal/apperror"
	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/repository"
	"rekap-suara-backend/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUsecase struct {
	repo    repository.UserRepository
	tpsRepo repository.TPSRepository
	store   storage.Store
	secret  []byte
	ttl     time.Duration
}

func NewUserUsecase(repo repository.UserRepository, tpsRepo repository.TPSRepository, store storage.Store, secret string, ttl time.Duration) *UserUsecase {
	return &UserUsecase{repo: repo, tpsRepo: tpsRepo, store: store, secret: []byte(secret), ttl: ttl}
}

type RegisterInput struct {
	Name     string     `json:"name"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	TPSID    *uint      `json:"tpsId"`
}

func (u *UserUsecase) Register(in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, apperror.Validation("Username dan password wajib diisi")
	}
	if in.Role == "" {
		in.Role = model.RoleSaksi
	}
	if !in.Role.Valid() {
		return nil, apperror.Validation("Role harus admin atau saksi")
	}
	if err := u.checkTPS(in.TPSID); err != nil {
		return nil, err
	}

	// 1. Hashing Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Gagal memproses password", err)
	}

	// 2. Simpan ke Database
	user := &model.User{
		Name:     in.Name,
		Username: in.Username,
		Password: string(hashedPassword),
		Role:     in.Role,
		TPSID:    in.TPSID,
	}
	if err := u.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("Username sudah terdaftar")
		}
		return nil, apperror.Internal("Gagal registrasi", err)
	}
	return user, nil
}

func (u *UserUsecase) Login(username, password string) (string, *model.User, error) {
	// 1. Cari user berdasarkan username
	user, err := u.repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperror.Auth("Username atau password salah")
		}
		return "", nil, apperror.Internal("Gagal login", err)
	}

	// 2. Bandingkan Password (Input vs Hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperror.Auth("Username atau password salah")
	}

	// 3. Jika benar, buat Token JWT
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(u.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", nil, apperror.Internal("Gagal membuat token", err)
	}

	return token, user, nil
}

// ParseToken memvalidasi token HS256 dan mengambil user di dalamnya.
func ParseToken(secret []byte, tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metode signing tidak dikenal: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, apperror.Auth("Token tidak valid atau kadaluwarsa")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, apperror.Auth("Token tidak valid")
	}
	// angka di JSON selalu float64
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return Actor{}, apperror.Auth("Token tidak valid")
	}
	role, _ := claims["role"].(string)

	return Actor{UserID: uint(id), Role: model.Role(role)}, nil
}

// Check memvalidasi token dan mengembalikan user terbaru dari database.
func (u *UserUsecase) Check(tokenString string) (*model.User, error) {
	actor, err := ParseToken(u.secret, tokenString)
	if err != nil {
		return nil, err
	}
	user, err := u.repo.FindByID(actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Auth("User tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil data user", err)
	}
	return user, nil
}

func (u *UserUsecase) List(page, limit int, role, username string) (*Page[model.User], error) {
	page, limit = normalizePage(page, limit)
	r := model.Role(role)
	if r != "" && !r.Valid() {
		return nil, apperror.Validation("Role harus admin atau saksi")
	}

	users, total, err := u.repo.Paginate(page, limit, r, strings.TrimSpace(username))
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data user", err)
	}
	return NewPage(users, page, limit, total), nil
}

func (u *UserUsecase) Get(actor Actor, id uint) (*model.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, apperror.Forbidden("Tidak boleh melihat data user lain")
	}
	user, err := u.repo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan")
	}
	return user, nil
}

type UpdateUserInput struct {
	Name     *string     `json:"name"`
	Password *string     `json:"password"`
	Role     *model.Role `json:"role"`
	TPSID    *uint       `json:"tpsId"`
}

func (u *UserUsecase) Update(id uint, in UpdateUserInput) (*model.User, error) {
	user, err := u.repo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan")
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperror.Validation("Role harus admin atau saksi")
		}
		user.Role = *in.Role
	}
	if in.TPSID != nil {
		if err := u.checkTPS(in.TPSID); err != nil {
			return nil, err
		}
		user.TPSID = in.TPSID
		user.TPS = nil
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, apperror.Validation("Password tidak boleh kosong")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal("Gagal memproses password", err)
		}
		user.Password = string(hash)
	}

	if err := u.repo.Update(user); err != nil {
		return nil, apperror.Internal("Gagal mengubah user", err)
	}

	updated, err := u.repo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan")
	}
	return updated, nil
}

// Attendance mencatat kehadiran saksi di TPS, foto opsional.
func (u *UserUsecase) Attendance(ctx context.Context, actor Actor, userID uint, attending bool, image *FileInput) (*model.User, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperror.Forbidden("Tidak boleh mengubah kehadiran user lain")
	}
	user, err := u.repo.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan")
	}

	var newKey string
	if image != nil {
		key := storage.NewKey("kehadiran", fmt.Sprintf("user-%d", user.ID), image.Filename)
		obj, err := u.store.Put(ctx, key, image.ContentType, image.Reader, image.Size)
		if err != nil {
			return nil, apperror.Upstream("Gagal upload foto kehadiran", err)
		}
		newKey = obj.Key
		user.AttendanceImage = obj.URL
	}
	user.IsAttending = attending

	if err := u.repo.Update(user); err != nil {
		if newKey != "" {
			if derr := u.store.Delete(ctx, newKey); derr != nil {
				logging.Log.WithError(derr).Error("Gagal menghapus foto kehadiran")
			}
		}
		return nil, apperror.Internal("Gagal menyimpan kehadiran", err)
	}
	return user, nil
}

func (u *UserUsecase) checkTPS(id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := u.tpsRepo.GetByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Validation("TPS tidak ditemukan")
		}
		return apperror.Internal("Gagal mengambil data TPS", err)
	}
	return nil
}
