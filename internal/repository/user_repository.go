package repository

import (
	"strings"

	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Paginate(page, limit int, role model.Role, username string) ([]model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Omit("TPS").Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Omit("TPS").Save(user).Error
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("TPS").First(&user, id).Error
	return &user, err
}

func (r *userRepository) Paginate(page, limit int, role model.Role, username string) ([]model.User, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if role != "" {
			db = db.Where("role = ?", role)
		}
		if username != "" {
			db = db.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(username)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.Model(&model.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []model.User{}
	err := r.db.Scopes(filter).Preload("TPS").Order("id").Offset(page * limit).Limit(limit).Find(&users).Error
	return users, total, err
}
