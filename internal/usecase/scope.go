package usecase

import (
	"rekap-suara-backend/internal/model"

	"gorm.io/gorm"
)

// Actor adalah user yang sedang login, diambil dari token JWT.
type Actor struct {
	UserID uint
	Role   model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// Scope membatasi data yang boleh dilihat dan diubah satu user.
type Scope interface {
	// TPS dipasang sebagai gorm scope pada query yang FROM-nya tabel tps.
	TPS(db *gorm.DB) *gorm.DB
	CanSubmit(tpsID uint) bool
	CanViewUser(userID uint) bool
}

// NewScope memilih scope sesuai role user.
func NewScope(user *model.User) Scope {
	if user.Role == model.RoleAdmin {
		return adminScope{}
	}
	return saksiScope{userID: user.ID, tpsID: user.TPSID}
}

type adminScope struct{}

func (adminScope) TPS(db *gorm.DB) *gorm.DB { return db }
func (adminScope) CanSubmit(uint) bool      { return true }
func (adminScope) CanViewUser(uint) bool    { return true }

// saksiScope hanya melihat TPS tempat ia ditugaskan.
type saksiScope struct {
	userID uint
	tpsID  *uint
}

func (s saksiScope) TPS(db *gorm.DB) *gorm.DB {
	if s.tpsID == nil {
		return db.Where("1 = 0")
	}
	return db.Where("tps.id = ?", *s.tpsID)
}

func (s saksiScope) CanSubmit(tpsID uint) bool {
	return s.tpsID != nil && *s.tpsID == tpsID
}

func (s saksiScope) CanViewUser(userID uint) bool {
	return s.userID == userID
}
