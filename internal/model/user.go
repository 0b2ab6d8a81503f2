package model

import "gorm.io/gorm"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleSaksi Role = "saksi"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSaksi
}

type User struct {
	gorm.Model
	Name            string `json:"name" gorm:"size:150"`
	Username        string `json:"username" gorm:"size:100;unique;not null"`
	Password        string `json:"-" gorm:"not null"`
	Role            Role   `json:"role" gorm:"size:20;not null;default:saksi;index"`
	TPSID           *uint  `json:"tpsId" gorm:"column:tps_id;index"`
	IsAttending     bool   `json:"isAttending" gorm:"default:false"`
	AttendanceImage string `json:"attendanceImage"`

	TPS *TPS `json:"tps,omitempty" gorm:"foreignKey:TPSID"`
}
