package model

import "gorm.io/gorm"

// Suara adalah rekap satu TPS untuk satu jenis pemilihan (form C1).
// Hanya boleh ada satu Suara per (TPS, jenis pemilihan).
type Suara struct {
	gorm.Model
	TPSID          uint           `json:"tpsId" gorm:"column:tps_id;not null;uniqueIndex:idx_suara_tps_jenis,priority:1"`
	JenisPemilihan JenisPemilihan `json:"jenisPemilihan" gorm:"size:20;not null;uniqueIndex:idx_suara_tps_jenis,priority:2"`
	UserID         uint           `json:"userId" gorm:"not null;index"`
	Image          string         `json:"image"`
	ImageKey       string         `json:"-"`
	TotalSuaraSah  int            `json:"totalSuaraSah" gorm:"not null;default:0"`

	SuaraPaslon []SuaraPaslon `json:"suaraPaslon" gorm:"foreignKey:SuaraID;constraint:OnDelete:CASCADE"`

	TPS  *TPS  `json:"tps,omitempty" gorm:"foreignKey:TPSID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Suara) TableName() string {
	return "suara"
}

type SuaraPaslon struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	SuaraID  uint `json:"-" gorm:"not null;index"`
	PaslonID uint `json:"paslonId" gorm:"not null;index"`
	SuaraSah int  `json:"suaraSah" gorm:"not null;default:0"`

	Paslon *Paslon `json:"paslon,omitempty" gorm:"foreignKey:PaslonID"`
}

func (SuaraPaslon) TableName() string {
	return "suara_paslon"
}

// HitungTotal menjumlahkan suara sah semua paslon.
func HitungTotal(list []SuaraPaslon) int {
	total := 0
	for _, sp := range list {
		total += sp.SuaraSah
	}
	return total
}
