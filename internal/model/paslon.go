package model

import (
	"strings"

	"gorm.io/gorm"
)

type Partai struct {
	gorm.Model
	Nama  string `json:"nama" gorm:"size:150;not null"`
	Image string `json:"image"`
}

func (Partai) TableName() string {
	return "partai"
}

// Paslon adalah pasangan calon pada satu jenis pemilihan.
type Paslon struct {
	gorm.Model
	JenisPemilihan JenisPemilihan `json:"jenisPemilihan" gorm:"size:20;not null;uniqueIndex:idx_paslon_no_urut,priority:1"`
	Ketua          string         `json:"ketua" gorm:"size:150;not null"`
	WakilKetua     string         `json:"wakilKetua" gorm:"size:150;not null"`
	Panggilan      string         `json:"panggilan" gorm:"size:100;not null"`
	NoUrut         int            `json:"noUrut" gorm:"not null;uniqueIndex:idx_paslon_no_urut,priority:2"`

	Partai []Partai `json:"partai" gorm:"many2many:paslon_partai;"`
}

func (Paslon) TableName() string {
	return "paslon"
}

// LabelPartai menggabungkan nama partai pengusung untuk ditampilkan.
func (p Paslon) LabelPartai() string {
	names := make([]string, 0, len(p.Partai))
	for _, pt := range p.Partai {
		names = append(names, pt.Nama)
	}
	return strings.Join(names, ", ")
}
