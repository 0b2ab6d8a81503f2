package model

import "gorm.io/gorm"

// RekapSuara adalah hitungan mentah per pemilihan yang tercatat di TPS.
type RekapSuara struct {
	SuaraSah           int   `json:"suaraSah" gorm:"not null;default:0"`
	SuaraTidakSah      int   `json:"suaraTidakSah" gorm:"not null;default:0"`
	SuaraTidakTerpakai int   `json:"suaraTidakTerpakai" gorm:"not null;default:0"`
	KertasSuara        int   `json:"kertasSuara" gorm:"not null;default:0"`
	SaksiID            *uint `json:"saksiId"`
}

type TPS struct {
	gorm.Model
	Dapil     string `json:"dapil" gorm:"size:100;not null;uniqueIndex:idx_tps_wilayah,priority:1"`
	Kecamatan string `json:"kecamatan" gorm:"size:100;not null;uniqueIndex:idx_tps_wilayah,priority:2"`
	Desa      string `json:"desa" gorm:"size:100;not null;uniqueIndex:idx_tps_wilayah,priority:3"`
	KodeTPS   int    `json:"kodeTPS" gorm:"column:kode_tps;not null;uniqueIndex:idx_tps_wilayah,priority:4"`

	Pilkada RekapSuara `json:"pilkada" gorm:"embedded;embeddedPrefix:pilkada_"`
	Pilgub  RekapSuara `json:"pilgub" gorm:"embedded;embeddedPrefix:pilgub_"`
}

func (TPS) TableName() string {
	return "tps"
}

// Rekap mengembalikan pointer ke blok hitungan milik jenis pemilihan j.
func (t *TPS) Rekap(j JenisPemilihan) *RekapSuara {
	if j == Pilgub {
		return &t.Pilgub
	}
	return &t.Pilkada
}
