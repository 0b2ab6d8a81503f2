package model

import (
	"fmt"
	"strings"
)

// JenisPemilihan membedakan dua pemilihan yang direkap bersamaan.
type JenisPemilihan string

const (
	Pilkada JenisPemilihan = "pilkada" // Pemilihan Bupati/Walikota
	Pilgub  JenisPemilihan = "pilgub"  // Pemilihan Gubernur
)

var SemuaJenisPemilihan = []JenisPemilihan{Pilkada, Pilgub}

func ParseJenisPemilihan(s string) (JenisPemilihan, error) {
	switch j := JenisPemilihan(strings.ToLower(strings.TrimSpace(s))); j {
	case Pilkada, Pilgub:
		return j, nil
	case "pilbup":
		// nama lama yang masih dipakai aplikasi saksi
		return Pilkada, nil
	}
	return "", fmt.Errorf("jenis pemilihan tidak dikenal: %q", s)
}

// WajibFoto menentukan apakah foto C1 wajib dilampirkan saat input suara.
func (j JenisPemilihan) WajibFoto() bool {
	return j == Pilgub
}

func (j JenisPemilihan) Label() string {
	switch j {
	case Pilkada:
		return "Pilkada"
	case Pilgub:
		return "Pilgub"
	}
	return string(j)
}
