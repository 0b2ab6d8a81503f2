// Package export menyusun data rekap per TPS dan menuliskannya ke file Excel.
package export

import (
	"sort"

	"rekap-suara-backend/internal/model"
)

// RekapRow adalah satu baris export: satu TPS dengan suara tiap paslon
// sesuai urutan Projection.Paslon.
type RekapRow struct {
	TPS       model.TPS
	Suara     []int
	Total     int
	Rekap     model.RekapSuara
	HasRecord bool
}

type Projection struct {
	Jenis  model.JenisPemilihan
	Paslon []model.Paslon
	Rows   []RekapRow
}

// ProjectRekap membuat satu baris untuk setiap TPS. TPS yang belum punya
// rekap tetap muncul dengan suara 0.
func ProjectRekap(jenis model.JenisPemilihan, stations []model.TPS, paslon []model.Paslon, records []model.Suara) Projection {
	sortedPaslon := make([]model.Paslon, len(paslon))
	copy(sortedPaslon, paslon)
	sort.SliceStable(sortedPaslon, func(i, j int) bool {
		if sortedPaslon[i].NoUrut != sortedPaslon[j].NoUrut {
			return sortedPaslon[i].NoUrut < sortedPaslon[j].NoUrut
		}
		return sortedPaslon[i].ID < sortedPaslon[j].ID
	})

	col := make(map[uint]int, len(sortedPaslon))
	for i, p := range sortedPaslon {
		col[p.ID] = i
	}

	byTPS := make(map[uint]*model.Suara, len(records))
	for i := range records {
		if records[i].JenisPemilihan == jenis {
			byTPS[records[i].TPSID] = &records[i]
		}
	}

	rows := make([]RekapRow, 0, len(stations))
	for _, tps := range stations {
		row := RekapRow{
			TPS:   tps,
			Suara: make([]int, len(sortedPaslon)),
			Rekap: *tps.Rekap(jenis),
		}
		if s, ok := byTPS[tps.ID]; ok {
			row.HasRecord = true
			for _, sp := range s.SuaraPaslon {
				if i, ok := col[sp.PaslonID]; ok {
					row.Suara[i] += sp.SuaraSah
					row.Total += sp.SuaraSah
				}
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].TPS, rows[j].TPS
		if a.Dapil != b.Dapil {
			return a.Dapil < b.Dapil
		}
		if a.Kecamatan != b.Kecamatan {
			return a.Kecamatan < b.Kecamatan
		}
		if a.Desa != b.Desa {
			return a.Desa < b.Desa
		}
		return a.KodeTPS < b.KodeTPS
	})

	return Projection{Jenis: jenis, Paslon: sortedPaslon, Rows: rows}
}
