package export

import (
	"fmt"
	"io"

	"rekap-suara-backend/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetRekap = "Rekap Suara"
	sheetTPS   = "Data TPS"
)

// WriteRekapWorkbook menulis hasil ProjectRekap sebagai file xlsx.
func WriteRekapWorkbook(w io.Writer, p Projection) error {
	header := []interface{}{"Dapil", "Kecamatan", "Desa", "Kode TPS"}
	for _, ps := range p.Paslon {
		header = append(header, fmt.Sprintf("%02d - %s", ps.NoUrut, ps.Panggilan))
	}
	header = append(header, "Total Suara Paslon", "Suara Sah", "Suara Tidak Sah", "Suara Tidak Terpakai", "Kertas Suara")

	rows := make([][]interface{}, 0, len(p.Rows))
	for _, r := range p.Rows {
		row := []interface{}{r.TPS.Dapil, r.TPS.Kecamatan, r.TPS.Desa, r.TPS.KodeTPS}
		for _, n := range r.Suara {
			row = append(row, n)
		}
		row = append(row, r.Total, r.Rekap.SuaraSah, r.Rekap.SuaraTidakSah, r.Rekap.SuaraTidakTerpakai, r.Rekap.KertasSuara)
		rows = append(rows, row)
	}

	return writeSheet(w, fmt.Sprintf("%s %s", sheetRekap, p.Jenis.Label()), header, rows)
}

// WriteTPSWorkbook menulis data TPS beserta hitungan kedua pemilihan.
func WriteTPSWorkbook(w io.Writer, stations []model.TPS) error {
	header := []interface{}{"Kode TPS", "Desa", "Kecamatan", "Dapil"}
	for _, j := range model.SemuaJenisPemilihan {
		l := j.Label()
		header = append(header, l+" - Suara Sah", l+" - Suara Tidak Sah", l+" - Suara Tidak Terpakai", l+" - Kertas Suara")
	}

	rows := make([][]interface{}, 0, len(stations))
	for i := range stations {
		tps := &stations[i]
		row := []interface{}{tps.KodeTPS, tps.Desa, tps.Kecamatan, tps.Dapil}
		for _, j := range model.SemuaJenisPemilihan {
			r := tps.Rekap(j)
			row = append(row, r.SuaraSah, r.SuaraTidakSah, r.SuaraTidakTerpakai, r.KertasSuara)
		}
		rows = append(rows, row)
	}

	return writeSheet(w, sheetTPS, header, rows)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
