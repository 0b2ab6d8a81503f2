package export

import (
	"bytes"
	"testing"

	"rekap-suara-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func tps(id uint, dapil, kec, desa string, kode int) model.TPS {
	return model.TPS{Model: gorm.Model{ID: id}, Dapil: dapil, Kecamatan: kec, Desa: desa, KodeTPS: kode}
}

func paslon(id uint, noUrut int, panggilan string) model.Paslon {
	return model.Paslon{Model: gorm.Model{ID: id}, JenisPemilihan: model.Pilkada, NoUrut: noUrut, Panggilan: panggilan}
}

func TestProjectRekap(t *testing.T) {
	stations := []model.TPS{
		tps(3, "2", "B", "Y", 1),
		tps(1, "1", "A", "X", 10),
		tps(2, "1", "A", "X", 2),
	}
	stations[0].Pilkada.SuaraSah = 30

	ps := []model.Paslon{paslon(20, 2, "Dua"), paslon(10, 1, "Satu")}
	records := []model.Suara{
		{TPSID: 3, JenisPemilihan: model.Pilkada, SuaraPaslon: []model.SuaraPaslon{{PaslonID: 10, SuaraSah: 12}, {PaslonID: 20, SuaraSah: 18}}},
		// rekap jenis lain diabaikan
		{TPSID: 1, JenisPemilihan: model.Pilgub, SuaraPaslon: []model.SuaraPaslon{{PaslonID: 10, SuaraSah: 99}}},
	}

	p := ProjectRekap(model.Pilkada, stations, ps, records)

	require.Len(t, p.Rows, 3)
	assert.Equal(t, "Satu", p.Paslon[0].Panggilan)

	assert.Equal(t, 2, p.Rows[0].TPS.KodeTPS)
	assert.Equal(t, 10, p.Rows[1].TPS.KodeTPS)
	assert.Equal(t, []int{0, 0}, p.Rows[1].Suara)
	assert.False(t, p.Rows[1].HasRecord)

	last := p.Rows[2]
	assert.True(t, last.HasRecord)
	assert.Equal(t, []int{12, 18}, last.Suara)
	assert.Equal(t, 30, last.Total)
	assert.Equal(t, 30, last.Rekap.SuaraSah)
}

func TestWriteRekapWorkbook(t *testing.T) {
	stations := []model.TPS{tps(1, "1", "A", "X", 1), tps(2, "1", "A", "X", 2)}
	ps := []model.Paslon{paslon(10, 1, "Satu")}
	records := []model.Suara{{TPSID: 2, JenisPemilihan: model.Pilkada, SuaraPaslon: []model.SuaraPaslon{{PaslonID: 10, SuaraSah: 7}}}}

	var buf bytes.Buffer
	require.NoError(t, WriteRekapWorkbook(&buf, ProjectRekap(model.Pilkada, stations, ps, records)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Rekap Suara Pilkada")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "01 - Satu", rows[0][4])
	assert.Equal(t, "0", rows[1][4])
	assert.Equal(t, "7", rows[2][4])
}

func TestWriteTPSWorkbook(t *testing.T) {
	s := tps(1, "1", "A", "X", 5)
	s.Pilgub.KertasSuara = 300

	var buf bytes.Buffer
	require.NoError(t, WriteTPSWorkbook(&buf, []model.TPS{s}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data TPS")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pilgub - Kertas Suara", rows[0][11])
	assert.Equal(t, "5", rows[1][0])
	assert.Equal(t, "300", rows[1][11])
}
