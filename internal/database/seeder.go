package database

import (
	"fmt"

	"rekap-suara-backend/internal/logging"
	"rekap-suara-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions mengatur data contoh yang dibuat. Semua langkah idempotent,
// seeder aman dijalankan berulang kali.
type SeedOptions struct {
	AdminPassword string
	SaksiPassword string
}

func SeedAll(db *gorm.DB, opts SeedOptions) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// 1. Seed Partai
		namaPartai := []string{"Partai Nusantara", "Partai Harapan Rakyat", "Partai Karya Bersama"}
		partai := make([]model.Partai, len(namaPartai))
		for i, nama := range namaPartai {
			partai[i] = model.Partai{Nama: nama}
			if err := tx.FirstOrCreate(&partai[i], model.Partai{Nama: nama}).Error; err != nil {
				return fmt.Errorf("seed partai: %w", err)
			}
		}

		// 2. Seed Paslon untuk kedua pemilihan
		paslon := []struct {
			jenis     model.JenisPemilihan
			noUrut    int
			ketua     string
			wakil     string
			panggilan string
			partai    []model.Partai
		}{
			{model.Pilkada, 1, "Ahmad Fauzi", "Rina Marlina", "Fauzi-Rina", partai[:1]},
			{model.Pilkada, 2, "Budi Santoso", "Dewi Lestari", "BuDe", partai[1:]},
			{model.Pilgub, 1, "Hendra Gunawan", "Sari Wulandari", "HeSa", partai[:2]},
			{model.Pilgub, 2, "Irwan Prayitno", "Yuliana Putri", "IrYu", partai[2:]},
		}
		for _, p := range paslon {
			row := model.Paslon{
				JenisPemilihan: p.jenis,
				NoUrut:         p.noUrut,
				Ketua:          p.ketua,
				WakilKetua:     p.wakil,
				Panggilan:      p.panggilan,
			}
			err := tx.Where(model.Paslon{JenisPemilihan: p.jenis, NoUrut: p.noUrut}).
				Attrs(row).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("seed paslon %s %d: %w", p.jenis, p.noUrut, err)
			}
			if err := tx.Model(&row).Association("Partai").Replace(p.partai); err != nil {
				return fmt.Errorf("seed partai paslon: %w", err)
			}
		}

		// 3. Seed TPS contoh, dua desa per kecamatan
		wilayah := []struct{ dapil, kecamatan, desa string }{
			{"1", "Padang Barat", "Belakang Tangsi"},
			{"1", "Padang Barat", "Olo"},
			{"2", "Kuranji", "Pasar Ambacang"},
			{"2", "Kuranji", "Korong Gadang"},
		}
		var stations []model.TPS
		for _, w := range wilayah {
			for kode := 1; kode <= 2; kode++ {
				tps := model.TPS{Dapil: w.dapil, Kecamatan: w.kecamatan, Desa: w.desa, KodeTPS: kode}
				if err := tx.FirstOrCreate(&tps, tps).Error; err != nil {
					return fmt.Errorf("seed tps: %w", err)
				}
				stations = append(stations, tps)
			}
		}

		// 4. Seed akun admin
		if err := seedUser(tx, "admin", "Administrator", model.RoleAdmin, nil, opts.AdminPassword); err != nil {
			return err
		}

		// 5. Seed satu saksi untuk tiap TPS
		for i := range stations {
			username := fmt.Sprintf("saksi%02d", i+1)
			name := fmt.Sprintf("Saksi TPS %d %s", stations[i].KodeTPS, stations[i].Desa)
			if err := seedUser(tx, username, name, model.RoleSaksi, &stations[i].ID, opts.SaksiPassword); err != nil {
				return err
			}
		}

		logging.Log.Infof("Seeding selesai: %d partai, %d paslon, %d TPS", len(partai), len(paslon), len(stations))
		return nil
	})
}

func seedUser(tx *gorm.DB, username, name string, role model.Role, tpsID *uint, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{Username: username, Name: name, Role: role, TPSID: tpsID, Password: string(hashed)}
	result := tx.Where(model.User{Username: username}).Attrs(user).FirstOrCreate(&user)
	if result.Error != nil {
		return fmt.Errorf("seed user %s: %w", username, result.Error)
	}

	// Paksa update password agar selalu sinkron meskipun user sudah ada
	if err := tx.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return fmt.Errorf("update password %s: %w", username, err)
	}
	return nil
}
