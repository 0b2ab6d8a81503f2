// Package filter menerjemahkan query parameter menjadi kondisi query GORM
// berdasarkan skema yang eksplisit: setiap parameter yang dikenal punya tipe
// dan strategi pencocokan sendiri, parameter lain diabaikan.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"rekap-suara-backend/internal/apperror"

	"gorm.io/gorm"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

type Strategy int

const (
	Equal    Strategy = iota // kolom = nilai
	Contains                 // LOWER(kolom) LIKE %nilai% (case-insensitive)
	HasSuara                 // ada/tidak ada rekap suara untuk jenis pemilihan Column
)

type Field struct {
	Param    string
	Column   string
	Kind     Kind
	Strategy Strategy
}

type Schema []Field

// Condition adalah satu parameter yang sudah di-parse sesuai Field-nya.
type Condition struct {
	Field Field
	Str   string
	Int   int
	Bool  bool
}

func (c Condition) Value() any {
	switch c.Field.Kind {
	case KindInt:
		return c.Int
	case KindBool:
		return c.Bool
	}
	return c.Str
}

type Set struct {
	conds []Condition
}

// Parse membaca parameter lewat get (misalnya fiber.Ctx.Query).
// Parameter kosong dianggap tidak diisi.
func (s Schema) Parse(get func(key string) string) (Set, error) {
	var set Set
	for _, f := range s {
		raw := strings.TrimSpace(get(f.Param))
		if raw == "" {
			continue
		}
		cond := Condition{Field: f}
		switch f.Kind {
		case KindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return Set{}, apperror.Validation(fmt.Sprintf("Parameter %s harus berupa angka", f.Param))
			}
			cond.Int = n
		case KindBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return Set{}, apperror.Validation(fmt.Sprintf("Parameter %s harus true atau false", f.Param))
			}
			cond.Bool = b
		default:
			cond.Str = raw
		}
		set.conds = append(set.conds, cond)
	}
	return set, nil
}

func (s Set) Get(param string) (Condition, bool) {
	for _, c := range s.conds {
		if c.Field.Param == param {
			return c, true
		}
	}
	return Condition{}, false
}

func (s Set) Len() int { return len(s.conds) }

// likeEscaper membuat % dan _ dari input dicocokkan sebagai huruf biasa.
// Escape memakai '!' karena backslash diperlakukan berbeda oleh MySQL dan Postgres.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Apply menambahkan WHERE ke query yang FROM-nya tabel tps.
func (s Set) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range s.conds {
		switch c.Field.Strategy {
		case Contains:
			pattern := "%" + likeEscaper.Replace(strings.ToLower(c.Str)) + "%"
			db = db.Where("LOWER("+c.Field.Column+") LIKE ? ESCAPE '!'", pattern)
		case HasSuara:
			exists := "EXISTS (SELECT 1 FROM suara WHERE suara.tps_id = tps.id AND suara.jenis_pemilihan = ? AND suara.deleted_at IS NULL)"
			if !c.Bool {
				exists = "NOT " + exists
			}
			db = db.Where(exists, c.Field.Column)
		default:
			db = db.Where(c.Field.Column+" = ?", c.Value())
		}
	}
	return db
}
