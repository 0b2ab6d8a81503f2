package filter

import (
	"rekap-suara-backend/internal/apperror"

	"gorm.io/gorm"
)

// RegionSchema dipakai endpoint agregasi: semua parameter dicocokkan persis.
var RegionSchema = Schema{
	{Param: "dapil", Column: "tps.dapil", Kind: KindString, Strategy: Equal},
	{Param: "kecamatan", Column: "tps.kecamatan", Kind: KindString, Strategy: Equal},
	{Param: "desa", Column: "tps.desa", Kind: KindString, Strategy: Equal},
	{Param: "kodeTPS", Column: "tps.kode_tps", Kind: KindInt, Strategy: Equal},
}

// StationSearchSchema dipakai daftar TPS (pagination) dan export data TPS.
var StationSearchSchema = Schema{
	{Param: "dapil", Column: "tps.dapil", Kind: KindString, Strategy: Contains},
	{Param: "kecamatan", Column: "tps.kecamatan", Kind: KindString, Strategy: Contains},
	{Param: "desa", Column: "tps.desa", Kind: KindString, Strategy: Contains},
	{Param: "kodeTPS", Column: "tps.kode_tps", Kind: KindInt, Strategy: Equal},
	{Param: "pilkada", Column: "pilkada", Kind: KindBool, Strategy: HasSuara},
	{Param: "pilbup", Column: "pilkada", Kind: KindBool, Strategy: HasSuara},
	{Param: "pilgub", Column: "pilgub", Kind: KindBool, Strategy: HasSuara},
}

type Level string

const (
	LevelDapil     Level = "dapil"
	LevelKecamatan Level = "kecamatan"
	LevelDesa      Level = "desa"
	LevelTPS       Level = "tps"
)

// KeyColumns adalah kolom yang mengidentifikasi satu wilayah pada level ini.
// Desa diidentifikasi bersama leluhurnya karena nama desa bisa kembar.
func (l Level) KeyColumns() []string {
	switch l {
	case LevelDapil:
		return []string{"tps.dapil"}
	case LevelKecamatan:
		return []string{"tps.dapil", "tps.kecamatan"}
	case LevelDesa:
		return []string{"tps.dapil", "tps.kecamatan", "tps.desa"}
	}
	return []string{"tps.id"}
}

// Region adalah filter wilayah hasil RegionSchema.
type Region struct {
	Dapil     string
	Kecamatan string
	Desa      string
	KodeTPS   *int
}

func ParseRegion(get func(key string) string) (Region, error) {
	set, err := RegionSchema.Parse(get)
	if err != nil {
		return Region{}, err
	}
	return RegionFromSet(set), nil
}

func RegionFromSet(set Set) Region {
	var r Region
	if c, ok := set.Get("dapil"); ok {
		r.Dapil = c.Str
	}
	if c, ok := set.Get("kecamatan"); ok {
		r.Kecamatan = c.Str
	}
	if c, ok := set.Get("desa"); ok {
		r.Desa = c.Str
	}
	if c, ok := set.Get("kodeTPS"); ok {
		n := c.Int
		r.KodeTPS = &n
	}
	return r
}

func (r Region) IsEmpty() bool {
	return r.Dapil == "" && r.Kecamatan == "" && r.Desa == "" && r.KodeTPS == nil
}

// IsComplete true jika filter menunjuk tepat satu TPS.
func (r Region) IsComplete() bool {
	return r.Dapil != "" && r.Kecamatan != "" && r.Desa != "" && r.KodeTPS != nil
}

// NextLevel adalah level satu tingkat di bawah filter paling spesifik.
func (r Region) NextLevel() Level {
	switch {
	case r.KodeTPS != nil, r.Desa != "":
		return LevelTPS
	case r.Kecamatan != "":
		return LevelDesa
	case r.Dapil != "":
		return LevelKecamatan
	}
	return LevelDapil
}

func (r Region) Apply(db *gorm.DB) *gorm.DB {
	if r.Dapil != "" {
		db = db.Where("tps.dapil = ?", r.Dapil)
	}
	if r.Kecamatan != "" {
		db = db.Where("tps.kecamatan = ?", r.Kecamatan)
	}
	if r.Desa != "" {
		db = db.Where("tps.desa = ?", r.Desa)
	}
	if r.KodeTPS != nil {
		db = db.Where("tps.kode_tps = ?", *r.KodeTPS)
	}
	return db
}

// DistinctField memetakan nama field publik ke kolom dan filter leluhurnya.
type DistinctField struct {
	Name   string
	Column string
}

var distinctFields = map[string]DistinctField{
	"dapil":     {Name: "dapil", Column: "dapil"},
	"kecamatan": {Name: "kecamatan", Column: "kecamatan"},
	"desa":      {Name: "desa", Column: "desa"},
	"kodeTPS":   {Name: "kodeTPS", Column: "kode_tps"},
}

func ParseDistinctField(name string) (DistinctField, error) {
	f, ok := distinctFields[name]
	if !ok {
		return DistinctField{}, apperror.Validation("Field harus salah satu dari dapil, kecamatan, desa, kodeTPS")
	}
	return f, nil
}

// Ancestors membuang filter yang sama atau lebih halus dari field,
// sehingga daftar dropdown hanya dipersempit oleh leluhurnya.
func (r Region) Ancestors(f DistinctField) Region {
	out := Region{}
	switch f.Name {
	case "kodeTPS":
		out.Desa = r.Desa
		fallthrough
	case "desa":
		out.Kecamatan = r.Kecamatan
		fallthrough
	case "kecamatan":
		out.Dapil = r.Dapil
	}
	return out
}
