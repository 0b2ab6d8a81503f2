package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"rekap-suara-backend/internal/handler"
	"rekap-suara-backend/internal/model"
	"rekap-suara-backend/internal/storage"
	"rekap-suara-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	tps   *model.TPS
	other *model.TPS
	c1    *model.Paslon
	c2    *model.Paslon
	gub   *model.Paslon
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig(t)
	store, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	Setup(app, Dependencies{DB: db, Config: cfg, Store: store})

	s := &testServer{app: app, db: db}
	s.tps = testutil.CreateTPS(t, db, "1", "Padang Barat", "Olo", 1)
	s.other = testutil.CreateTPS(t, db, "2", "Kuranji", "Korong Gadang", 3)
	s.c1 = testutil.CreatePaslon(t, db, model.Pilkada, 1, "Satu")
	s.c2 = testutil.CreatePaslon(t, db, model.Pilkada, 2, "Dua")
	s.gub = testutil.CreatePaslon(t, db, model.Pilgub, 1, "Gub")
	testutil.CreateUser(t, db, "admin", model.RoleAdmin, nil)
	testutil.CreateUser(t, db, "saksi", model.RoleSaksi, &s.tps.ID)
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"username": username, "password": "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestLoginAndCheck(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"username": "saksi", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := s.login(t, "saksi")

	resp = s.do(t, http.MethodGet, "/api/user/check", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/user/check?token="+token, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/user/check", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	saksi := s.login(t, "saksi")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"tanpa token", http.MethodGet, "/api/tps", "", http.StatusUnauthorized},
		{"saksi daftar user", http.MethodGet, "/api/users", saksi, http.StatusForbidden},
		{"saksi buat tps", http.MethodPost, "/api/tps", saksi, http.StatusForbidden},
		{"saksi export", http.MethodGet, "/api/export/tps.xlsx", saksi, http.StatusForbidden},
		{"saksi tps lain", http.MethodGet, fmt.Sprintf("/api/tps/%d", s.other.ID), saksi, http.StatusForbidden},
		{"saksi tps sendiri", http.MethodGet, fmt.Sprintf("/api/tps/%d", s.tps.ID), saksi, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.do(t, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestSubmitCreateThenUpdate(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "saksi")

	body := fiber.Map{
		"tps": s.tps.ID,
		"suaraPaslon": []fiber.Map{
			{"paslonId": s.c1.ID, "suaraSah": 120},
			{"paslonId": s.c2.ID, "suaraSah": 80},
		},
		"suaraSah": 200,
	}
	resp := s.do(t, http.MethodPost, "/api/suara/pilkada", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// nama field lama dari aplikasi saksi tetap diterima
	body["suaraPaslon"] = []fiber.Map{
		{"paslon": s.c1.ID, "jumlahSuaraSah": 125},
		{"paslon": s.c2.ID, "jumlahSuaraSah": 80},
	}
	body["suaraSah"] = 205
	resp = s.do(t, http.MethodPost, "/api/suara/pilkada", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Data []struct {
			Panggilan  string `json:"panggilan"`
			TotalSuara int    `json:"totalSuara"`
			TotalSaksi int    `json:"totalSaksi"`
		} `json:"data"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/suara/pilkada/paslon", token, nil), &got)
	require.Len(t, got.Data, 2)
	assert.Equal(t, 125, got.Data[0].TotalSuara)
	assert.Equal(t, 1, got.Data[0].TotalSaksi)
	assert.Equal(t, 80, got.Data[1].TotalSuara)

	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/suara/pilkada/tps/%d", s.tps.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// saksi tidak boleh input untuk TPS lain
	body["tps"] = s.other.ID
	resp = s.do(t, http.MethodPost, "/api/suara/pilkada", token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitMultipartWithImage(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "saksi")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("tps", fmt.Sprint(s.tps.ID)))
	require.NoError(t, w.WriteField("suaraPaslon", fmt.Sprintf(`[{"paslonId":%d,"suaraSah":42}]`, s.gub.ID)))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="c1.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/suara/pilgub", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got struct {
		Data struct {
			Image         string `json:"image"`
			TotalSuaraSah int    `json:"totalSuaraSah"`
		} `json:"data"`
	}
	decode(t, resp, &got)
	assert.Equal(t, 42, got.Data.TotalSuaraSah)
	assert.True(t, strings.HasPrefix(got.Data.Image, "/uploads/"))

	// pilgub tanpa foto ditolak
	resp = s.do(t, http.MethodPost, "/api/suara/pilgub", token, fiber.Map{
		"tps":         s.tps.ID,
		"suaraPaslon": []fiber.Map{{"paslonId": s.gub.ID, "suaraSah": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDistinctAndRegionReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin")

	var distinct struct {
		Data []string `json:"data"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/tps/distinct/kecamatan?dapil=1", token, nil), &distinct)
	assert.Equal(t, []string{"Padang Barat"}, distinct.Data)

	resp := s.do(t, http.MethodGet, "/api/tps/distinct/rt", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/report/pilkada/region?paslonId=%d", s.c1.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var region struct {
		Data struct {
			Tingkat      string `json:"tingkat"`
			TotalWilayah int64  `json:"totalWilayah"`
		} `json:"data"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/report/pilkada/region", token, nil), &region)
	assert.Equal(t, "dapil", region.Data.Tingkat)
	assert.Equal(t, int64(2), region.Data.TotalWilayah)

	resp = s.do(t, http.MethodGet, "/api/report/summary", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExportWorkbook(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin")

	for _, path := range []string{"/api/export/tps.xlsx", "/api/export/pilkada/tps-paslon.xlsx?dapil=1"} {
		resp := s.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	}

	resp := s.do(t, http.MethodGet, "/api/export/pilpres/tps-paslon.xlsx", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPartaiAndPaslon(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin")

	var partai struct {
		Data model.Partai `json:"data"`
	}
	resp := s.do(t, http.MethodPost, "/api/partai", token, fiber.Map{"nama": "Partai Baru"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &partai)

	paslon := fiber.Map{
		"ketua":      "Ketua",
		"wakilKetua": "Wakil",
		"panggilan":  "KW",
		"noUrut":     3,
		"partai":     []uint{partai.Data.ID},
	}
	resp = s.do(t, http.MethodPost, "/api/paslon/pilkada", token, paslon)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// nomor urut sudah dipakai
	resp = s.do(t, http.MethodPost, "/api/paslon/pilkada", token, paslon)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var list struct {
		Data []model.Paslon `json:"data"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/paslon/pilkada", token, nil), &list)
	require.Len(t, list.Data, 3)
	assert.Equal(t, "KW", list.Data[2].Panggilan)
	require.Len(t, list.Data[2].Partai, 1)

	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/paslon/pilgub/%d", s.c1.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDemotedAdminLosesAccess(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin")

	var other model.User
	require.NoError(t, s.db.Where("username = ?", "saksi").First(&other).Error)
	testutil.CreateUser(t, s.db, "admin2", model.RoleAdmin, nil)
	stale := s.login(t, "admin2")

	var admin2 model.User
	require.NoError(t, s.db.Where("username = ?", "admin2").First(&admin2).Error)
	resp := s.do(t, http.MethodPatch, fmt.Sprintf("/api/user/%d", admin2.ID), token, fiber.Map{"role": "saksi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// token lama admin2 masih berlaku, tetapi role diambil dari database
	resp = s.do(t, http.MethodGet, "/api/users", stale, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/user/%d", other.ID), stale, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
