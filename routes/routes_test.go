package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-guide/auth"
	"checkin-guide/cache"
	"checkin-guide/config"
	"checkin-guide/controllers"
	"checkin-guide/logger"
	"checkin-guide/mapper"
	"checkin-guide/media"
	"checkin-guide/services"
	"checkin-guide/store"
)

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	lg := logger.Discard()
	files, err := media.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	d := services.Deps{
		Store:  store.NewMemoryStore(),
		Schema: mapper.ContentSchema,
		Cache:  cache.New(cache.Options{StaleTime: time.Minute}, lg.Logger),
		Files:  files,
		Log:    lg,
	}
	apartments := services.NewApartmentService(d)
	bookings := services.NewBookingService(d, apartments)
	mediaSvc := services.NewMediaService(d, apartments, 1<<20)
	bulk := services.NewBulkService(d, apartments)
	gate := auth.Options{Secret: "letmein", SigningKey: []byte("signing-key"), TTL: time.Hour}

	h := Handlers{
		Apartments: controllers.NewApartmentController(apartments, bulk, lg),
		Bookings:   controllers.NewBookingController(bookings, lg),
		Guests:     controllers.NewGuestController(services.NewGuestService(d, apartments), lg),
		Media:      controllers.NewMediaController(mediaSvc, lg),
		Links:      controllers.NewLinkController(services.NewLinkService(apartments, bookings, mediaSvc, "https://guide.example"), lg),
		Bulk:       controllers.NewBulkController(bulk, lg),
		Auth:       controllers.NewAuthController(gate, lg),
		Validation: controllers.NewValidationController(),
	}
	r := SetupRouter(h, Options{
		Security: config.SecurityConfig{CorsOrigins: []string{"*"}},
		Auth: config.AuthConfig{
			SessionSecret: "0123456789abcdef0123456789abcdef",
			SessionTTL:    time.Hour,
			CookieName:    "checkin_manager",
		},
		Gate:       gate,
		UploadDir:  files.Dir(),
		PublicPath: "/uploads",
	}, lg)
	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestManagerRoutesNeedSession(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodGet, "/api/manager/apartments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = s.do(http.MethodPost, "/api/auth/login", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/api/auth/check", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, string(env.Data))
}

func TestManagerFlow(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"password": "letmein"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/manager/apartments", map[string]string{"apartment_number": "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Обязательное поле", env.Fields["title"])

	w, env = s.do(http.MethodPost, "/api/manager/apartments", map[string]string{
		"title":            "Студия",
		"apartment_number": "12",
		"lock_code":        "1111",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var apt struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &apt))
	require.NotEmpty(t, apt.ID)

	w, env = s.do(http.MethodGet, "/api/manager/apartments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	w, env = s.do(http.MethodPost, "/api/manager/bulk/mass-update", map[string]any{
		"ids":   []string{},
		"patch": map[string]string{"lock_code": "2"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Fields["ids"])

	w, env = s.do(http.MethodGet, "/api/guide/"+apt.ID+"?lock=9999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var guide struct {
		LockCode  string `json:"lock_code"`
		GuestName string `json:"guest_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &guide))
	assert.Equal(t, "9999", guide.LockCode)
	assert.Equal(t, "Гость", guide.GuestName)

	w, _ = s.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w, _ = s.do(http.MethodGet, "/api/manager/apartments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuideUnknownApartment(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodGet, "/api/guide/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Квартира не найдена", env.Error)
}

func TestValidateForm(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"password": "letmein"})
	require.Equal(t, http.StatusOK, w.Code)

	type result struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}

	w, env := s.do(http.MethodPost, "/api/manager/validate/booking", map[string]any{
		"values": map[string]string{"checkin_date": "01.05.2024"},
		"fields": []string{"checkin_date"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var res result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.Valid)
	assert.Equal(t, map[string]string{"checkin_date": "Формат даты: ГГГГ-ММ-ДД"}, res.Errors)

	w, env = s.do(http.MethodPost, "/api/manager/validate/guest", map[string]any{
		"values": map[string]string{"apartment_id": "a1", "name": "Анна"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	res = result{}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	w, _ = s.do(http.MethodPost, "/api/manager/validate/invoice", map[string]any{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMultipartUploadKeepsMeta(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"password": "letmein"})
	require.Equal(t, http.StatusOK, w.Code)
	w, env := s.do(http.MethodPost, "/api/manager/apartments", map[string]string{"title": "Студия", "apartment_number": "12"})
	require.Equal(t, http.StatusCreated, w.Code)
	var apt struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &apt))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("category", "photo_lock"))
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="door.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/manager/apartments/"+apt.ID+"/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	w, env = s.do(http.MethodGet, "/api/manager/apartments/"+apt.ID+"/media", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var files []struct {
		Meta map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &files))
	require.Len(t, files, 1)
	assert.Equal(t, map[string]string{"filename": "door.jpg", "source": "multipart"}, files[0].Meta)
}
