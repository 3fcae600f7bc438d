package router

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetrail/internal/app/di"
	"lifetrail/internal/config"
	"lifetrail/internal/platform/db"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/storage"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
	"lifetrail/internal/web/webtest"
)

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		TimeZone:        "UTC",
		JWTSecret:       "router-test-secret",
		SessionSecret:   "router-test-flash-secret-0123456789",
		SessionTTL:      time.Hour,
		CacheTTL:        time.Minute,
		LoginRateLimit:  10,
		LoginRateWindow: time.Minute,
	}
	gdb := db.OpenTestDB(t, di.Models()...)
	media, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	tmpl, err := web.Templates(cfg.Location())
	require.NoError(t, err)

	app := di.Build(cfg, gdb, nil, media)
	log, _ := test.NewNullLogger()
	return NewRouter(Handlers{
		Auth:      app.Auth,
		Profile:   app.Profile,
		Dashboard: app.Dashboard,
		Location:  app.Location,
		CheckIn:   app.CheckIn,
		Activity:  app.Activity,
		Music:     app.Music,
		Media:     app.Media,
		Health:    app.Health,
	}, Options{
		Templates:    tmpl,
		JWTSecret:    cfg.JWTSecret,
		Sessions:     app.Sessions,
		Cookie:       app.Cookie,
		MaxBodyBytes: 1 << 20,
		Logger:       log,
	})
}

func withCookie(req *http.Request, ck *http.Cookie) *http.Request {
	if ck != nil {
		req.AddCookie(ck)
	}
	return req
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == jwtmw.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no auth cookie set")
	return nil
}

func signIn(t *testing.T, r http.Handler, username string) *http.Cookie {
	t.Helper()

	w := webtest.Serve(r, webtest.PostForm("/register", webtest.Values(
		"username", username,
		"email", username+"@example.com",
		"password1", "correct-horse-9",
		"password2", "correct-horse-9",
	)))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = webtest.Serve(r, webtest.PostForm("/login", webtest.Values("username", username, "password", "correct-horse-9")))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	return authCookie(t, w)
}

func TestRouter_Public(t *testing.T) {
	r := setupApp(t)

	t.Run("health", func(t *testing.T) {
		w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		w = webtest.Serve(r, httptest.NewRequest(http.MethodHead, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous dashboard redirects to login", func(t *testing.T) {
		w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("anonymous media redirects to login", func(t *testing.T) {
		w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/media/avatars/x.png", nil))
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("login page", func(t *testing.T) {
		w := webtest.Serve(r, httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_SignedInFlow(t *testing.T) {
	r := setupApp(t)
	ck := signIn(t, r, "alice")

	w := webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/", nil), ck))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, alice")
	assert.Contains(t, w.Body.String(), "not yet")

	// Signed-in users skip the login page.
	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/login", nil), ck))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Location, check-in and activity.
	w = webtest.Serve(r, withCookie(webtest.PostForm("/location/", webtest.Values(
		"name", "Office", "address", "1 Main St", "latitude", "31.2", "longitude", "121.5", "is_default", "on",
	)), ck))
	require.Equal(t, http.StatusFound, w.Code)

	w = webtest.Serve(r, withCookie(webtest.PostForm("/checkin/", webtest.Values("status", "completed", "notes", "on time")), ck))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/checkin/", nil), ck))
	assert.Equal(t, http.StatusFound, w.Code, "second visit redirects once checked in")

	w = webtest.Serve(r, withCookie(webtest.PostForm("/activity/", webtest.Values(
		"title", "Standup", "category", "work",
		"start_time", "2026-10-19T09:00", "end_time", "2026-10-19T09:15",
	)), ck))
	require.Equal(t, http.StatusFound, w.Code)

	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/", nil), ck))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "done")
	assert.Contains(t, body, "Office")
	assert.Contains(t, body, "Standup")

	// Logout revokes the session; the old cookie no longer works.
	w = webtest.Serve(r, withCookie(webtest.PostForm("/logout", nil), ck))
	assert.Equal(t, http.StatusFound, w.Code)

	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/", nil), ck))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_DeleteAccount(t *testing.T) {
	r := setupApp(t)
	ck := signIn(t, r, "bob")

	w := webtest.Serve(r, withCookie(webtest.PostForm("/profile/delete", nil), ck))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = webtest.Serve(r, webtest.PostForm("/login", webtest.Values("username", "bob", "password", "correct-horse-9")))
	assert.Equal(t, http.StatusOK, w.Code, "deleted account can no longer sign in")
}

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	avatarSrc = regexp.MustCompile(`src="/media/(avatars/[^"]+)"`)
)

func profileAvatar(t *testing.T, r http.Handler, ck *http.Cookie) string {
	t.Helper()

	w := webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/profile", nil), ck))
	require.Equal(t, http.StatusOK, w.Code)
	m := avatarSrc.FindStringSubmatch(w.Body.String())
	if m == nil {
		return ""
	}
	return m[1]
}

func TestRouter_Avatar(t *testing.T) {
	r := setupApp(t)
	alice := signIn(t, r, "alice")
	bob := signIn(t, r, "bob")
	form := webtest.Values("username", "alice", "email", "alice@example.com")

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`)
	w := webtest.Serve(r, withCookie(webtest.PostMultipart(t, "/profile", form,
		webtest.FormFile{Field: "avatar", Filename: "me.svg", Content: svg}), alice))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, profileAvatar(t, r, alice), "svg avatar must be rejected")

	w = webtest.Serve(r, withCookie(webtest.PostMultipart(t, "/profile", form,
		webtest.FormFile{Field: "avatar", Filename: "me.png", Content: pngHeader}), alice))
	require.Equal(t, http.StatusFound, w.Code)
	key := profileAvatar(t, r, alice)
	require.NotEmpty(t, key)

	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/media/"+key, nil), alice))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "sandbox", w.Header().Get("Content-Security-Policy"))

	w = webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/media/"+key, nil), bob))
	assert.Equal(t, http.StatusNotFound, w.Code, "another user's avatar is not served")
}

func TestRouter_MusicDeleteIsPostOnly(t *testing.T) {
	r := setupApp(t)
	ck := signIn(t, r, "carol")

	w := webtest.Serve(r, withCookie(httptest.NewRequest(http.MethodGet, "/music/delete/1/", nil), ck))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = webtest.Serve(r, withCookie(webtest.PostForm("/music/delete/1/", nil), ck))
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown track")
}
