// Package webtest provides helpers for page handler tests.
package webtest

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
)

const flashSecret = "webtest-flash-secret-0123456789ab"

// NewFlashStore returns the flash store used by Engine.
func NewFlashStore() *flash.Store {
	return flash.NewStore(flashSecret, false)
}

// Engine returns a gin engine with the page templates loaded. A non-zero
// userID is injected as the signed-in user for every request.
func Engine(t testing.TB, userID uint) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validation.Init()

	tmpl, err := web.Templates(time.UTC)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	if userID != 0 {
		r.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, userID)
			c.Set(jwtmw.ContextSessionID, "test-session")
			c.Next()
		})
	}
	return r
}

// PostForm builds a urlencoded POST request.
func PostForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// PostMultipart builds a multipart POST request.
func PostMultipart(t testing.TB, path string, values url.Values, files ...FormFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vs := range values {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("failed to write field: %v", err)
			}
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// Flashes returns the flash messages set on the response.
func Flashes(store *flash.Store, w *httptest.ResponseRecorder) []flash.Message {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		c.Request.AddCookie(ck)
	}
	return store.Pop(c)
}

// FirstFlash returns the first flash message, or a zero Message.
func FirstFlash(store *flash.Store, w *httptest.ResponseRecorder) flash.Message {
	msgs := Flashes(store, w)
	if len(msgs) == 0 {
		return flash.Message{}
	}
	return msgs[0]
}

// Serve runs req through r and returns the recorder.
func Serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Values is a shorthand for building url.Values from pairs.
func Values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Add(pairs[i], pairs[i+1])
	}
	return v
}
