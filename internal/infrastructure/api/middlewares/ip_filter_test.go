package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.Init("middlewares-test")
	os.Exit(m.Run())
}

func passThrough() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestIPFilterAllowsListedAddress(t *testing.T) {
	next, called := passThrough()
	handler := IPFilterMiddleware([]string{"185.71.65.92", "185.71.65.189"})(next)

	r := httptest.NewRequest(http.MethodPost, "/notify", nil)
	r.RemoteAddr = "185.71.65.92:51334"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.True(t, *called)
}

func TestIPFilterRejectsUnlistedAddress(t *testing.T) {
	next, called := passThrough()
	handler := IPFilterMiddleware([]string{"185.71.65.92"})(next)

	r := httptest.NewRequest(http.MethodPost, "/notify", nil)
	r.RemoteAddr = "10.0.0.1:51334"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.False(t, *called)
	assert.Equal(t, http.StatusOK, w.Code, "rejection keeps the plain-text contract")
	assert.Equal(t, "|error", w.Body.String())
}

func TestIPFilterEmptyListAllowsEverything(t *testing.T) {
	next, called := passThrough()
	handler := IPFilterMiddleware(nil)(next)

	r := httptest.NewRequest(http.MethodPost, "/notify", nil)
	r.RemoteAddr = "203.0.113.9:40000"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.True(t, *called)
}

func TestRequestMethodMiddleware(t *testing.T) {
	next, called := passThrough()
	handler := RequestMethodMiddleware(http.MethodPost)(next)

	r := httptest.NewRequest(http.MethodGet, "/notify", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.False(t, *called)
	assert.Equal(t, "|error", w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/notify", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.True(t, *called)
}
