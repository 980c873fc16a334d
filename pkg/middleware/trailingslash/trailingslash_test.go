package trailingslash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	var got string
	h := Strip(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { got = r.URL.Path }))

	cases := map[string]string{
		"/api/v1/posts/":  "/api/v1/posts",
		"/api/v1/posts":   "/api/v1/posts",
		"/api/v1/posts//": "/api/v1/posts",
		"/":               "/",
		"//":              "/",
	}
	for in, want := range cases {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, in, nil))
		assert.Equal(t, want, got, in)
	}
}
