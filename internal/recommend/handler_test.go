package recommend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(newTestService(t)).RegisterRoutes(r.Group("/api"))
	return r
}

func TestHandlerStatus(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"search ok", http.MethodPost, "/api/search", `{"title": "alpha strike"}`, http.StatusOK},
		{"search sin match", http.MethodPost, "/api/search", `{"title": "qqqq zzzz ninguna"}`, http.StatusNotFound},
		{"search payload invalido", http.MethodPost, "/api/search", `{}`, http.StatusBadRequest},
		{"emotion ok", http.MethodPost, "/api/emotion", `{"emotion": "joy"}`, http.StatusOK},
		{"emotion sin mapeo", http.MethodPost, "/api/emotion", `{"emotion": "xyzzy"}`, http.StatusUnprocessableEntity},
		{"emotion payload invalido", http.MethodPost, "/api/emotion", `{}`, http.StatusBadRequest},
		{"emotions", http.MethodGet, "/api/emotions", "", http.StatusOK},
		{"detalle ok", http.MethodGet, "/api/movie/10", "", http.StatusOK},
		{"detalle inexistente", http.MethodGet, "/api/movie/99999", "", http.StatusNotFound},
		{"detalle id invalido", http.MethodGet, "/api/movie/abc", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestHandlerSearchBody(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"title": "ALPHA STRIKE", "top_n": 2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"Alpha Strike"`) {
		t.Errorf("respuesta sin el match: %s", body)
	}
	if !strings.Contains(body, "recommendations") {
		t.Errorf("respuesta sin recomendaciones: %s", body)
	}
}
