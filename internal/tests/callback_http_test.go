package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jazzypay/internal/handler"
)

func newCallbackRouter(f *checkoutFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handler.NewCallbackHandler(f.svc, zap.NewNop().Sugar())
	router.GET("/callback", h.HandleCallback)
	return router
}

func TestCallbackEndpoint_SuccessRedirectsToReturnURL(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(pendingOrder("42"))
	router := newCallbackRouter(f)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/callback?gateway=jazzypay&order_id=42&status=Success", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://store.test/thanks/42" {
		t.Errorf("expected return url redirect, got %s", loc)
	}
}

func TestCallbackEndpoint_FailedRedirectsToCart(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(pendingOrder("42"))
	router := newCallbackRouter(f)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/callback?gateway=jazzypay&order_id=42&status=Failed", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://store.test/cart" {
		t.Errorf("expected cart redirect, got %s", loc)
	}
}

func TestCallbackEndpoint_MalformedQueryTerminatesQuietly(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no params", ""},
		{"missing status", "?gateway=jazzypay&order_id=42"},
		{"missing order id", "?gateway=jazzypay&status=Success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture()
			f.repo.AddOrder(pendingOrder("42"))
			router := newCallbackRouter(f)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("expected 200 for ignored callback, got %d", w.Code)
			}
			if w.Header().Get("Location") != "" {
				t.Error("malformed callback must not redirect")
			}
			if f.repo.GetByIDCallCount != 0 {
				t.Error("malformed callback must not hit the Order Store")
			}
		})
	}
}

func TestCallbackEndpoint_UnrecognizedStatusNoRedirect(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(pendingOrder("42"))
	router := newCallbackRouter(f)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/callback?gateway=jazzypay&order_id=42&status=Pending", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Location") != "" {
		t.Error("unrecognized status must not redirect")
	}
}

