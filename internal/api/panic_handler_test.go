package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/models"
)

// stubPanicService records the coordinates the handler passed through.
type stubPanicService struct {
	lastLatitude  float64
	lastLongitude float64
	triggered     bool
}

func (s *stubPanicService) GetContact(context.Context, string) (*models.PanicContact, error) {
	return nil, nil
}

func (s *stubPanicService) SaveContact(context.Context, string, models.SavePanicContactRequest) (*models.PanicContact, error) {
	return nil, nil
}

func (s *stubPanicService) Trigger(_ context.Context, _ string, latitude, longitude float64) (*core.PanicAlert, error) {
	s.triggered = true
	s.lastLatitude = latitude
	s.lastLongitude = longitude
	return &core.PanicAlert{ContactPhone: "123", MapsURL: "https://www.google.com/maps?q=0,-78.5"}, nil
}

func panicTestRouter(stub *stubPanicService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPanicHandler(stub)
	router := gin.New()
	router.POST("/panic",
		func(c *gin.Context) { c.Set("userID", "uid-1") },
		handler.Trigger,
	)
	return router
}

func postPanic(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/panic", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPanicTriggerHandler(t *testing.T) {
	t.Run("zero coordinates are a valid device fix", func(t *testing.T) {
		// A fix on the equator or prime meridian carries a legitimate
		// zero coordinate; only an absent coordinate is a bad payload.
		stub := &stubPanicService{}
		router := panicTestRouter(stub)

		w := postPanic(t, router, `{"latitude":0,"longitude":-78.5}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, stub.triggered)
		assert.Zero(t, stub.lastLatitude)
		assert.Equal(t, -78.5, stub.lastLongitude)

		w = postPanic(t, router, `{"latitude":0,"longitude":0}`)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("a missing coordinate is rejected", func(t *testing.T) {
		stub := &stubPanicService{}
		router := panicTestRouter(stub)

		w := postPanic(t, router, `{"longitude":-78.5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, stub.triggered)
	})
}
