package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ROSTER_FILE", "")
	t.Setenv("DATA_PATH", filepath.Join(t.TempDir(), "engineers.db"))
	t.Setenv("SEAM_STRATEGY", "triple")

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "BAU Duty Scheduler API")

	w = httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/baus/not-a-date", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
