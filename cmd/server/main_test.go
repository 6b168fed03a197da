package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/swof/bau-api-go/pkg/config"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		DataPath:       filepath.Join(t.TempDir(), "engineers.db"),
		EngineersTable: "engineers",
		RosterLimit:    20,
		SlotDuration:   12 * time.Hour,
		SeamStrategy:   "split",
	}

	a, err := setup(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, gin.TestMode, gin.Mode())

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"strategy":"split"`)

	cfg.GinMode = ""
	_, err = setup(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, gin.ReleaseMode, gin.Mode())
}
