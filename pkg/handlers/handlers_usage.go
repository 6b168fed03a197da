package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUsage returns the recent per-day lookup counters
func (h *Handler) GetUsage(c *gin.Context) {
	if h.Usage == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usage tracking is disabled"})
		return
	}

	usage, err := h.Usage.RecentUsage(c.Request.Context(), 30)
	if err != nil {
		h.Log.Error().Err(err).Msg("could not fetch usage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
		},
	})
}
