package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// ValidateRoster checks a roster payload without computing a rotation
func (h *Handler) ValidateRoster(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Engineers) < 2 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least two engineers are required",
		})
		return
	}

	// Check for blank and duplicate IDs
	ids := make(map[string]bool)
	for _, e := range input.Engineers {
		if strings.TrimSpace(e.ID) == "" {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Engineer ID is required"})
			return
		}
		if ids[e.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate engineer ID: " + e.ID})
			return
		}
		ids[e.ID] = true
	}

	slotsPerPeriod := len(input.Engineers)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"engineer_count":   len(input.Engineers),
			"slots_per_period": slotsPerPeriod,
			"period_length":    (h.Service.Scheduler.SlotDuration * time.Duration(slotsPerPeriod)).String(),
			"seam_safe":        scheduler.LimitsConsecutiveSlots(h.Service.Scheduler.Strategy.Name(), slotsPerPeriod),
		},
	})
}
