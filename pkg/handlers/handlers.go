package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/swof/bau-api-go/pkg/database"
	"github.com/swof/bau-api-go/pkg/metrics"
	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// Version is reported by the root endpoint
const Version = "3.0.0"

// DefaultScheduleDays is the range served when a schedule request has no "to"
const DefaultScheduleDays = 14

// UsageStore records and reports lookup counters
type UsageStore interface {
	RecordLookup(ctx context.Context, at time.Time, rosterSize int) error
	RecentUsage(ctx context.Context, limit int) ([]database.LookupUsage, error)
}

// Handler contains dependencies for the route handlers
type Handler struct {
	Service *scheduler.Service
	Usage   UsageStore
	Metrics *metrics.Metrics
	Log     zerolog.Logger
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// statusFor maps the scheduler error taxonomy onto HTTP status codes
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, scheduler.ErrInvalidDate),
		errors.Is(err, scheduler.ErrInvalidRange),
		errors.Is(err, scheduler.ErrRangeTooLarge):
		return http.StatusBadRequest, metrics.ResultInvalidInput
	case errors.Is(err, scheduler.ErrInsufficientRoster),
		errors.Is(err, scheduler.ErrDuplicateMember),
		errors.Is(err, scheduler.ErrBlankMemberID):
		return http.StatusUnprocessableEntity, metrics.ResultInsufficientRoster
	case errors.Is(err, scheduler.ErrRosterFetch):
		return http.StatusInternalServerError, metrics.ResultRosterFetch
	default:
		return http.StatusInternalServerError, metrics.ResultError
	}
}

func (h *Handler) respondError(c *gin.Context, endpoint string, err error) {
	status, result := statusFor(err)
	if h.Metrics != nil {
		h.Metrics.ObserveLookup(endpoint, result)
	}
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.Log.Error().Err(err).Str("endpoint", endpoint).Msg("lookup failed")
		if errors.Is(err, scheduler.ErrRosterFetch) {
			msg = "Unable to fetch engineers"
		} else {
			msg = "Internal error"
		}
	}
	c.JSON(status, gin.H{"error": msg})
}

func (h *Handler) observe(endpoint string, rosterSize int) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.ObserveLookup(endpoint, metrics.ResultOK)
	h.Metrics.SetRosterSize(rosterSize)
}

// recordUsage never fails the request; counters are best effort
func (h *Handler) recordUsage(c *gin.Context, rosterSize int) {
	if h.Usage == nil {
		return
	}
	if err := h.Usage.RecordLookup(c.Request.Context(), h.now(), rosterSize); err != nil {
		h.Log.Warn().Err(err).Msg("could not record lookup usage")
	}
}

func dutyResponse(duty *models.Duty, members []models.Member) models.DutyResponse {
	return models.DutyResponse{
		Engineers: members,
		Baus:      duty.Pair.IDs(),
		Period:    duty.Period,
		Slot:      duty.SlotIndex,
		Start:     duty.Start.Format(time.RFC3339),
		End:       duty.End.Format(time.RFC3339),
		Strategy:  duty.Strategy,
	}
}

// Root reports the service name and version
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "BAU Duty Scheduler API",
		"version":  Version,
		"strategy": h.Service.Scheduler.Strategy.Name(),
		"slot":     h.Service.Scheduler.SlotDuration.String(),
	})
}

// GetBaus returns the two engineers on duty at the given date
func (h *Handler) GetBaus(c *gin.Context) {
	duty, members, err := h.Service.Lookup(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, "baus", err)
		return
	}

	h.observe("baus", len(members))
	h.recordUsage(c, len(members))
	c.JSON(http.StatusOK, dutyResponse(duty, members))
}

// PostBaus computes the duty pair for a roster supplied in the request body
func (h *Handler) PostBaus(c *gin.Context) {
	var input models.DutyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duty, err := h.Service.Scheduler.GetDutyPair(input.Date, input.Engineers)
	if err != nil {
		h.respondError(c, "baus_custom", err)
		return
	}

	// the roster gauge tracks the fetched roster only
	if h.Metrics != nil {
		h.Metrics.ObserveLookup("baus_custom", metrics.ResultOK)
	}
	c.JSON(http.StatusOK, dutyResponse(duty, input.Engineers))
}

// ListEngineers returns the roster in storage order
func (h *Handler) ListEngineers(c *gin.Context) {
	members, err := h.Service.ListMembers(c.Request.Context())
	if err != nil {
		h.respondError(c, "engineers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"engineers": members})
}

// scheduleRange reads the from/to query parameters.
// from defaults to the start of the current UTC day, to to DefaultScheduleDays later.
func (h *Handler) scheduleRange(c *gin.Context) (time.Time, time.Time, error) {
	now := h.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if v := c.Query("from"); v != "" {
		t, err := scheduler.ParseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}

	to := from.AddDate(0, 0, DefaultScheduleDays)
	if v := c.Query("to"); v != "" {
		t, err := scheduler.ParseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

func (h *Handler) schedule(c *gin.Context, endpoint string) ([]models.Duty, []models.Member, bool) {
	from, to, err := h.scheduleRange(c)
	if err != nil {
		h.respondError(c, endpoint, err)
		return nil, nil, false
	}
	duties, members, err := h.Service.ScheduleRange(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, endpoint, err)
		return nil, nil, false
	}

	h.observe(endpoint, len(members))
	if h.Metrics != nil {
		h.Metrics.AddSlots(len(duties))
	}
	return duties, members, true
}

// GetSchedule returns the duty pair of every slot in a date range
func (h *Handler) GetSchedule(c *gin.Context) {
	duties, members, ok := h.schedule(c, "schedule")
	if !ok {
		return
	}

	slots := make([]models.ScheduleEntry, len(duties))
	for i, d := range duties {
		slots[i] = models.ScheduleEntry{
			Period: d.Period,
			Slot:   d.SlotIndex,
			Start:  d.Start.Format(time.RFC3339),
			End:    d.End.Format(time.RFC3339),
			Baus:   d.Pair.IDs(),
		}
	}

	load := scheduler.Load(duties, members)
	c.JSON(http.StatusOK, models.ScheduleResponse{
		Engineers:     members,
		Strategy:      h.Service.Scheduler.Strategy.Name(),
		Slots:         slots,
		Load:          load,
		FairnessScore: scheduler.FairnessScore(load),
	})
}

// GetScheduleCSV exports a date range as CSV
func (h *Handler) GetScheduleCSV(c *gin.Context) {
	duties, _, ok := h.schedule(c, "schedule_csv")
	if !ok {
		return
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	_ = writer.Write([]string{"start", "end", "period", "slot", "first_id", "first_name", "second_id", "second_name"})
	for _, d := range duties {
		_ = writer.Write([]string{
			d.Start.Format(time.RFC3339),
			d.End.Format(time.RFC3339),
			strconv.FormatInt(d.Period, 10),
			strconv.Itoa(d.SlotIndex),
			d.Pair.First.ID,
			d.Pair.First.Name,
			d.Pair.Second.ID,
			d.Pair.Second.Name,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.respondError(c, "schedule_csv", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"csv": out.String()})
}
