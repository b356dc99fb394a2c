package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/query"
	"github.com/groundscan/gpr-backend-go/internal/service"
	"github.com/groundscan/gpr-backend-go/internal/session"
	"github.com/groundscan/gpr-backend-go/pkg/response"
)

// SurveyHandler handles HTTP requests for survey data
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// Dates handles GET /api/v1/survey/dates
func (h *SurveyHandler) Dates(c *gin.Context) {
	dates, err := h.surveyService.AvailableDates(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, dates)
}

// Load handles GET /api/v1/survey/slice. The raw parameters go through the
// query validator first; nothing is fetched on a bad submission.
func (h *SurveyHandler) Load(c *gin.Context) {
	v, err := query.Validate(query.Params{
		Date:     c.Query("date"),
		StartLat: c.Query("startLat"),
		StartLon: c.Query("startLon"),
		EndLat:   c.Query("endLat"),
		EndLon:   c.Query("endLon"),
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	zoom, _ := strconv.Atoi(c.DefaultQuery("zoomLevel", "1"))

	result, status, err := h.surveyService.Load(c.Request.Context(), models.SliceQuery{
		Date:      v.Date,
		StartLat:  v.StartLat,
		StartLon:  v.StartLon,
		EndLat:    v.EndLat,
		EndLon:    v.EndLon,
		ZoomLevel: zoom,
	})
	if errors.Is(err, session.ErrStale) {
		// A newer query superseded this one; its result will arrive on the
		// newer request.
		response.Success(c, gin.H{"superseded": true})
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"requestId": result.RequestID,
		"status":    status,
		"dataset":   result.Dataset,
		"track":     result.Track,
	})
}

// Bounds handles GET /api/v1/survey/bounds
func (h *SurveyHandler) Bounds(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date is required")
		return
	}

	bounds, err := h.surveyService.Bounds(c.Request.Context(), date)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, bounds)
}

// Track handles GET /api/v1/survey/track
func (h *SurveyHandler) Track(c *gin.Context) {
	var filter models.TrackFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Date == "" {
		response.BadRequest(c, "date is required")
		return
	}

	track, err := h.surveyService.Track(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, track)
}

// Location handles GET /api/v1/survey/location
func (h *SurveyHandler) Location(c *gin.Context) {
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if date == "" || timeOfDay == "" {
		response.BadRequest(c, "date and time are required")
		return
	}

	point, err := h.surveyService.Location(c.Request.Context(), date, timeOfDay)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, point)
}

// Health handles GET /api/v1/survey/health
func (h *SurveyHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"reachable": h.surveyService.Health(c.Request.Context())})
}

// Position handles GET /api/v1/survey/position, mapping a slice-pixel
// coordinate against the currently loaded survey
func (h *SurveyHandler) Position(c *gin.Context) {
	sliceX, errX := strconv.ParseFloat(c.Query("sliceX"), 64)
	sliceY, errY := strconv.ParseFloat(c.Query("sliceY"), 64)
	if errX != nil || errY != nil {
		response.BadRequest(c, "sliceX and sliceY must be numbers")
		return
	}

	pos := h.surveyService.Position(sliceX, sliceY)
	if pos == nil {
		// No survey loaded yet: not an error, just not available.
		response.Success(c, nil)
		return
	}

	response.Success(c, pos)
}

// Nearest handles GET /api/v1/survey/nearest, returning the track point
// closest to a clicked map coordinate
func (h *SurveyHandler) Nearest(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		response.BadRequest(c, "lat and lon must be numbers")
		return
	}

	response.Success(c, h.surveyService.Nearest(lat, lon))
}
