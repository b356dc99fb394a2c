package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/service"
	"github.com/groundscan/gpr-backend-go/pkg/response"
)

// POIHandler handles HTTP requests for points of interest
type POIHandler struct {
	poiService *service.POIService
}

// NewPOIHandler creates a new POI handler
func NewPOIHandler(poiService *service.POIService) *POIHandler {
	return &POIHandler{poiService: poiService}
}

// Create handles POST /api/v1/pois
func (h *POIHandler) Create(c *gin.Context) {
	var p models.POI
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid POI payload")
		return
	}

	if err := h.poiService.Create(p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, p)
}

// List handles GET /api/v1/pois
func (h *POIHandler) List(c *gin.Context) {
	poiType := models.POIType(c.Query("type"))

	result, err := h.poiService.List(poiType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Get handles GET /api/v1/pois/:id
func (h *POIHandler) Get(c *gin.Context) {
	p, err := h.poiService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if p == nil {
		response.NotFound(c, "POI not found")
		return
	}

	response.Success(c, p)
}

// Update handles PUT /api/v1/pois/:id
func (h *POIHandler) Update(c *gin.Context) {
	var p models.POI
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid POI payload")
		return
	}
	p.ID = c.Param("id")

	if err := h.poiService.Update(p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, p)
}

// Delete handles DELETE /api/v1/pois/:id
func (h *POIHandler) Delete(c *gin.Context) {
	if err := h.poiService.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"deleted": c.Param("id")})
}

// Import handles POST /api/v1/pois/import, wholesale-replacing the POI set
// with one bundled with a dataset
func (h *POIHandler) Import(c *gin.Context) {
	var pois []models.POI
	if err := c.ShouldBindJSON(&pois); err != nil {
		response.BadRequest(c, "Invalid POI list payload")
		return
	}

	if err := h.poiService.ReplaceAll(pois); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"imported": len(pois)})
}

// Types handles GET /api/v1/poi-types
func (h *POIHandler) Types(c *gin.Context) {
	response.Success(c, h.poiService.Types())
}
