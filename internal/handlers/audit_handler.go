package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"magictravel/internal/models"
	"magictravel/internal/pagination"
	"magictravel/internal/services"
)

// AuditHandler handles audit log queries and maintenance.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// AuditQuery represents the optional filters accepted by the audit feeds.
type AuditQuery struct {
	Table    string `form:"table" binding:"max=64"`
	Action   string `form:"action" binding:"omitempty,audit_action"`
	ActorID  int64  `form:"usuario_id" binding:"omitempty,min=1"`
	FromDate string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
	Search   string `form:"busqueda"`
}

// PurgeRequest represents the request payload for a retention purge.
type PurgeRequest struct {
	Days int `json:"dias" binding:"required,min=30"`
}

// AuditRecordResponse wraps a single audit record.
type AuditRecordResponse struct {
	Success bool               `json:"success"`
	Data    models.AuditRecord `json:"data"`
}

// AuditStatsResponse wraps the audit dashboard summary.
type AuditStatsResponse struct {
	Success bool                `json:"success"`
	Data    services.AuditStats `json:"data"`
}

// PurgeResponse reports the outcome of a purge.
type PurgeResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    services.PurgeResult `json:"data"`
}

// parseAuditFilter binds and validates the audit query string.
func parseAuditFilter(c *gin.Context) (services.AuditFilter, error) {
	var filter services.AuditFilter

	var q AuditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return filter, bindingError(err)
	}

	from, err := parseDate("fecha_inicio", q.FromDate)
	if err != nil {
		return filter, err
	}
	to, err := parseDate("fecha_fin", q.ToDate)
	if err != nil {
		return filter, err
	}
	if err := checkDateRange(from, to); err != nil {
		return filter, err
	}

	filter.Table = strings.TrimSpace(q.Table)
	filter.FromDate = from
	filter.ToDate = to
	filter.Search = strings.TrimSpace(q.Search)
	if q.Action != "" {
		action := models.AuditAction(strings.ToUpper(q.Action))
		filter.Action = &action
	}
	if q.ActorID > 0 {
		actorID := q.ActorID
		filter.ActorID = &actorID
	}
	return filter, nil
}

func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, bindingError(err)
	}
	page.Defaults()
	return page, nil
}

// List handles the merged audit feed.
// @Summary     List audit records
// @Description Newest-first audit records across every audit table, or one table when `table` is set
// @Tags        audits
// @Produce     json
// @Param       table        query string false "Audit table or entity key (e.g. reserva)"
// @Param       action       query string false "INSERT, UPDATE or DELETE"
// @Param       usuario_id   query int    false "Actor id"
// @Param       fecha_inicio query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param       fecha_fin    query string false "End date (YYYY-MM-DD, inclusive)"
// @Param       busqueda     query string false "Free-text search"
// @Param       page         query int    false "Page number (default 1)"
// @Param       per_page     query int    false "Items per page (default 15)"
// @Success     200 {object} pagination.PageResponse[models.AuditRecord]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits [get]
func (h *AuditHandler) List(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseAuditFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.auditService.List(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats handles the audit dashboard summary.
// @Summary     Audit statistics
// @Description Totals per action, per table, most active users and daily activity for the last 30 days
// @Tags        audits
// @Produce     json
// @Param       table        query string false "Audit table or entity key"
// @Param       action       query string false "INSERT, UPDATE or DELETE"
// @Param       usuario_id   query int    false "Actor id"
// @Param       fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param       fecha_fin    query string false "End date (YYYY-MM-DD)"
// @Success     200 {object} AuditStatsResponse
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits/stats [get]
func (h *AuditHandler) Stats(c *gin.Context) {
	filter, err := parseAuditFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.auditService.Stats(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuditStatsResponse{Success: true, Data: *stats})
}

// ListByTable handles the feed of a single audit table.
// @Summary     List audit records of one table
// @Tags        audits
// @Produce     json
// @Param       table        path  string true  "Audit table or entity key"
// @Param       action       query string false "INSERT, UPDATE or DELETE"
// @Param       usuario_id   query int    false "Actor id"
// @Param       fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param       fecha_fin    query string false "End date (YYYY-MM-DD)"
// @Param       busqueda     query string false "Free-text search"
// @Param       page         query int    false "Page number (default 1)"
// @Param       per_page     query int    false "Items per page (default 15)"
// @Success     200 {object} pagination.PageResponse[models.AuditRecord]
// @Failure     422 {object} ErrorResponse "Unknown table or invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits/table/{table} [get]
func (h *AuditHandler) ListByTable(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseAuditFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.auditService.ListByTable(c.Param("table"), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListByUser handles the feed of a single actor.
// @Summary     List audit records of one user
// @Tags        audits
// @Produce     json
// @Param       usuario_id   path  int    true  "Actor id"
// @Param       table        query string false "Audit table or entity key"
// @Param       action       query string false "INSERT, UPDATE or DELETE"
// @Param       fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param       fecha_fin    query string false "End date (YYYY-MM-DD)"
// @Param       busqueda     query string false "Free-text search"
// @Param       page         query int    false "Page number (default 1)"
// @Param       per_page     query int    false "Items per page (default 15)"
// @Success     200 {object} pagination.PageResponse[models.AuditRecord]
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits/user/{usuario_id} [get]
func (h *AuditHandler) ListByUser(c *gin.Context) {
	actorID, err := parsePathID(c, "usuario_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseAuditFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.auditService.ListByActor(actorID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Show handles the retrieval of a single audit record.
// @Summary     Get audit record
// @Description Served under /records/ so the static /table and /user feeds never collide with the {table} segment
// @Tags        audits
// @Produce     json
// @Param       table    path string true "Audit table or entity key"
// @Param       audit_id path int    true "auditoria_id"
// @Success     200 {object} AuditRecordResponse
// @Failure     404 {object} ErrorResponse "Record not found"
// @Failure     422 {object} ErrorResponse "Unknown table or invalid id"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits/records/{table}/{audit_id} [get]
func (h *AuditHandler) Show(c *gin.Context) {
	auditID, err := parsePathID(c, "audit_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.auditService.GetRecord(c.Param("table"), auditID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuditRecordResponse{Success: true, Data: *record})
}

// Purge handles the removal of old audit records.
// @Summary     Purge old audit records
// @Description Deletes audit records older than `dias` days (minimum 30) from every audit table
// @Tags        audits
// @Accept      json
// @Produce     json
// @Param       request body PurgeRequest true "Retention in days"
// @Success     200 {object} PurgeResponse
// @Failure     422 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audits/purge [post]
func (h *AuditHandler) Purge(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.auditService.Purge(req.Days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PurgeResponse{
		Success: true,
		Message: fmt.Sprintf("%d registros eliminados", result.Deleted),
		Data:    *result,
	})
}
