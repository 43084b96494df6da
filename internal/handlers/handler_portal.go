package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// portalHandler serves the expert portal. The acting expert is always the token subject.
type portalHandler struct {
	views       portssvc.ViewSvc
	assignments portssvc.AssignmentResolverSvc
	authorizer  portssvc.EngagementAuthorizerSvc
	earnings    portssvc.EarningsReaderSvc
	documents   portssvc.DocumentSvc
	activity    portssvc.ActivitySvc
}

// RegisterPortalRoutes registers the expert portal routes under rg.
func RegisterPortalRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &portalHandler{
		views:       services.Views,
		assignments: services.Assignment,
		authorizer:  services.Assignment,
		earnings:    services.Earnings,
		documents:   services.Documents,
		activity:    services.Activity,
	}

	me := rg.Group("/me")
	{
		me.GET("/dashboard", h.dashboard)
		me.GET("/clients", h.listClients)
		me.GET("/clients/:clientID/experts", h.listClientExperts)
		me.GET("/assignments", h.listMyAssignments)
		me.GET("/earnings", h.earningsSummary)
		me.GET("/activity", h.listActivity)
		me.POST("/documents/links", h.issueDocumentLink)
	}
}

func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// dashboard godoc
// @Summary Expert dashboard
// @Description Earnings summary with the six-month series, active client count and open tasks for the logged-in expert
// @Tags portal
// @Produce json
// @Param tz query string false "IANA time zone for month and quarter boundaries"
// @Success 200 {object} dto.ExpertDashboardResponse
// @Failure 400 {object} map[string]string "Unknown time zone"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load dashboard"
// @Security BearerAuth
// @Router /me/dashboard [get]
func (h *portalHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	view, err := h.views.ExpertDashboard(c.Request.Context(), expertID)
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpertDashboardResponse(view))
}

// listClients godoc
// @Summary List my clients
// @Description Clients the logged-in expert actively works, with progress, co-experts, earnings and pending amounts
// @Tags portal
// @Produce json
// @Param search query string false "Search name, email or phone"
// @Param status query string false "Overall status"
// @Param country query string false "Jurisdiction code"
// @Param complexity query string false "Complexity"
// @Param expertID query string false "Only clients also worked by this expert"
// @Param sort query string false "name, createdAt or revenue"
// @Param direction query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param filterToken query string false "Token of the page currently shown"
// @Success 200 {object} domain.ExpertClientListView
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /me/clients [get]
func (h *portalHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	query, err := params.ToQuery()
	if err != nil {
		respondError(c, logger, err, "Failed to list clients")
		return
	}

	view, err := h.views.ExpertClientList(c.Request.Context(), expertID, query)
	if err != nil {
		respondError(c, logger, err, "Failed to list clients")
		return
	}
	logger.Info("Expert clients listed", slog.Int("total", view.TotalItems), slog.Int("page", view.Page.Page))
	c.JSON(http.StatusOK, view)
}

// listClientExperts godoc
// @Summary Experts on a client
// @Description Every expert actively assigned to a client the logged-in expert works
// @Tags portal
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {array} domain.ClientExpert
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Client not worked by this expert"
// @Failure 500 {object} map[string]string "Failed to list experts"
// @Security BearerAuth
// @Router /me/clients/{clientID}/experts [get]
func (h *portalHandler) listClientExperts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	clientID := c.Param("clientID")

	if err := h.authorizer.AuthorizeClientAccess(c.Request.Context(), expertID, clientID); err != nil {
		respondError(c, logger, err, "Failed to list experts")
		return
	}
	experts, err := h.assignments.ResolveExpertsForClient(c.Request.Context(), expertID, clientID)
	if err != nil {
		respondError(c, logger, err, "Failed to list experts")
		return
	}
	c.JSON(http.StatusOK, experts)
}

// listMyAssignments godoc
// @Summary My assignments
// @Description Assignments of the logged-in expert. Historical (inactive) assignments are returned only on request.
// @Tags portal
// @Produce json
// @Param includeInactive query bool false "Include inactive assignments" default(false)
// @Success 200 {array} domain.Assignment
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list assignments"
// @Security BearerAuth
// @Router /me/assignments [get]
func (h *portalHandler) listMyAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var params dto.ListMyAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListMyAssignments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	assignments, err := h.assignments.ResolveAssignmentsForExpert(c.Request.Context(), expertID, params.IncludeInactive)
	if err != nil {
		respondError(c, logger, err, "Failed to list assignments")
		return
	}
	if assignments == nil {
		assignments = []domain.Assignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

// earningsSummary godoc
// @Summary My earnings
// @Description All-time, quarter-to-date and month-to-date earnings with pending invoices
// @Tags portal
// @Produce json
// @Param tz query string false "IANA time zone for month and quarter boundaries"
// @Success 200 {object} dto.EarningsSummaryResponse
// @Failure 400 {object} map[string]string "Unknown time zone"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load earnings"
// @Security BearerAuth
// @Router /me/earnings [get]
func (h *portalHandler) earningsSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	summary, err := h.earnings.ExpertEarnings(c.Request.Context(), expertID)
	if err != nil {
		respondError(c, logger, err, "Failed to load earnings")
		return
	}
	c.JSON(http.StatusOK, dto.ToEarningsSummaryResponse(*summary))
}

// listActivity godoc
// @Summary My activity
// @Description Activity log entries of the logged-in expert, newest first
// @Tags portal
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListActivityResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list activity"
// @Security BearerAuth
// @Router /me/activity [get]
func (h *portalHandler) listActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListActivity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, next, err := h.activity.ListActivity(c.Request.Context(), domain.ActivityFilter{ExpertID: expertID}, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, dto.ListActivityResponse{Entries: entries, NextToken: next})
}

// issueDocumentLink godoc
// @Summary Link to a client document
// @Description Issues a short-lived signed URL for a document of a client the logged-in expert works
// @Tags portal
// @Accept json
// @Produce json
// @Param request body dto.IssueDocumentLinkRequest true "Document to link"
// @Success 200 {object} dto.DocumentLinkResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Client not worked by this expert"
// @Failure 500 {object} map[string]string "Failed to issue document link"
// @Security BearerAuth
// @Router /me/documents/links [post]
func (h *portalHandler) issueDocumentLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expertID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.IssueDocumentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueDocumentLink", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	link, err := h.documents.IssueDocumentLink(c.Request.Context(), expertID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to issue document link")
		return
	}
	c.JSON(http.StatusOK, dto.DocumentLinkResponse{URL: link.URL, ExpiresAt: link.ExpiresAt})
}
