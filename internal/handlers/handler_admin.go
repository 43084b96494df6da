package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/SscSPs/tax_engagement_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the admin console.
type adminHandler struct {
	services *portssvc.ServiceContainer
	posthog  *utils.PosthogClientWrapper
}

// RegisterAdminRoutes registers the admin console routes under rg. Every route
// requires the admin role.
func RegisterAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, posthogClient *utils.PosthogClientWrapper) {
	h := &adminHandler{services: services, posthog: posthogClient}

	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/clients", h.listClients)
		admin.POST("/clients", h.createClient)
		admin.GET("/clients/:clientID", h.getClient)
		admin.GET("/clients/:clientID/earnings", h.clientEarnings)
		admin.PUT("/clients/:clientID/stage", h.updatePipelineStage)
		admin.GET("/funnel", h.funnel)

		admin.GET("/experts", h.listExperts)
		admin.GET("/experts/:expertID", h.expertDetail)
		admin.PUT("/experts/:expertID/status", h.updateExpertStatus)

		admin.POST("/assignments", h.createAssignment)
		admin.POST("/assignments/:assignmentID/deactivate", h.deactivateAssignment)
		admin.POST("/assignments/:assignmentID/reactivate", h.reactivateAssignment)

		admin.POST("/payments", h.recordPayment)
		admin.GET("/activity", h.listActivity)
	}
}

// listClients godoc
// @Summary List all clients
// @Description Every client with assigned experts, revenue, progress and stage, plus the pipeline funnel
// @Tags admin
// @Produce json
// @Param search query string false "Search name, email or phone"
// @Param status query string false "Overall status"
// @Param country query string false "Jurisdiction code"
// @Param complexity query string false "Complexity"
// @Param expertID query string false "Only clients worked by this expert"
// @Param sort query string false "name, createdAt or revenue"
// @Param direction query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param filterToken query string false "Token of the page currently shown"
// @Success 200 {object} domain.AdminClientListView
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /admin/clients [get]
func (h *adminHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for admin ListClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	query, err := params.ToQuery()
	if err != nil {
		respondError(c, logger, err, "Failed to list clients")
		return
	}

	view, err := h.services.Views.AdminClientList(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, view)
}

// createClient godoc
// @Summary Onboard a client
// @Tags admin
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to create client"
// @Security BearerAuth
// @Router /admin/clients [post]
func (h *adminHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.services.Client.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// getClient godoc
// @Summary Get a client
// @Tags admin
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /admin/clients/{clientID} [get]
func (h *adminHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	client, err := h.services.Client.GetClient(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// clientEarnings godoc
// @Summary Client revenue
// @Description Payments received from the client and its pending invoices
// @Tags admin
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} dto.EarningsSummaryResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /admin/clients/{clientID}/earnings [get]
func (h *adminHandler) clientEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.services.Earnings.ClientEarnings(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, logger, err, "Failed to load client earnings")
		return
	}
	c.JSON(http.StatusOK, dto.ToEarningsSummaryResponse(*summary))
}

// updatePipelineStage godoc
// @Summary Move a client through the funnel
// @Tags admin
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param stage body dto.UpdatePipelineStageRequest true "New stage"
// @Success 200 {object} domain.Client
// @Failure 400 {object} map[string]string "Unknown stage"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /admin/clients/{clientID}/stage [put]
func (h *adminHandler) updatePipelineStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdatePipelineStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePipelineStage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.services.Pipeline.UpdatePipelineStage(c.Request.Context(), c.Param("clientID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update pipeline stage")
		return
	}
	c.JSON(http.StatusOK, client)
}

// funnel godoc
// @Summary Pipeline funnel
// @Description Client counts and percentages per stage in the fixed stage order
// @Tags admin
// @Produce json
// @Success 200 {object} domain.FunnelReport
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/funnel [get]
func (h *adminHandler) funnel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.services.Pipeline.Funnel(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build funnel")
		return
	}
	c.JSON(http.StatusOK, report)
}

// listExperts godoc
// @Summary List experts
// @Description Experts with active client counts, windowed earnings, pending amounts, rating and status
// @Tags admin
// @Produce json
// @Param search query string false "Search name or email"
// @Param status query string false "active, pending or suspended"
// @Param jurisdiction query string false "Jurisdiction code"
// @Param sort query string false "name, createdAt or revenue"
// @Param direction query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param filterToken query string false "Token of the page currently shown"
// @Success 200 {object} domain.AdminExpertListView
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/experts [get]
func (h *adminHandler) listExperts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListExpertsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListExperts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	query, err := params.ToQuery()
	if err != nil {
		respondError(c, logger, err, "Failed to list experts")
		return
	}

	view, err := h.services.Views.AdminExpertList(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err, "Failed to list experts")
		return
	}
	c.JSON(http.StatusOK, view)
}

// expertDetail godoc
// @Summary Expert drill-down
// @Tags admin
// @Produce json
// @Param expertID path string true "Expert ID"
// @Success 200 {object} dto.ExpertDetailResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Expert not found"
// @Security BearerAuth
// @Router /admin/experts/{expertID} [get]
func (h *adminHandler) expertDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	view, err := h.services.Views.AdminExpertDetail(c.Request.Context(), c.Param("expertID"))
	if err != nil {
		respondError(c, logger, err, "Failed to load expert")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpertDetailResponse(view))
}

// updateExpertStatus godoc
// @Summary Change an expert's status
// @Tags admin
// @Accept json
// @Produce json
// @Param expertID path string true "Expert ID"
// @Param status body dto.UpdateExpertStatusRequest true "New status"
// @Success 200 {object} domain.Expert
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Expert not found"
// @Security BearerAuth
// @Router /admin/experts/{expertID}/status [put]
func (h *adminHandler) updateExpertStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateExpertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpertStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expert, err := h.services.Expert.UpdateExpertStatus(c.Request.Context(), c.Param("expertID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update expert status")
		return
	}
	c.JSON(http.StatusOK, expert)
}

// createAssignment godoc
// @Summary Assign an expert to a client
// @Description Creates an active assignment, or re-activates an inactive one for the same client, expert and jurisdiction
// @Tags admin
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} domain.Assignment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Assignment already active"
// @Security BearerAuth
// @Router /admin/assignments [post]
func (h *adminHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.services.Assignment.CreateAssignment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create assignment")
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// deactivateAssignment godoc
// @Summary End an assignment
// @Tags admin
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} domain.Assignment
// @Failure 400 {object} map[string]string "Assignment not active"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /admin/assignments/{assignmentID}/deactivate [post]
func (h *adminHandler) deactivateAssignment(c *gin.Context) {
	h.transitionAssignment(c, h.services.Assignment.DeactivateAssignment)
}

// reactivateAssignment godoc
// @Summary Resume an assignment
// @Tags admin
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} domain.Assignment
// @Failure 400 {object} map[string]string "Assignment already active"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /admin/assignments/{assignmentID}/reactivate [post]
func (h *adminHandler) reactivateAssignment(c *gin.Context) {
	h.transitionAssignment(c, h.services.Assignment.ReactivateAssignment)
}

func (h *adminHandler) transitionAssignment(c *gin.Context, transition func(ctx context.Context, assignmentID, userID string) (*domain.Assignment, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	assignment, err := transition(c.Request.Context(), c.Param("assignmentID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Saves a payment and credits the matching active assignment in one transaction
// @Tags admin
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /admin/payments [post]
func (h *adminHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.services.Earnings.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "payment_recorded", map[string]any{
		"currency":  payment.Currency,
		"expert_id": payment.ExpertID,
	})
	c.JSON(http.StatusCreated, payment)
}

// listActivity godoc
// @Summary Activity feed
// @Description Activity log entries, newest first, optionally for one expert or client
// @Tags admin
// @Produce json
// @Param expertID query string false "Expert ID"
// @Param clientID query string false "Client ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListActivityResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/activity [get]
func (h *adminHandler) listActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for admin ListActivity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.ActivityFilter{ExpertID: params.ExpertID, ClientID: params.ClientID}
	entries, next, err := h.services.Activity.ListActivity(c.Request.Context(), filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, dto.ListActivityResponse{Entries: entries, NextToken: next})
}
