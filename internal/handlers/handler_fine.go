package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/dto"
	"github.com/unit-solidarite/backend/internal/middleware"
)

// fineHandler handles HTTP requests related to fines.
type fineHandler struct {
	fineService portssvc.FineSvcFacade
}

func newFineHandler(fs portssvc.FineSvcFacade) *fineHandler {
	return &fineHandler{fineService: fs}
}

// registerFineRoutes registers routes related to fines.
func registerFineRoutes(rg *gin.RouterGroup, fineService portssvc.FineSvcFacade) {
	h := newFineHandler(fineService)

	fines := rg.Group("/fines")
	{
		fines.POST("", h.createFine)
		fines.GET("", h.listFines)
		fines.GET("/my", h.listMyFines)
		fines.GET("/types", h.listFineTypes)
		fines.GET("/stats", h.fineStats)
		fines.PUT("/:id/pay", h.payFine)
		fines.PUT("/:id/cancel", h.cancelFine)
	}
}

// createFine godoc
// @Summary Issue a fine
// @Description Issues a fine against a member. Censor only. Catalog types carry their canonical amount; "autre" requires an explicit amount.
// @Tags fines
// @Accept json
// @Produce json
// @Param fine body dto.CreateFineRequest true "Fine details"
// @Success 201 {object} dto.FineResponse
// @Failure 400 {object} ErrorResponse "Unknown type, negative amount, or missing amount for autre"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the censor"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /fines [post]
func (h *fineHandler) createFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fine, err := h.fineService.CreateFine(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		default:
			logger.Error("Failed to create fine", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create fine"})
		}
		return
	}

	logger.Info("Fine created", slog.String("fine_id", fine.FineID), slog.String("member_id", fine.MemberID))
	c.JSON(http.StatusCreated, dto.ToFineResponse(fine))
}

// listFines godoc
// @Summary List fines
// @Description Lists fines, optionally filtered by status or member. Officer roles only.
// @Tags fines
// @Produce json
// @Param status query string false "Filter by status (en_attente, payee, annulee)"
// @Param memberID query string false "Filter by member"
// @Success 200 {array} dto.FineResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines [get]
func (h *fineHandler) listFines(c *gin.Context) {
	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	filter := portsrepo.FineFilter{}
	if v := c.Query("status"); v != "" {
		status := domain.FineStatus(v)
		filter.Status = &status
	}
	if v := c.Query("memberID"); v != "" {
		filter.MemberID = &v
	}

	fines, err := h.fineService.ListFines(c.Request.Context(), requesterID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list fines", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list fines"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFineResponses(fines))
}

// listMyFines godoc
// @Summary List own fines
// @Description Lists the authenticated member's fines with the total still pending.
// @Tags fines
// @Produce json
// @Success 200 {object} dto.MyFinesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines/my [get]
func (h *fineHandler) listMyFines(c *gin.Context) {
	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.fineService.ListMyFines(c.Request.Context(), memberID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list own fines", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list fines"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listFineTypes godoc
// @Summary List the fine catalog
// @Description Returns the fixed catalog of fine types with labels, canonical amounts and categories.
// @Tags fines
// @Produce json
// @Success 200 {object} map[string]domain.FineTypeInfo
// @Security BearerAuth
// @Router /fines/types [get]
func (h *fineHandler) listFineTypes(c *gin.Context) {
	c.JSON(http.StatusOK, domain.FineCatalog)
}

// fineStats godoc
// @Summary Fine ledger statistics
// @Description Aggregates the fine ledger by status and category. Officer roles only.
// @Tags fines
// @Produce json
// @Success 200 {object} dto.FineStatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines/stats [get]
func (h *fineHandler) fineStats(c *gin.Context) {
	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.fineService.FineStats(c.Request.Context(), requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute fine stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute fine stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// payFine godoc
// @Summary Settle a fine
// @Description Marks a pending fine as paid. Censor only. Terminal fines cannot be re-finalized.
// @Tags fines
// @Produce json
// @Param id path string true "Fine ID"
// @Success 200 {object} dto.FineResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the censor"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Fine already finalized"
// @Security BearerAuth
// @Router /fines/{id}/pay [put]
func (h *fineHandler) payFine(c *gin.Context) {
	h.finalizeFine(c, h.fineService.PayFine)
}

// cancelFine godoc
// @Summary Cancel a fine
// @Description Voids a pending fine. Censor only. Terminal fines cannot be re-finalized.
// @Tags fines
// @Produce json
// @Param id path string true "Fine ID"
// @Success 200 {object} dto.FineResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the censor"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Fine already finalized"
// @Security BearerAuth
// @Router /fines/{id}/cancel [put]
func (h *fineHandler) cancelFine(c *gin.Context) {
	h.finalizeFine(c, h.fineService.CancelFine)
}

func (h *fineHandler) finalizeFine(c *gin.Context, transition func(ctx context.Context, fineID string, actorID string) (*domain.Fine, error)) {
	fineID := c.Param("id")

	actorID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fine, err := transition(c.Request.Context(), fineID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Fine not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to finalize fine", slog.String("error", err.Error()), slog.String("fine_id", fineID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update fine"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}
