package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unit-solidarite/backend/internal/apperrors"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/dto"
	"github.com/unit-solidarite/backend/internal/middleware"
)

// loanHandler handles HTTP requests related to loans and the treasury fund.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
	fundService portssvc.FundSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade, fs portssvc.FundSvcFacade) *loanHandler {
	return &loanHandler{
		loanService: ls,
		fundService: fs,
	}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, fundService portssvc.FundSvcFacade) {
	h := newLoanHandler(loanService, fundService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.requestLoan)
		loans.GET("", h.listLoans)
		loans.GET("/my", h.listMyLoans)
		loans.GET("/fund", h.getFund)
		loans.GET("/stats", h.loanStats)
		loans.GET("/:id", h.getLoan)
		loans.DELETE("/:id", h.withdrawLoan)
		loans.PUT("/:id/process", h.processLoan)
		loans.POST("/:id/repayments", h.recordRepayment)
	}
}

// requestLoan godoc
// @Summary Request a loan
// @Description Submits a loan request against the treasury fund for the authenticated member.
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Loan request"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Validation error or principal above the borrow ceiling"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Borrower already has an open loan"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) requestLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	borrowerID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.RequestLoan(c.Request.Context(), borrowerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		default:
			logger.Error("Failed to request loan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to request loan"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List all loans
// @Description Lists every loan in the book. Officer roles only.
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list loans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list loans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// listMyLoans godoc
// @Summary List own loans
// @Description Lists the authenticated member's loans, newest first.
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/my [get]
func (h *loanHandler) listMyLoans(c *gin.Context) {
	borrowerID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loans, err := h.loanService.ListMyLoans(c.Request.Context(), borrowerID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list own loans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list loans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// getFund godoc
// @Summary Get the treasury fund snapshot
// @Description Returns the live fund totals and the current borrow ceiling.
// @Tags loans
// @Produce json
// @Success 200 {object} domain.FundSnapshot
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/fund [get]
func (h *loanHandler) getFund(c *gin.Context) {
	fund, err := h.fundService.ComputeFund(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute fund", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute fund"})
		return
	}

	c.JSON(http.StatusOK, fund)
}

// loanStats godoc
// @Summary Loan book statistics
// @Description Aggregates the loan book with the live fund snapshot. Officer roles only.
// @Tags loans
// @Produce json
// @Success 200 {object} dto.LoanStatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/stats [get]
func (h *loanHandler) loanStats(c *gin.Context) {
	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.loanService.LoanStats(c.Request.Context(), requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute loan stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute loan stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// getLoan godoc
// @Summary Get a loan by ID
// @Description Retrieves a loan with its repayment history. Borrowers see their own loans; officers see any.
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loanID := c.Param("id")

	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// withdrawLoan godoc
// @Summary Withdraw a pending loan request
// @Description Deletes the authenticated member's own still-pending loan request.
// @Tags loans
// @Param id path string true "Loan ID"
// @Success 204 "Withdrawn"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the borrower"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan already processed"
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) withdrawLoan(c *gin.Context) {
	loanID := c.Param("id")

	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.loanService.WithdrawLoan(c.Request.Context(), loanID, requesterID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to withdraw loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to withdraw loan"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// processLoan godoc
// @Summary Process a pending loan
// @Description Applies the treasurer's one-shot approve/reject decision on a pending loan.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param decision body dto.ProcessLoanRequest true "Decision"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the treasurer"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan already processed"
// @Security BearerAuth
// @Router /loans/{id}/process [put]
func (h *loanHandler) processLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.ProcessLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	processorID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.ProcessLoan(c.Request.Context(), loanID, req, processorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to process loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// recordRepayment godoc
// @Summary Record a repayment
// @Description Appends a repayment event to an active loan. Treasurer only. The loan closes once fully repaid.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param repayment body dto.RecordRepaymentRequest true "Repayment"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the treasurer"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan not active or amount above remaining balance"
// @Security BearerAuth
// @Router /loans/{id}/repayments [post]
func (h *loanHandler) recordRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.RecordRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.RecordRepayment(c.Request.Context(), loanID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to record repayment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record repayment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}
