package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
)

type LoanService interface {
	GrantLoan(ctx context.Context, userID string, req models.GrantLoanRequest) (commons.Response[models.LoanResponse], error)
	RepayLoan(ctx context.Context, userID string, req models.RepayLoanRequest) (commons.Response[models.LoanResponse], error)
	ListLoans(ctx context.Context, userID string) (commons.Response[[]models.LoanResponse], error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/grant-loan": c.grantLoan,
		"/repay-loan": c.repayLoan,
		"/loans":      c.listLoans,
	}

	for path, handler := range routes {
		if authMiddleware != nil {
			handler = authMiddleware(handler).ServeHTTP
		}
		mux.Handle(path, http.HandlerFunc(handler))
	}
}

func (c *LoanController) grantLoan(w http.ResponseWriter, r *http.Request) {
	handleLoanPost(w, r, c.service.GrantLoan)
}

func (c *LoanController) repayLoan(w http.ResponseWriter, r *http.Request) {
	handleLoanPost(w, r, c.service.RepayLoan)
}

func (c *LoanController) listLoans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.LoanResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[[]models.LoanResponse]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	response, err := c.service.ListLoans(r.Context(), userID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func handleLoanPost[Req any](
	w http.ResponseWriter,
	r *http.Request,
	operation func(ctx context.Context, userID string, req Req) (commons.Response[models.LoanResponse], error),
) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.LoanResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[models.LoanResponse]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := operation(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForLoanError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func statusForLoanError(err error, message string) int {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount), message == "validation failed", message == "Loan request denied":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
