package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
)

type LedgerService interface {
	Deposit(ctx context.Context, req models.DepositFundsRequest) (commons.Response[models.DepositFundsResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawFundsRequest) (commons.Response[models.WithdrawFundsResponse], error)
	Transfer(ctx context.Context, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error)
	Suspend(ctx context.Context, req models.SuspendAccountRequest) (commons.Response[models.SuspendAccountResponse], error)
	Close(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.CloseAccountResponse], error)
}

type LedgerController struct {
	service LedgerService
}

func NewLedgerController(service LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/deposit-funds":   c.deposit,
		"/withdraw-funds":  c.withdraw,
		"/transfer-funds":  c.transfer,
		"/suspend-account": c.suspend,
		"/close-account":   c.close,
	}

	for path, handler := range routes {
		if authMiddleware != nil {
			handler = authMiddleware(handler).ServeHTTP
		}
		mux.Handle(path, http.HandlerFunc(handler))
	}
}

func (c *LedgerController) deposit(w http.ResponseWriter, r *http.Request) {
	handleLedgerPost(w, r, c.service.Deposit)
}

func (c *LedgerController) withdraw(w http.ResponseWriter, r *http.Request) {
	handleLedgerPost(w, r, c.service.Withdraw)
}

func (c *LedgerController) transfer(w http.ResponseWriter, r *http.Request) {
	handleLedgerPost(w, r, c.service.Transfer)
}

func (c *LedgerController) suspend(w http.ResponseWriter, r *http.Request) {
	handleLedgerPost(w, r, c.service.Suspend)
}

func (c *LedgerController) close(w http.ResponseWriter, r *http.Request) {
	handleLedgerPost(w, r, c.service.Close)
}

func handleLedgerPost[Req any, Resp any](
	w http.ResponseWriter,
	r *http.Request,
	operation func(ctx context.Context, req Req) (commons.Response[Resp], error),
) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[Resp]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[Resp]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := operation(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForLedgerError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func statusForLedgerError(err error, message string) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnsupportedConversion),
		errors.Is(err, domain.ErrNegativeBalance),
		message == "validation failed":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
