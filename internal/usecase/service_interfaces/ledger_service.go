package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
)

type LedgerService interface {
	Deposit(ctx context.Context, req models.DepositFundsRequest) (commons.Response[models.DepositFundsResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawFundsRequest) (commons.Response[models.WithdrawFundsResponse], error)
	Transfer(ctx context.Context, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error)
	Suspend(ctx context.Context, req models.SuspendAccountRequest) (commons.Response[models.SuspendAccountResponse], error)
	Close(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.CloseAccountResponse], error)
}
