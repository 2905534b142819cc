package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterUserRequest) (commons.Response[models.RegisterUserResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}
