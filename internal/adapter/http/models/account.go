package models

import (
	"errors"
	"strings"
)

type CreateAccountRequest struct {
	Currency string `json:"currency"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	ccy := strings.ToUpper(strings.TrimSpace(r.Currency))
	if ccy == "" {
		errs = append(errs, "currency is required")
	} else if len(ccy) != 3 {
		errs = append(errs, "currency must be a 3-letter ISO 4217 code")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type SuspendAccountRequest struct {
	AccountID string `json:"accountId"`
}

func (r SuspendAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.New("accountId is required")
	}
	return nil
}

type SuspendAccountResponse struct {
	AccountID string `json:"accountId"`
	IsActive  bool   `json:"isActive"`
}

type CloseAccountRequest struct {
	AccountID string `json:"accountId"`
}

func (r CloseAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.New("accountId is required")
	}
	return nil
}

type CloseAccountResponse struct {
	AccountID string `json:"accountId"`
	ClosedAt  string `json:"closedAt"`
}
