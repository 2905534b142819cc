package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type DepositFundsRequest struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency,omitempty"`
}

func (r DepositFundsRequest) Validate() error {
	return validateLedgerRequest(r.AccountID, r.Amount, r.Currency, false)
}

type DepositFundsResponse struct {
	AccountID     string `json:"accountId"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	NetAmount     string `json:"netAmount"`
	Fee           string `json:"fee"`
	TransactionID string `json:"transactionId"`
}

type WithdrawFundsRequest struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency,omitempty"`
}

func (r WithdrawFundsRequest) Validate() error {
	return validateLedgerRequest(r.AccountID, r.Amount, r.Currency, false)
}

type WithdrawFundsResponse struct {
	AccountID     string `json:"accountId"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	NetAmount     string `json:"netAmount"`
	Fee           string `json:"fee"`
	TransactionID string `json:"transactionId"`
}

type TransferFundsRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

func (r TransferFundsRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromAccountID) == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if strings.TrimSpace(r.ToAccountID) == "" {
		errs = append(errs, "toAccountId is required")
	}
	if strings.TrimSpace(r.FromAccountID) != "" && strings.TrimSpace(r.FromAccountID) == strings.TrimSpace(r.ToAccountID) {
		errs = append(errs, "fromAccountId and toAccountId cannot be the same")
	}
	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCurrency(r.Currency, true); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransferFundsResponse struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	FromBalance   string `json:"fromBalance"`
	ToBalance     string `json:"toBalance"`
	DebitAmount   string `json:"debitAmount"`
	CreditAmount  string `json:"creditAmount"`
	Fee           string `json:"fee"`
}

func validateLedgerRequest(accountID string, amount string, currency string, currencyRequired bool) error {
	var errs []string

	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if err := validateAmount(amount); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCurrency(currency, currencyRequired); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func validateAmount(amount string) error {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return errors.New("amount is required")
	}

	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return errors.New("amount must be numeric")
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func validateCurrency(currency string, required bool) error {
	ccy := strings.ToUpper(strings.TrimSpace(currency))
	if ccy == "" {
		if required {
			return errors.New("currency is required")
		}
		return nil
	}
	if len(ccy) != 3 {
		return errors.New("currency must be a 3-letter ISO 4217 code")
	}

	return nil
}
