package models

import (
	"errors"
	"strings"
)

type GrantLoanRequest struct {
	Amount string `json:"amount"`
}

func (r GrantLoanRequest) Validate() error {
	return validateAmount(r.Amount)
}

type RepayLoanRequest struct {
	LoanID string `json:"loanId"`
	Amount string `json:"amount"`
}

func (r RepayLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.LoanID) == "" {
		errs = append(errs, "loanId is required")
	}
	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoanResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Amount    string `json:"amount"`
	IsPaid    bool   `json:"isPaid"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
