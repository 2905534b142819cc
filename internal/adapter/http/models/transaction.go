package models

type TransactionResponse struct {
	ID              string `json:"id"`
	AccountID       string `json:"accountId"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transactionType"`
	Currency        string `json:"currency"`
	Timestamp       string `json:"timestamp"`
}
