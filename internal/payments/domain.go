package payments

import "time"

// MethodType enumerates the supported payment instruments.
type MethodType string

const (
	TypeCreditCard MethodType = "CREDIT_CARD"
	TypeDebitCard  MethodType = "DEBIT_CARD"
	TypeUPI        MethodType = "UPI"
)

// Method is a stored payment instrument. Only the last four digits are ever
// persisted.
type Method struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Type      MethodType `json:"type"`
	Label     string     `json:"label"`
	Last4     string     `json:"last4Digits"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
