package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Claim statuses form an open enumeration; these are the values in active use.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Claim represents one filed insurance claim. The numeric id is system-assigned;
// the claim number is the caller-assigned business identity. Both are unique.
type Claim struct {
	ID           int64   `db:"id" json:"id"`
	ClaimNumber  string  `db:"claim_number" json:"claim_number"`
	ClaimantName string  `db:"claimant_name" json:"claimant_name"`
	Amount       float64 `db:"amount" json:"amount"`
	Status       string  `db:"status" json:"status"`
	DateFiled    Date    `db:"date_filed" json:"date_filed"`
	Description  *string `db:"description" json:"description,omitempty"`
	IsApproved   bool    `db:"is_approved" json:"is_approved"`
}

// ClaimFilter captures list filtering. Status is the only filter in active use.
type ClaimFilter struct {
	Status string
}

// Amount is a monetary value that accepts either a JSON number or a numeric
// string ("500" coerces to 500.0). Non-numeric input is a validation failure.
type Amount float64

// UnmarshalJSON implements the string-or-number coercion.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("amount must not be null")
	}
	raw = strings.Trim(raw, `"`)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a valid number", raw)
	}
	*a = Amount(value)
	return nil
}

// Float64 returns the underlying value.
func (a Amount) Float64() float64 {
	return float64(a)
}
