package dto

import "errors"

// ManualEntryRequest carries a user-supplied amount when extraction failed
// or the user overrides the detected amount.
type ManualEntryRequest struct {
	Amount   float64 `form:"amount" json:"amount" binding:"required"`
	Category string  `form:"category" json:"category"`
	Date     string  `form:"date" json:"date"` // YYYY-MM-DD, defaults to today
}

// Validate performs basic validation on the request
func (r *ManualEntryRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
