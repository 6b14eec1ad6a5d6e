// file: model/request.go

package model

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTransactionRequest uses pointers so that a zero amount is told apart
// from a missing one.
type CreateTransactionRequest struct {
	Name   *string  `json:"name" validate:"required,min=1,max=100"`
	Amount *float64 `json:"amount" validate:"required"`
}

// UpdateTransactionRequest is a partial update. Nil fields keep their stored value.
type UpdateTransactionRequest struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Amount *float64 `json:"amount,omitempty"`
}
