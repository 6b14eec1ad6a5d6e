package model

import (
	"time"
)

// Transaction is a single financial entry. ID and Date are assigned by the
// database on insert and never change afterwards.
type Transaction struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}
