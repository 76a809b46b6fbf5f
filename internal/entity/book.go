package entity

import "github.com/shopspring/decimal"

// UnsetPrice marks a price that was not supplied by the caller.
var UnsetPrice = decimal.NewFromInt(-1)

// Book is a single catalog record.
type Book struct {
	ISBN     string          `json:"isbn"`
	Title    string          `json:"title"`
	Authors  []string        `json:"authors"`
	Category string          `json:"category"`
	Year     int             `json:"year"`
	Price    decimal.Decimal `json:"price"`
}
