package model

import "github.com/shopspring/decimal"

// MoneyScale matches the NUMERIC(18, 2) money columns.
const MoneyScale = 2

// RoundMoney rounds half away from zero to MoneyScale, the way Postgres rounds on insert.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
