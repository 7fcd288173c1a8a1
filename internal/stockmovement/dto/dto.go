package dto

type MovementFilters struct {
	UserID  int64
	ItemSKU string
	Type    string
	Limit   int
}
