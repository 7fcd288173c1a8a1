package dto

type InventoryFilters struct {
	UserID   int64
	Search   string // Lower-cased substring over SKU, product name and category
	LowStock bool   // quantity_in_stock <= reorder_level
	IDs      []int64
}

type AddedInventory struct {
	ID          int64
	ProductName string
	Quantity    int
	UserID      int64
}

type DeletedInventory struct {
	ID      int64
	ItemSKU string
}
