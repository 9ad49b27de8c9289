package entities

type OrderItem struct {
	ID           uint64   `db:"id"`
	OrderID      uint64   `db:"order_id"`
	PartNumber   *string  `db:"part_number"`
	PartName     string   `db:"part_name"`
	Manufacturer *string  `db:"manufacturer"`
	Quantity     int      `db:"quantity"`
	UnitPrice    *float64 `db:"unit_price"`
	Status       string   `db:"status"`
	Notes        *string  `db:"notes"`
}
