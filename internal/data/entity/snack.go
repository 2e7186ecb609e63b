package entity

type SnackItem struct {
	Base
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	IsAvailable bool    `db:"is_available"`
}
