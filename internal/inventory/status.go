package inventory

import "github.com/angelmondragon/retailops-backend/pkg/enums"

// ClassifyStock derives the stock status. Out-of-stock and low-stock take
// precedence over overstock, so every combination maps to exactly one status.
func ClassifyStock(current, minimum int, maximum *int) enums.StockStatus {
	switch {
	case current == 0:
		return enums.StockStatusOutOfStock
	case current <= minimum:
		return enums.StockStatusLowStock
	case maximum != nil && current >= *maximum:
		return enums.StockStatusOverstock
	default:
		return enums.StockStatusNormal
	}
}

func IsLowStock(current, minimum int) bool {
	return current <= minimum
}

func NeedsReorder(current, reorderPoint int) bool {
	return current <= reorderPoint
}
