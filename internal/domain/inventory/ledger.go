package inventory

// Delta calcula el movimiento necesario para pasar de current a target.
func Delta(current, target int) int {
	return target - current
}

// LedgerSum suma los deltas de una serie de movimientos.
func LedgerSum(deltas []int) int {
	total := 0
	for _, d := range deltas {
		total += d
	}
	return total
}

// Reconciled indica si el saldo del libro coincide con el stock actual.
func Reconciled(stockQty int, deltas []int) bool {
	return LedgerSum(deltas) == stockQty
}
