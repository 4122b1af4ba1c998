package orders

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotActionable     = errors.New("order not actionable")
	ErrNotOwner          = errors.New("order belongs to another user")
)

type OutOfStockItem struct {
	ProductID string
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%s requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}
