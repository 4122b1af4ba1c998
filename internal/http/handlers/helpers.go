package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aydamarket.com/api/internal/http/middleware"
	"aydamarket.com/api/internal/modules/cart"
	"aydamarket.com/api/internal/modules/orders"
	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/modules/users"
	"aydamarket.com/api/internal/shared/apperr"
)

// fail maps domain errors onto the apperr taxonomy and aborts the request.
func fail(c *gin.Context, err error) {
	var oos *orders.OutOfStockError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = apperr.NotFoundErr("Resource not found.")
	case errors.Is(err, users.ErrBadCredentials):
		err = apperr.UnauthorizedErr("Email or password is wrong.")
	case errors.Is(err, users.ErrEmailTaken):
		err = apperr.ConflictErr("This email is already registered.")
	case errors.Is(err, users.ErrUnknownRole):
		err = apperr.InvalidErr("Unknown role.", nil)
	case errors.Is(err, cart.ErrProductUnavailable):
		err = apperr.InvalidErr("This product is not available.", nil)
	case errors.Is(err, cart.ErrBadQuantity):
		err = apperr.InvalidErr("Quantity must be at least 1.", nil)
	case errors.Is(err, products.ErrBadRating):
		err = apperr.InvalidErr("Rating must be between 1 and 5.", nil)
	case errors.Is(err, products.ErrBadPrice), errors.Is(err, products.ErrBadStock):
		err = apperr.InvalidErr("Price and stock must not be negative.", nil)
	case errors.Is(err, orders.ErrCartEmpty):
		err = apperr.InvalidErr("Cart is empty.", nil)
	case errors.Is(err, orders.ErrInvalidTransition):
		err = apperr.ConflictErr("This status change is not allowed.")
	case errors.Is(err, orders.ErrNotOwner):
		err = apperr.ForbiddenErr("This order belongs to another user.")
	case errors.Is(err, orders.ErrNotActionable):
		err = apperr.ForbiddenErr("You cannot perform this action on the order.")
	case errors.As(err, &oos):
		err = apperr.ConflictErr(oos.Error())
	default:
		if _, ok := apperr.As(err); !ok {
			err = apperr.Wrap(err)
		}
	}
	middleware.Fail(c, err)
}
