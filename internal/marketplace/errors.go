package marketplace

import "errors"

var (
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrFeeMismatch         = errors.New("fee must equal the listing price")
	ErrItemNotFound        = errors.New("market item not found")
	ErrAlreadySold         = errors.New("market item already sold")
	ErrNotYetSold          = errors.New("market item has not been sold")
	ErrNotOwner            = errors.New("caller does not own the market item")
	ErrPriceMismatch       = errors.New("payment must equal the asking price")
	ErrNotOperator         = errors.New("caller is not the marketplace operator")
	ErrInsufficientBalance = errors.New("insufficient treasury balance")
)
