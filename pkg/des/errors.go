package des

import "errors"

var (
	ErrInvalidKey   = errors.New("des: invalid key")
	ErrInvalidBlock = errors.New("des: invalid block")
	ErrInvalidTable = errors.New("des: invalid table")
)
