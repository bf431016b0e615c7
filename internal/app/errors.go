package app

import "errors"

// ErrBoardNotFound and related errors classify service failures. Stores
// report absence with ErrBoardNotFound; everything else a store returns
// is treated as a storage failure and propagated untouched.
var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrBoardExists    = errors.New("board already exists")
	ErrCardNotFound   = errors.New("card not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnExists   = errors.New("column already exists")
	ErrLastColumn     = errors.New("cannot remove the last column")
	ErrEmptyTitle     = errors.New("title must not be empty")
	ErrAtEdge         = errors.New("card already at edge of column")
)
