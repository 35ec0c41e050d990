package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the few things that can go wrong while composing the page.
var (
	ErrIncompleteCard = errors.New("display card is missing required data")
	ErrInvalidPage    = errors.New("page content is invalid")
	ErrAssetNotFound  = errors.New("referenced asset not found")
)
