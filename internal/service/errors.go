package service

import (
	"github.com/dukerupert/atelier/internal/domain"
)

// Session errors - use domain.EUNAUTHORIZED
var (
	ErrSessionRequired = domain.Errorf(domain.EUNAUTHORIZED, "", "Sign in to continue")
)

// Validation errors - use domain.EINVALID
var (
	ErrMissingID         = domain.Errorf(domain.EINVALID, "", "ID is required")
	ErrEmptyCart         = domain.Errorf(domain.EINVALID, "", "Cart is empty")
	ErrNotFulfillment    = domain.Errorf(domain.EINVALID, "", "Status must be one of PROCESSING, SHIPPED or DELIVERED")
	ErrRejectionNoteLong = domain.Errorf(domain.EINVALID, "", "Rejection note must be at most 2000 characters")
)
