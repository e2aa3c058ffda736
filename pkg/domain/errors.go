package domain

import "errors"

// ErrWorkshopNotFound is returned when a workshop ID cannot be found in the store.
var ErrWorkshopNotFound = errors.New("workshop not found")

// ErrElementNotFound is returned when an element ID does not exist in the workshop.
var ErrElementNotFound = errors.New("element not found")

// ErrContextNotFound is returned when a bounded context ID does not exist in the workshop.
var ErrContextNotFound = errors.New("bounded context not found")
