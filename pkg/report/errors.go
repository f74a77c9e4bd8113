package report

import "errors"

// ErrInvalidSelection is returned when a date selection ends before it starts
var ErrInvalidSelection = errors.New("selection end date is before start date")
