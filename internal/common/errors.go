package common

import "errors"

var (
	// ErrorStaffOnly is returned before a request is issued when the
	// action is reserved for bank staff.
	ErrorStaffOnly = errors.New("staff only")

	// ErrorValidation wraps form and argument validation failures.
	ErrorValidation = errors.New("validation error")
)
