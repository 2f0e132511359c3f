package errors

import "errors"

var ErrBadRequest = errors.New("missing or invalid request field")
var ErrNotFound = errors.New("resource not found")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrUnauthorized = errors.New("user is not authorized")
var ErrPaymentNotCompleted = errors.New("payment is not completed")
