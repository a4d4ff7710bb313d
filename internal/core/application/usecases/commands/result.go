package commands

import (
	"pricing/internal/pkg/errs"
)

// Result is the outcome every stage reports besides its error:
// 200 success, 400 validation failure, 404 missing entity, 500 store/bus/notification failure.
type Result struct {
	StatusCode int
	Message    string
}

func successResult(message string) Result {
	return Result{StatusCode: errs.StatusCode(nil), Message: message}
}

func errorResult(err error) Result {
	return Result{StatusCode: errs.StatusCode(err), Message: err.Error()}
}
