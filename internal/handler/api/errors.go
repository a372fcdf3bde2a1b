package api

import (
	"context"
	"errors"

	"BCBSeries/internal/domain/errs"
	xhttp "BCBSeries/pkg/http"
)

const statusClientClosedRequest = 499

// toAppError maps the domain taxonomy onto HTTP-facing errors. Exhausted
// retries are checked first because a RetryError also unwraps to its cause.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var retryErr *errs.RetryError
	switch {
	case errors.As(err, &retryErr):
		return xhttp.ExhaustedRetriesError(err.Error(), retryErr.Attempts).WithError(err)
	case errors.Is(err, errs.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, errs.ErrNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, errs.ErrTimeout):
		return xhttp.TimeoutError(err.Error()).WithError(err)
	case errors.Is(err, errs.ErrIntegrity):
		return xhttp.IntegrityError(err.Error()).WithError(err)
	case errors.Is(err, errs.ErrUpstream):
		return xhttp.UpstreamError(err.Error()).WithError(err)
	case errors.Is(err, context.Canceled):
		return xhttp.NewAppError("ERR_CANCELED", "", "request canceled", statusClientClosedRequest).WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}
