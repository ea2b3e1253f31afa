package server

import (
	"errors"
	"net/http"

	"github.com/mentorque/skillmatch/internal/compare"
	"github.com/mentorque/skillmatch/internal/engine"
)

// httpStatus maps comparison errors onto HTTP status codes. Input problems
// are the caller's fault; engine problems surface as gateway-style errors so
// clients can tell them apart from bugs in this service.
func httpStatus(err error) int {
	var inputErr *compare.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}

	if engine.IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	if engine.IsUnavailable(err) {
		return http.StatusServiceUnavailable
	}

	var mismatchErr *engine.ProtocolMismatchError
	var upstreamErr *engine.UpstreamError
	if errors.As(err, &mismatchErr) || errors.As(err, &upstreamErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
