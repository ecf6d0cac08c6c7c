package failure

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Class buckets an external-service error into one of the shapes
// the bot explains to the user. Classification is best-effort,
// ClassUnknown is the catch-all.
type Class string

const (
	ClassAuth        Class = "auth"
	ClassQuota       Class = "quota"
	ClassBadRequest  Class = "bad_request"
	ClassUnavailable Class = "unavailable"
	ClassUnknown     Class = "unknown"
)

func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassUnavailable
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fromHTTPStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fromHTTPStatus(reqErr.HTTPStatusCode)
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return fromGRPCCode(st.Code())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassUnavailable
	}

	return ClassUnknown
}

func fromGRPCCode(code codes.Code) Class {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ClassAuth
	case codes.ResourceExhausted:
		return ClassQuota
	case codes.InvalidArgument, codes.OutOfRange, codes.FailedPrecondition:
		return ClassBadRequest
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted:
		return ClassUnavailable
	default:
		return ClassUnknown
	}
}

func fromHTTPStatus(code int) Class {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ClassAuth
	case code == http.StatusTooManyRequests || code == http.StatusPaymentRequired:
		return ClassQuota
	case code == http.StatusBadRequest:
		return ClassBadRequest
	case code >= 500:
		return ClassUnavailable
	default:
		return ClassUnknown
	}
}
