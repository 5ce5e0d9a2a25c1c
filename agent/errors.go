package agent

import (
	"errors"

	"github.com/SaiNageswarS/trials-agent/trials"
	"google.golang.org/grpc/codes"
)

var (
	// ErrValidationFailure is returned when the validation reply is neither YES nor NO.
	ErrValidationFailure = errors.New("validation failure")

	// ErrRerankPrecondition is returned when reranking is asked to rank no candidates.
	ErrRerankPrecondition = errors.New("no trials to rerank")

	ErrEmptyQuestion = errors.New("question is required")
)

// ErrorCode maps an error to the code reported in a stream error chunk.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailure):
		return "validation_failed"
	case errors.Is(err, ErrEmptyQuestion):
		return "invalid_request"
	case errors.Is(err, trials.ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, trials.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, trials.ErrMalformedUpstreamResponse):
		return "malformed_upstream_response"
	case errors.Is(err, ErrRerankPrecondition):
		return "rerank_precondition"
	default:
		return "internal"
	}
}

// StatusCode maps an error to a gRPC status code for transport adapters.
func StatusCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, ErrEmptyQuestion), errors.Is(err, trials.ErrInvalidQuery):
		return codes.InvalidArgument
	case errors.Is(err, trials.ErrUpstreamUnavailable):
		return codes.Unavailable
	case errors.Is(err, trials.ErrMalformedUpstreamResponse):
		return codes.DataLoss
	case errors.Is(err, ErrRerankPrecondition):
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
