package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if As(err, &customErr) {
		return status.Error(customErr.Code.GRPCCode(), customErr.Message)
	}

	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError turns a gRPC status error back into an *Error. Errors
// that carry no status are wrapped as unavailable.
func FromGRPCError(err error, message string) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return WrapWithCode(err, CodeUnavailable, message)
	}
	return WrapWithCode(err, codeForGRPC(st.Code()), message).
		WithMeta("grpc_message", st.Message())
}
