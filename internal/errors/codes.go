package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies a failure. The string form is what the HTTP API puts in
// the "code" field of an error body.
type Code string

// Codes answered by the knight API
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

type transport struct {
	http int
	grpc codes.Code
}

// FailedPrecondition answers 400, following the google.rpc mapping
var transports = map[Code]transport{
	CodeOK:                 {http.StatusOK, codes.OK},
	CodeInvalidArgument:    {http.StatusBadRequest, codes.InvalidArgument},
	CodeNotFound:           {http.StatusNotFound, codes.NotFound},
	CodeAlreadyExists:      {http.StatusConflict, codes.AlreadyExists},
	CodeFailedPrecondition: {http.StatusBadRequest, codes.FailedPrecondition},
	CodeInternal:           {http.StatusInternalServerError, codes.Internal},
	CodeUnavailable:        {http.StatusServiceUnavailable, codes.Unavailable},
}

// ParseCode reads a code off the wire. Unknown values come back as
// CodeInternal with ok false.
func ParseCode(s string) (Code, bool) {
	c := Code(s)
	if _, ok := transports[c]; !ok {
		return CodeInternal, false
	}
	return c, true
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the status the HTTP API answers with, 500 when unknown
func (c Code) HTTPStatus() int {
	if t, ok := transports[c]; ok {
		return t.http
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the corresponding gRPC code, Unknown when unknown
func (c Code) GRPCCode() codes.Code {
	if t, ok := transports[c]; ok {
		return t.grpc
	}
	return codes.Unknown
}

// codeForGRPC is the inverse of GRPCCode. Codes the API never answers
// with collapse to CodeInternal.
func codeForGRPC(gc codes.Code) Code {
	for c, t := range transports {
		if t.grpc == gc {
			return c
		}
	}
	return CodeInternal
}
