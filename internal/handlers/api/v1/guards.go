package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/pkg/idgen"
)

const maxBodyBytes = 1 << 20

func parseKnightID(raw string) (string, error) {
	if !idgen.IsValid(raw) {
		return "", errors.InvalidArgumentf("invalid knight id: %s", raw).WithMeta("id", raw)
	}
	return raw, nil
}

// decodeBody reads a single JSON object into dst, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.InvalidArgument("request body is required")
		}
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request body: "+err.Error())
	}
	if dec.More() {
		return errors.InvalidArgument("request body must contain a single JSON object")
	}
	return nil
}
