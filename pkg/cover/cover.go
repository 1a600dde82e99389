// Package cover turns the optional cover image into transport-safe text.
package cover

import (
	"context"
	"encoding/base64"
	"io"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

// Encode reads the whole resource and returns standard, padded Base64 with no
// data-URI prefix and no line breaks. A nil resource encodes to "".
func Encode(ctx context.Context, res contract.Resource) (string, error) {
	if res == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := res.Open()
	if err != nil {
		return "", &ReadError{Name: res.Name(), Err: err}
	}
	defer func() {
		_ = rc.Close()
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &ReadError{Name: res.Name(), Err: err}
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode.
func Decode(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
