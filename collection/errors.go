package collection

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

var (
	errLengthMismatch  = errors.Wrap(ErrInvalidParams, "values and indices must have equal length")
	errUnknownIndexType = errors.Wrap(ErrInvalidParams, "unknown index_type")
)

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
