// Package qr encodes asset reference payloads into QR module matrices.
//
// The encoder is deterministic: identical payload and level always produce
// a bit-identical matrix, which keeps sheet output reproducible and lets
// tests compare against golden matrices. The package exposes only the raw
// module grid; turning modules into ink is the renderer's job.
package qr

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// Level is the QR error-correction level, re-exported so callers other
// than the renderer never import the underlying library directly.
type Level = qrcode.RecoveryLevel

// Matrix is a square grid of QR modules; true means a dark module.
// The quiet zone is not included.
type Matrix [][]bool

// Size returns the matrix side length in modules.
func (m Matrix) Size() int { return len(m) }

// ParseLevel maps a template code level to the QR recovery level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case sheet.LevelLow:
		return qrcode.Low, nil
	case sheet.LevelMedium, "":
		return qrcode.Medium, nil
	case sheet.LevelHigh:
		return qrcode.High, nil
	case sheet.LevelHighest:
		return qrcode.Highest, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidTemplate, "invalid code level %q", level)
	}
}

// Encode converts payload into a module matrix at the given recovery level.
// Payloads that exceed the capacity of the level fail with a
// PAYLOAD_TOO_LARGE coded error; all other failures are INTERNAL.
func Encode(payload string, level Level) (Matrix, error) {
	if payload == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "code payload cannot be empty")
	}

	q, err := qrcode.New(payload, level)
	if err != nil {
		if strings.Contains(err.Error(), "too long") {
			return nil, errors.Wrap(errors.ErrCodePayloadTooLarge, err,
				"payload of %d bytes exceeds capacity at this level", len(payload))
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "QR encoding failed")
	}

	q.DisableBorder = true
	return Matrix(q.Bitmap()), nil
}

// Encoder is the code-encoder boundary the layout engine depends on.
// The production implementation is [Func]; tests substitute their own.
type Encoder interface {
	Encode(payload string, level Level) (Matrix, error)
}

// Func adapts a plain function to the [Encoder] interface.
type Func func(payload string, level Level) (Matrix, error)

// Encode implements [Encoder].
func (f Func) Encode(payload string, level Level) (Matrix, error) {
	return f(payload, level)
}

// Default returns the production encoder backed by [Encode].
func Default() Encoder { return Func(Encode) }
