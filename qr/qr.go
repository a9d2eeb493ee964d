// Package qr encodes kit payloads (address, redeem script) as QR images.
package qr

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// RecoveryLevel is level Q, tolerating roughly a quarter of damaged modules.
const RecoveryLevel = qrcode.High

// DefaultPixels is the PNG edge length handed to the renderer, which scales it
// into the layout box.
const DefaultPixels = 512

var ErrEmptyPayload = errors.New("qr payload is empty")

// Encode returns a PNG of payload with a quiet zone border.
func Encode(payload string, pixels int) ([]byte, error) {
	code, err := newCode(payload)
	if err != nil {
		return nil, err
	}
	if pixels <= 0 {
		pixels = DefaultPixels
	}
	png, err := code.PNG(pixels)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr png: %w", err)
	}
	return png, nil
}

// Modules returns the number of modules per side including the quiet zone.
func Modules(payload string) (int, error) {
	code, err := newCode(payload)
	if err != nil {
		return 0, err
	}
	return len(code.Bitmap()), nil
}

func newCode(payload string) (*qrcode.QRCode, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	code, err := qrcode.New(payload, RecoveryLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr payload: %w", err)
	}
	return code, nil
}
