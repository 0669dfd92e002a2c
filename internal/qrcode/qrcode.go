// Package qrcode renders short links as QR codes.
package qrcode

import (
	"fmt"
	"image/color"

	qr "github.com/skip2/go-qrcode"
)

// Size is the edge length of the PNG rendering in pixels.
const Size = 160

var (
	Foreground = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Code is one rendered QR code.
type Code struct {
	Content string
	PNG     []byte
	Art     string
}

// Generate encodes content at the highest error correction level.
func Generate(content string) (*Code, error) {
	q, err := qr.New(content, qr.Highest)
	if err != nil {
		return nil, fmt.Errorf("error encoding QR code: %w", err)
	}

	q.ForegroundColor = Foreground
	q.BackgroundColor = Background

	png, err := q.PNG(Size)
	if err != nil {
		return nil, fmt.Errorf("error rendering QR code: %w", err)
	}

	return &Code{
		Content: content,
		PNG:     png,
		Art:     q.ToSmallString(false),
	}, nil
}
