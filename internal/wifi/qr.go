package wifi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Download metadata of a rendered QR code.
const (
	DownloadName = "wifi_qr_code.png"
	MIMEType     = "image/png"
)

// Options control QR rendering.
type Options struct {
	// Level is the error correction level: L, M, Q or H.
	Level string
	// BoxSize is the width in pixels of one module.
	BoxSize int
	// Border is the quiet zone width in modules. Negative selects the default.
	Border int
}

// DefaultOptions returns level L, 10 pixel modules and a 4 module border.
func DefaultOptions() Options {
	return Options{Level: "L", BoxSize: 10, Border: 4}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Level == "" {
		o.Level = d.Level
	}
	if o.BoxSize <= 0 {
		o.BoxSize = d.BoxSize
	}
	if o.Border < 0 {
		o.Border = d.Border
	}
	return o
}

// ParseLevel maps a level letter to the encoder's recovery level.
func ParseLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return qrcode.Low, nil
	case "M", "MEDIUM":
		return qrcode.Medium, nil
	case "Q", "HIGH":
		return qrcode.High, nil
	case "H", "HIGHEST":
		return qrcode.Highest, nil
	default:
		return qrcode.Low, fmt.Errorf("unknown error correction level %q (expected L, M, Q or H)", s)
	}
}

// Modules returns the QR symbol for payload without a quiet zone.
// true is a dark module.
func Modules(payload string, level string) ([][]bool, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	code, err := qrcode.New(payload, lvl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// Image renders payload black on white with the configured module size and border.
func Image(payload string, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	modules, err := Modules(payload, opts.Level)
	if err != nil {
		return nil, err
	}

	n := len(modules)
	size := (n + 2*opts.Border) * opts.BoxSize
	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	offset := opts.Border * opts.BoxSize
	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := offset + x*opts.BoxSize
			y0 := offset + y*opts.BoxSize
			for py := y0; py < y0+opts.BoxSize; py++ {
				for px := x0; px < x0+opts.BoxSize; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img, nil
}

// PNG renders payload as PNG bytes.
func PNG(payload string, opts Options) ([]byte, error) {
	img, err := Image(payload, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
