package photos

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	// Decoders registrados para image.Decode.
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxEdge limita el lado largo de la imagen almacenada.
	MaxEdge = 1600

	jpegQuality = 80
)

var ErrNotAnImage = errors.New("data is not a decodable image")

// Downscale decodifica (JPEG/PNG), reescala si el lado largo supera MaxEdge y
// reencodea siempre a JPEG. Economía de almacenamiento: las fotos entran desde
// cámaras de teléfono a resolución completa.
func Downscale(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > MaxEdge || h > MaxEdge {
		if w >= h {
			h = h * MaxEdge / w
			w = MaxEdge
		} else {
			w = w * MaxEdge / h
			h = MaxEdge
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
