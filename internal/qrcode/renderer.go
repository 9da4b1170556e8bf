package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const dataURIPrefix = "data:image/png;base64,"

type Renderer interface {
	PNG(payload string) ([]byte, error)
	DataURI(payload string) (string, error)
}

type pngRenderer struct {
	boxSize int
	border  int
}

// NewRenderer renders codes with boxSize pixels per module and a quiet zone
// of border modules.
func NewRenderer(boxSize, border int) Renderer {
	if boxSize <= 0 {
		boxSize = 10
	}
	if border < 0 {
		border = 0
	}
	return &pngRenderer{boxSize: boxSize, border: border}
}

func (r *pngRenderer) PNG(payload string) ([]byte, error) {
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	modules := code.Bounds().Dx()
	side := modules * r.boxSize
	scaled, err := barcode.Scale(code, side, side)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}

	pad := r.border * r.boxSize
	canvas := image.NewRGBA(image.Rect(0, 0, side+2*pad, side+2*pad))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(pad, pad, pad+side, pad+side), scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) DataURI(payload string) (string, error) {
	raw, err := r.PNG(payload)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(raw), nil
}
