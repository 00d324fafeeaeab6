package printing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FetchLogo downloads the organization logo and crops it to a circle. Reports
// render fine without one, so any failure inside the timeout returns nil and
// a log line rather than an error.
func FetchLogo(ctx context.Context, url string, timeout time.Duration, log *zap.Logger) []byte {
	if url == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := download(ctx, url)
	if err != nil {
		log.Warn("logo fetch failed, rendering without it", zap.Error(err))
		return nil
	}
	cropped, err := CircularCrop(data)
	if err != nil {
		log.Warn("logo crop failed, rendering without it", zap.Error(err))
		return nil
	}
	return cropped
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

// CircularCrop masks the image to a centered circle on a transparent
// background and re-encodes it as PNG
func CircularCrop(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	bounds := src.Bounds()
	size := bounds.Dx()
	if bounds.Dy() < size {
		size = bounds.Dy()
	}
	offsetX := bounds.Min.X + (bounds.Dx()-size)/2
	offsetY := bounds.Min.Y + (bounds.Dy()-size)/2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	mask := &circleMask{radius: size / 2}
	draw.DrawMask(dst, dst.Bounds(), src, image.Pt(offsetX, offsetY), mask, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// circleMask is an alpha mask covering a centered circle
type circleMask struct {
	radius int
}

func (m *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (m *circleMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, 2*m.radius, 2*m.radius)
}

func (m *circleMask) At(x, y int) color.Color {
	dx := float64(x - m.radius)
	dy := float64(y - m.radius)
	r := float64(m.radius)
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
