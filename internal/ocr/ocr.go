// Package ocr: внешняя зависимость конвейера, байты изображения на входе,
// распознанный текст на выходе. Сам разбор текста живёт в reconcile/service.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Engine распознаёт текст на изображении.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img []byte) (string, error)
}

// DefaultThreshold: порог бинаризации (светлее белое, темнее чёрное).
const DefaultThreshold = 200

// Binarize: оттенки серого + порог. Результат всегда PNG.
func Binarize(data []byte, threshold uint8) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, src, b.Min, draw.Src)

	for i, v := range gray.Pix {
		if v >= threshold {
			gray.Pix[i] = 0xff
		} else {
			gray.Pix[i] = 0
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type preprocessed struct {
	next      Engine
	threshold uint8
}

// Preprocessed: движок, который перед распознаванием бинаризует картинку.
// threshold == 0: без предобработки.
func Preprocessed(next Engine, threshold uint8) Engine {
	if threshold == 0 {
		return next
	}
	return &preprocessed{next: next, threshold: threshold}
}

func (p *preprocessed) Name() string { return p.next.Name() + "+binarize" }

func (p *preprocessed) Recognize(ctx context.Context, img []byte) (string, error) {
	bin, err := Binarize(img, p.threshold)
	if err != nil {
		return "", err
	}
	return p.next.Recognize(ctx, bin)
}

// Func: адаптер для функций (удобно в тестах и CLI).
type Func func(ctx context.Context, img []byte) (string, error)

func (f Func) Name() string { return "func" }

func (f Func) Recognize(ctx context.Context, img []byte) (string, error) { return f(ctx, img) }
