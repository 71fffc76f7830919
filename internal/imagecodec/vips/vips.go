// Package vips is the libvips image codec. It needs cgo and is only linked
// by the command that selects it.
package vips

import (
	"context"
	"fmt"

	"github.com/h2non/bimg"

	"comicstudio/internal/imagecodec"
)

const (
	DefaultQuality  = 70
	DefaultMaxWidth = 1200
)

var _ imagecodec.Codec = (*Codec)(nil)

// Codec re-encodes images as metadata-free JPEG, scaling down anything
// wider than MaxWidth.
type Codec struct {
	Quality  int
	MaxWidth int
}

func New(quality, maxWidth int) *Codec {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Codec{Quality: quality, MaxWidth: maxWidth}
}

func (c *Codec) Compress(ctx context.Context, dataURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	in, err := imagecodec.ParseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	img := bimg.NewImage(in.Data)
	meta, err := img.Metadata()
	if err != nil {
		return "", fmt.Errorf("%w: %v", imagecodec.ErrNotAnImage, err)
	}

	opts := bimg.Options{
		Quality:       c.Quality,
		Type:          bimg.JPEG,
		StripMetadata: true,
	}
	if c.MaxWidth > 0 && meta.Size.Width > c.MaxWidth {
		opts.Width = c.MaxWidth
	}

	out, err := img.Process(opts)
	if err != nil {
		return "", fmt.Errorf("compressing image: %w", err)
	}
	return imagecodec.DataURI{MIME: "image/jpeg", Data: out}.String(), nil
}
