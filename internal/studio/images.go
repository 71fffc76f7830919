package studio

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"comicstudio/internal/imagecodec"
	"comicstudio/internal/universe"
)

// AddImage compresses an uploaded file and appends it to the gallery owned
// by the node at gallery. Compression runs without holding the session, so
// concurrent uploads may land in either order; each one is a separate
// append. If the gallery owner was deleted meanwhile the image is dropped
// and an empty id is returned.
func (s *Studio) AddImage(ctx context.Context, codec imagecodec.Codec, gallery universe.Path, filename string, data []byte) (string, error) {
	raw, err := imagecodec.FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("adding %s: %w", filename, err)
	}
	compressed, err := codec.Compress(ctx, raw.String())
	if err != nil {
		s.log.Warn("image compression failed", zap.String("file", filename), zap.Error(err))
		return "", fmt.Errorf("adding %s: %w", filename, err)
	}

	img := universe.NewImage(compressed, imagecodec.TitleFromFilename(filename))

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.insertLocked(ctx, gallery, img)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("gallery removed before upload finished", zap.String("gallery", gallery.String()))
		return "", nil
	}
	return id, err
}

// SetLogo compresses an uploaded file and makes it the universe logo.
func (s *Studio) SetLogo(ctx context.Context, codec imagecodec.Codec, universeID string, data []byte) error {
	raw, err := imagecodec.FromBytes(data)
	if err != nil {
		return fmt.Errorf("setting logo: %w", err)
	}
	logo, err := codec.Compress(ctx, raw.String())
	if err != nil {
		return fmt.Errorf("setting logo: %w", err)
	}
	return s.Update(ctx, universe.UniversePath(universeID), universe.Patch{"customLogo": logo})
}
