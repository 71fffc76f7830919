package imagecodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotDataURI = errors.New("not a data URI")
	ErrNotAnImage = errors.New("not an image")
)

// DataURI is an embedded image in base64 form, the only image
// representation the workbench persists.
type DataURI struct {
	MIME string
	Data []byte
}

func ParseDataURI(s string) (DataURI, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return DataURI{}, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing payload", ErrNotDataURI)
	}
	mime, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return DataURI{}, fmt.Errorf("%w: only base64 payloads are supported", ErrNotDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURI{}, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return DataURI{MIME: mime, Data: data}, nil
}

func (d DataURI) String() string {
	return "data:" + d.MIME + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// FromBytes sniffs the content type of raw file bytes and rejects anything
// that is not an image.
func FromBytes(data []byte) (DataURI, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return DataURI{}, fmt.Errorf("%w: %s", ErrNotAnImage, mt.String())
	}
	return DataURI{MIME: mt.String(), Data: data}, nil
}

// TitleFromFilename keeps the part of the base name before the first dot.
func TitleFromFilename(name string) string {
	title, _, _ := strings.Cut(filepath.Base(name), ".")
	return title
}
