package detect

import (
	"bytes"

	"github.com/kycflow/kycflow-backend/pkg/errors"
)

// Kind is the classified file kind of an uploaded document.
type Kind string

const (
	KindJPEG    Kind = "jpeg"
	KindPNG     Kind = "png"
	KindPDF     Kind = "pdf"
	KindUnknown Kind = "unknown"
)

// Magic byte prefixes for the supported document formats
var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
	pdfMagic  = []byte("%PDF")
)

// Sniff classifies a byte buffer by its magic-byte prefix. It never
// reads beyond the first few bytes and performs no I/O.
func Sniff(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return KindJPEG
	case bytes.HasPrefix(data, pngMagic):
		return KindPNG
	case bytes.HasPrefix(data, pdfMagic):
		return KindPDF
	default:
		return KindUnknown
	}
}

// Classify is like Sniff but fails for unrecognized buffers.
func Classify(data []byte) (Kind, error) {
	kind := Sniff(data)
	if kind == KindUnknown {
		return KindUnknown, errors.UnsupportedFileType()
	}
	return kind, nil
}

// IsImage reports whether the kind is a raster image format.
func (k Kind) IsImage() bool {
	return k == KindJPEG || k == KindPNG
}
