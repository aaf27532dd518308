package extract

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"github.com/kycflow/kycflow-backend/pkg/errors"
)

// FaceExtractor crops the most prominent face out of an identity
// document image and re-encodes it as JPEG.
type FaceExtractor struct {
	detector FaceDetector
}

// NewFaceExtractor creates a face extractor using the given detector.
func NewFaceExtractor(detector FaceDetector) *FaceExtractor {
	return &FaceExtractor{detector: detector}
}

// Extract returns a JPEG crop of the first detected face, or (nil, nil)
// when the image contains no detectable face. Absence of a face is not
// a failure; only provider errors and undecodable images are.
func (e *FaceExtractor) Extract(ctx context.Context, imageData []byte) ([]byte, error) {
	boxes, err := e.detector.DetectFaces(ctx, imageData)
	if err != nil {
		return nil, errors.Extraction(err)
	}
	if len(boxes) == 0 {
		return nil, nil
	}

	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.ImageDecode(err)
	}

	rect := pixelRect(boxes[0], src.Bounds())
	if rect.Empty() {
		return nil, nil
	}

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), src, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, crop, nil); err != nil {
		return nil, errors.Internal("failed to encode face crop")
	}
	return buf.Bytes(), nil
}

// pixelRect scales a normalized bounding box to pixel coordinates and
// clamps it to the image bounds. Providers occasionally report boxes
// that extend slightly past the edge of the image.
func pixelRect(box BoundingBox, bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	left := bounds.Min.X + int(box.Left*w)
	top := bounds.Min.Y + int(box.Top*h)
	right := bounds.Min.X + int((box.Left+box.Width)*w)
	bottom := bounds.Min.Y + int((box.Top+box.Height)*h)
	return image.Rect(left, top, right, bottom).Intersect(bounds)
}
