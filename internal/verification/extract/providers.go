package extract

import (
	"context"
)

// Feature selects what the document-analysis provider should look for.
type Feature string

const (
	FeatureForms  Feature = "FORMS"
	FeatureTables Feature = "TABLES"
)

// BoundingBox is a detected face region in normalized fractional
// coordinates: all fields are in [0, 1] relative to image dimensions.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// DocumentAnalyzer is the capability boundary to the document-analysis
// provider. Implementations return recognized word tokens in
// provider-defined order (not necessarily reading order).
type DocumentAnalyzer interface {
	DetectWords(ctx context.Context, document []byte, features []Feature) ([]string, error)
}

// FaceDetector is the capability boundary to the face-detection
// provider. Implementations return one bounding box per detected face;
// an empty slice means no face was found and is not an error.
type FaceDetector interface {
	DetectFaces(ctx context.Context, image []byte) ([]BoundingBox, error)
}
