package extract

import (
	"context"
	"strings"

	"github.com/kycflow/kycflow-backend/internal/verification/detect"
	"github.com/kycflow/kycflow-backend/pkg/errors"
)

// TextExtractor turns an uploaded identity document into a single text
// blob suitable for name matching.
type TextExtractor struct {
	analyzer DocumentAnalyzer
}

// NewTextExtractor creates a text extractor using the given analyzer.
func NewTextExtractor(analyzer DocumentAnalyzer) *TextExtractor {
	return &TextExtractor{analyzer: analyzer}
}

// Extract analyzes the document and returns all recognized words joined
// with single spaces. Images are analyzed for forms only; PDFs for
// tables and forms. Any other kind fails with an unsupported-file-type
// error before the provider is called.
func (e *TextExtractor) Extract(ctx context.Context, document []byte, kind detect.Kind) (string, error) {
	var features []Feature
	switch {
	case kind.IsImage():
		features = []Feature{FeatureForms}
	case kind == detect.KindPDF:
		features = []Feature{FeatureTables, FeatureForms}
	default:
		return "", errors.UnsupportedFileType()
	}

	words, err := e.analyzer.DetectWords(ctx, document, features)
	if err != nil {
		return "", errors.Extraction(err)
	}
	return strings.Join(words, " "), nil
}
