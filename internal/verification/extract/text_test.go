package extract_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kycflow/kycflow-backend/internal/verification/detect"
	"github.com/kycflow/kycflow-backend/internal/verification/extract"
	"github.com/kycflow/kycflow-backend/pkg/errors"
)

func TestTextExtractor_JoinsWordsWithSpaces(t *testing.T) {
	analyzer := &extract.FakeAnalyzer{Words: []string{"REPUBLIC", "OF", "UTOPIA", "JANE", "DOE"}}
	e := extract.NewTextExtractor(analyzer)

	got, err := e.Extract(context.Background(), []byte("img"), detect.KindJPEG)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if want := "REPUBLIC OF UTOPIA JANE DOE"; got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestTextExtractor_FeatureSetByKind(t *testing.T) {
	tests := []struct {
		name string
		kind detect.Kind
		want []extract.Feature
	}{
		{"jpeg uses forms", detect.KindJPEG, []extract.Feature{extract.FeatureForms}},
		{"png uses forms", detect.KindPNG, []extract.Feature{extract.FeatureForms}},
		{"pdf uses tables and forms", detect.KindPDF, []extract.Feature{extract.FeatureTables, extract.FeatureForms}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &extract.FakeAnalyzer{Words: []string{"x"}}
			e := extract.NewTextExtractor(analyzer)

			if _, err := e.Extract(context.Background(), []byte("doc"), tt.kind); err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(analyzer.Calls) != 1 {
				t.Fatalf("analyzer called %d times, want 1", len(analyzer.Calls))
			}
			got := analyzer.Calls[0]
			if len(got) != len(tt.want) {
				t.Fatalf("features = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("features = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTextExtractor_UnsupportedKind(t *testing.T) {
	analyzer := &extract.FakeAnalyzer{Words: []string{"x"}}
	e := extract.NewTextExtractor(analyzer)

	_, err := e.Extract(context.Background(), []byte("doc"), detect.KindUnknown)
	if !errors.Is(err, errors.ErrUnsupportedFileType) {
		t.Errorf("error = %v, want ErrUnsupportedFileType", err)
	}
	if len(analyzer.Calls) != 0 {
		t.Error("analyzer should not be called for unsupported kinds")
	}
}

func TestTextExtractor_ProviderError(t *testing.T) {
	boom := stderrors.New("throttled")
	e := extract.NewTextExtractor(&extract.FakeAnalyzer{Err: boom})

	_, err := e.Extract(context.Background(), []byte("doc"), detect.KindJPEG)
	if !errors.Is(err, errors.ErrExtraction) {
		t.Errorf("error = %v, want ErrExtraction", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, should wrap the provider error", err)
	}
}

func TestTextExtractor_NoWords(t *testing.T) {
	e := extract.NewTextExtractor(&extract.FakeAnalyzer{})

	got, err := e.Extract(context.Background(), []byte("doc"), detect.KindPNG)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "" {
		t.Errorf("Extract() = %q, want empty string", got)
	}
}
