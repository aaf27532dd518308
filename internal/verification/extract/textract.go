package extract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractAPI is the subset of the Textract client used by the analyzer.
type TextractAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// TextractAnalyzer implements DocumentAnalyzer on top of AWS Textract.
type TextractAnalyzer struct {
	client TextractAPI
}

// NewTextractAnalyzer creates an analyzer backed by the given client.
func NewTextractAnalyzer(client TextractAPI) *TextractAnalyzer {
	return &TextractAnalyzer{client: client}
}

// DetectWords runs synchronous document analysis on the raw document
// bytes and returns the text of every WORD block in response order.
func (a *TextractAnalyzer) DetectWords(ctx context.Context, document []byte, features []Feature) ([]string, error) {
	out, err := a.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     &types.Document{Bytes: document},
		FeatureTypes: toFeatureTypes(features),
	})
	if err != nil {
		return nil, err
	}

	var words []string
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeWord && block.Text != nil {
			words = append(words, aws.ToString(block.Text))
		}
	}
	return words, nil
}

func toFeatureTypes(features []Feature) []types.FeatureType {
	out := make([]types.FeatureType, 0, len(features))
	for _, f := range features {
		out = append(out, types.FeatureType(f))
	}
	return out
}
