package extract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionAPI is the subset of the Rekognition client used by the
// detector.
type RekognitionAPI interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// RekognitionDetector implements FaceDetector on top of AWS Rekognition.
type RekognitionDetector struct {
	client RekognitionAPI
}

// NewRekognitionDetector creates a detector backed by the given client.
func NewRekognitionDetector(client RekognitionAPI) *RekognitionDetector {
	return &RekognitionDetector{client: client}
}

// DetectFaces analyzes the raw image bytes and returns the normalized
// bounding box of every detected face, most prominent face first.
func (d *RekognitionDetector) DetectFaces(ctx context.Context, image []byte) ([]BoundingBox, error) {
	out, err := d.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: image},
		Attributes: []types.Attribute{types.AttributeAll},
	})
	if err != nil {
		return nil, err
	}

	boxes := make([]BoundingBox, 0, len(out.FaceDetails))
	for _, face := range out.FaceDetails {
		if face.BoundingBox == nil {
			continue
		}
		boxes = append(boxes, BoundingBox{
			Left:   float64(derefFloat32(face.BoundingBox.Left)),
			Top:    float64(derefFloat32(face.BoundingBox.Top)),
			Width:  float64(derefFloat32(face.BoundingBox.Width)),
			Height: float64(derefFloat32(face.BoundingBox.Height)),
		})
	}
	return boxes, nil
}

func derefFloat32(f *float32) float32 {
	if f == nil {
		return 0
	}
	return *f
}
