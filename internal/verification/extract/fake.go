package extract

import "context"

// FakeAnalyzer is an in-memory DocumentAnalyzer for tests.
type FakeAnalyzer struct {
	Words []string
	Err   error

	// Calls records the feature set of each DetectWords invocation.
	Calls [][]Feature
}

func (f *FakeAnalyzer) DetectWords(_ context.Context, _ []byte, features []Feature) ([]string, error) {
	f.Calls = append(f.Calls, features)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Words, nil
}

// FakeDetector is an in-memory FaceDetector for tests.
type FakeDetector struct {
	Boxes []BoundingBox
	Err   error
	Calls int
}

func (f *FakeDetector) DetectFaces(_ context.Context, _ []byte) ([]BoundingBox, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Boxes, nil
}
