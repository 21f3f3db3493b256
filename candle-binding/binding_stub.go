//go:build windows || !cgo || (!amd64 && !arm64)

package candle_binding

// Stub implementation for platforms without the native runtime. Every call
// reports ErrRuntimeUnavailable so the service layer can fail fast with a
// clear reason instead of crashing at link time.

// InitClassifier is unavailable without the native runtime.
func InitClassifier(modelPath, tokenizerPath string, maxSeqLen int, useCPU bool) (ModelInfo, error) {
	return ModelInfo{}, ErrRuntimeUnavailable
}

// ClassifierLoaded always reports false without the native runtime.
func ClassifierLoaded() bool { return false }

// Forward is unavailable without the native runtime.
func Forward(text string) (ForwardResult, error) {
	return ForwardResult{}, ErrRuntimeUnavailable
}

// ForwardWithGradients is unavailable without the native runtime.
func ForwardWithGradients(text string, targetClass int) (GradientResult, error) {
	return GradientResult{}, ErrRuntimeUnavailable
}

// InitEntityRecognizer is unavailable without the native runtime.
func InitEntityRecognizer(modelPath string, useCPU bool) error {
	return ErrRuntimeUnavailable
}

// EntityRecognizerLoaded always reports false without the native runtime.
func EntityRecognizerLoaded() bool { return false }

// RecognizeEntities is unavailable without the native runtime.
func RecognizeEntities(text string) ([]Entity, error) {
	return nil, ErrRuntimeUnavailable
}
