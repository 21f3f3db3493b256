package extraction

import (
	"fmt"

	candle_binding "github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/candle-binding"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
)

// EntityRecognizer finds named-entity spans in text. The production
// implementation wraps the candle token classification model; tests inject
// deterministic fakes, and a nil recognizer selects the gazetteer fallback.
type EntityRecognizer interface {
	Recognize(text string) ([]candle_binding.Entity, error)
}

// BindingRecognizer is the candle-backed EntityRecognizer.
type BindingRecognizer struct{}

// LoadBindingRecognizer initializes the NER model. An error here is not
// fatal to the process: callers construct the Extractor with a nil
// recognizer instead, accepting reduced location recall.
func LoadBindingRecognizer(cfg config.EntityModelConfig) (*BindingRecognizer, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("extraction: no entity model configured")
	}
	if err := candle_binding.InitEntityRecognizer(cfg.ModelPath, cfg.UseCPU); err != nil {
		return nil, fmt.Errorf("extraction: entity model load failed: %w", err)
	}
	return &BindingRecognizer{}, nil
}

// Recognize runs token classification over text.
func (r *BindingRecognizer) Recognize(text string) ([]candle_binding.Entity, error) {
	return candle_binding.RecognizeEntities(text)
}
