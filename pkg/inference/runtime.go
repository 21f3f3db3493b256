package inference

import (
	"fmt"

	candle_binding "github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/candle-binding"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
)

// BindingRuntime adapts the candle binding to the Runtime interface.
type BindingRuntime struct {
	info candle_binding.ModelInfo
}

// LoadBindingRuntime initializes the native runtime from config. The load
// verifies that the classification head matches the label set and that the
// weights' embedding table matches the tokenizer vocabulary; a mismatch
// between co-located artifacts would otherwise be a silent-correctness bug.
func LoadBindingRuntime(cfg config.ModelConfig) (*BindingRuntime, error) {
	info, err := candle_binding.InitClassifier(cfg.ModelPath, cfg.TokenizerPath, cfg.MaxSequenceLength, cfg.UseCPU)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if info.NumClasses != labels.Count() {
		return nil, fmt.Errorf("%w: classification head has %d classes, label set has %d",
			ErrModelUnavailable, info.NumClasses, labels.Count())
	}
	if info.TokenizerVocabSize != 0 && info.VocabSize != info.TokenizerVocabSize {
		return nil, fmt.Errorf("%w: weight vocab size %d does not match tokenizer vocab size %d",
			ErrModelUnavailable, info.VocabSize, info.TokenizerVocabSize)
	}

	observability.Infof("Loaded classifier: model=%s tokenizer=%s classes=%d hidden=%d max_len=%d",
		cfg.ModelPath, cfg.TokenizerPath, info.NumClasses, info.HiddenSize, info.MaxSequenceLength)
	return &BindingRuntime{info: info}, nil
}

// Loaded reports whether the native classifier is initialized.
func (r *BindingRuntime) Loaded() bool {
	return candle_binding.ClassifierLoaded()
}

// Forward runs a deterministic forward pass.
func (r *BindingRuntime) Forward(text string) (candle_binding.ForwardResult, error) {
	return candle_binding.Forward(text)
}

// ForwardWithGradients runs a traced forward plus backward pass.
func (r *BindingRuntime) ForwardWithGradients(text string, targetClass int) (candle_binding.GradientResult, error) {
	return candle_binding.ForwardWithGradients(text, targetClass)
}

// Info returns the loaded model dimensions.
func (r *BindingRuntime) Info() candle_binding.ModelInfo {
	return r.info
}
