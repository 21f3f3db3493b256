// Package inference runs the fine-tuned classifier over raw text and turns
// logits into a calibrated prediction.
package inference

import (
	"errors"
	"fmt"
	"strings"
	"time"

	candle_binding "github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/candle-binding"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability/metrics"
)

var (
	// ErrEmptyInput is returned when the input is empty or whitespace-only.
	// Recoverable: the caller should prompt for new input.
	ErrEmptyInput = errors.New("inference: input text is empty")

	// ErrModelUnavailable is returned when the model/tokenizer artifacts did
	// not load. Fatal: no request can be served without them.
	ErrModelUnavailable = errors.New("inference: model artifacts are not loaded")
)

// Runtime is the numeric backend contract. The production implementation
// wraps the candle binding; tests substitute deterministic fakes.
type Runtime interface {
	Loaded() bool
	Forward(text string) (candle_binding.ForwardResult, error)
	ForwardWithGradients(text string, targetClass int) (candle_binding.GradientResult, error)
}

// Result is one classification outcome. It is created once per call and
// never mutated afterwards.
type Result struct {
	Label      labels.Label `json:"label_id"`
	LabelName  string       `json:"label"`
	Confidence []float64    `json:"confidence"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Engine is the inference service. It owns no mutable state of its own;
// the shared runtime is read-only after load, so one Engine serves
// concurrent callers.
type Engine struct {
	runtime Runtime
}

// NewEngine wires an Engine to a loaded runtime. Construction fails fast
// with ErrModelUnavailable when the runtime has no model, so a misconfigured
// process never reaches serving.
func NewEngine(runtime Runtime) (*Engine, error) {
	if runtime == nil || !runtime.Loaded() {
		return nil, ErrModelUnavailable
	}
	return &Engine{runtime: runtime}, nil
}

// Classify tokenizes text (truncating to the runtime's maximum sequence
// length), runs the forward pass, applies softmax, and picks the
// highest-confidence label. Ties break toward the lowest label id so the
// result is reproducible.
func (e *Engine) Classify(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		metrics.RecordClassificationError("empty_input")
		return Result{}, ErrEmptyInput
	}

	start := time.Now()
	out, err := e.runtime.Forward(text)
	if err != nil {
		metrics.RecordClassificationError("forward_failed")
		return Result{}, fmt.Errorf("inference: forward pass failed: %w", err)
	}
	if len(out.Logits) != labels.Count() {
		metrics.RecordClassificationError("bad_logits")
		return Result{}, fmt.Errorf("inference: expected %d logits, got %d", labels.Count(), len(out.Logits))
	}

	confidence := Softmax(out.Logits)
	label, ok := labels.FromIndex(Argmax(confidence))
	if !ok {
		metrics.RecordClassificationError("bad_label")
		return Result{}, fmt.Errorf("inference: argmax produced invalid label index")
	}

	metrics.RecordClassification(label.Name(), time.Since(start).Seconds())
	return Result{
		Label:      label,
		LabelName:  label.Name(),
		Confidence: confidence,
		CreatedAt:  time.Now(),
	}, nil
}
