// Package pipeline sequences classification, token attribution, and
// actionable extraction into one record per input text.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/attribution"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/extraction"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/inference"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability/metrics"
)

// Record is the aggregate result of one pipeline invocation. The ID is an
// invocation id used for log correlation; persistence layers assign their
// own identifiers.
type Record struct {
	ID              string                   `json:"id"`
	Text            string                   `json:"text"`
	Result          inference.Result         `json:"result"`
	TokenImportance []attribution.TokenScore `json:"token_importance"`
	Actionable      extraction.ActionableInfo `json:"actionable_info"`
	CreatedAt       time.Time                `json:"created_at"`
}

// Pipeline owns the three stages. All state is read-only after
// construction, so one Pipeline serves concurrent callers.
type Pipeline struct {
	classifier *inference.Engine
	explainer  *attribution.Engine
	extractor  *extraction.Extractor
}

// New assembles a Pipeline from its stages.
func New(classifier *inference.Engine, explainer *attribution.Engine, extractor *extraction.Extractor) (*Pipeline, error) {
	if classifier == nil {
		return nil, fmt.Errorf("pipeline: classifier is required")
	}
	if explainer == nil {
		return nil, fmt.Errorf("pipeline: attribution engine is required")
	}
	if extractor == nil {
		return nil, fmt.Errorf("pipeline: extractor is required")
	}
	return &Pipeline{classifier: classifier, explainer: explainer, extractor: extractor}, nil
}

// FromConfig loads the model artifacts and wires the full pipeline. The
// classifier load is fatal; the entity model is optional and its absence
// only degrades location extraction.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	runtime, err := inference.LoadBindingRuntime(cfg.Model)
	if err != nil {
		return nil, err
	}

	classifier, err := inference.NewEngine(runtime)
	if err != nil {
		return nil, err
	}
	explainer, err := attribution.NewEngine(runtime)
	if err != nil {
		return nil, err
	}

	var recognizer extraction.EntityRecognizer
	if cfg.EntityModel.ModelPath != "" {
		r, err := extraction.LoadBindingRecognizer(cfg.EntityModel)
		if err != nil {
			observability.Warnf("entity model unavailable, location extraction degrades to gazetteer rules: %v", err)
		} else {
			recognizer = r
		}
	} else {
		observability.Infof("no entity model configured, location extraction uses gazetteer rules")
	}

	extractor, err := extraction.New(cfg.Extraction, recognizer)
	if err != nil {
		return nil, err
	}
	return New(classifier, explainer, extractor)
}

// Run classifies text, then enriches the record with token attribution and
// actionable extraction. A classification failure propagates and produces
// no record: a partial record would make the caller believe classification
// succeeded. Attribution failures are absorbed: the record ships with an
// empty explanation instead, because classification is the primary
// deliverable and explanation is best-effort.
func (p *Pipeline) Run(text string) (Record, error) {
	result, err := p.classifier.Classify(text)
	if err != nil {
		return Record{}, err
	}

	importance, err := p.explainer.Explain(text, int(result.Label))
	if err != nil {
		observability.Warnf("token attribution failed, returning empty explanation: %v", err)
		metrics.RecordAttributionFailure()
		importance = []attribution.TokenScore{}
	}

	actionable := p.extractor.Extract(text, result.Label)

	return Record{
		ID:              uuid.NewString(),
		Text:            text,
		Result:          result,
		TokenImportance: importance,
		Actionable:      actionable,
		CreatedAt:       time.Now(),
	}, nil
}

// HasEntityRecognition reports whether location extraction is backed by the
// entity model.
func (p *Pipeline) HasEntityRecognition() bool {
	return p.extractor.HasEntityRecognition()
}
