// Package attribution computes per-token importance scores for a
// classification via gradient attribution: the L2 norm of the predicted
// class logit's gradient with respect to each token's input embedding.
//
// This is one traced forward+backward pass, which is cheap next to a
// perturbation method like leave-one-token-out. The score is a local linear
// approximation of sensitivity, a display heuristic, not a verified causal
// explanation.
package attribution

import (
	"fmt"
	"math"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/inference"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
)

// Error reports a failed attribution pass for a specific label id.
type Error struct {
	LabelID int
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("attribution failed for label %d: %v", e.LabelID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// TokenScore is the importance of one non-structural token. Normalized is
// min-max scaled to [0,1] over the tokens of the same call.
type TokenScore struct {
	Token      string  `json:"token"`
	Raw        float64 `json:"raw_score"`
	Normalized float64 `json:"score"`
}

// Engine computes token attributions against a shared read-only runtime.
type Engine struct {
	runtime inference.Runtime
}

// NewEngine wires the attribution engine to a loaded runtime.
func NewEngine(runtime inference.Runtime) (*Engine, error) {
	if runtime == nil || !runtime.Loaded() {
		return nil, inference.ErrModelUnavailable
	}
	return &Engine{runtime: runtime}, nil
}

// Explain backpropagates the logit of labelID to the token embeddings and
// scores each token by its gradient's L2 norm. Structural tokens
// ([CLS], [SEP], [PAD]) are dropped from the output; the remaining scores
// are min-max normalized, with an all-equal input defined as all zeros.
// Output order is the original left-to-right token order.
func (e *Engine) Explain(text string, labelID int) ([]TokenScore, error) {
	if _, ok := labels.FromIndex(labelID); !ok {
		return nil, &Error{LabelID: labelID, Err: fmt.Errorf("label id out of range [0,%d)", labels.Count())}
	}

	out, err := e.runtime.ForwardWithGradients(text, labelID)
	if err != nil {
		return nil, &Error{LabelID: labelID, Err: err}
	}
	if len(out.Gradients) != len(out.Tokens) {
		return nil, &Error{LabelID: labelID, Err: fmt.Errorf(
			"gradient count %d does not match token count %d", len(out.Gradients), len(out.Tokens))}
	}

	scores := make([]TokenScore, 0, len(out.Tokens))
	for i, tok := range out.Tokens {
		if tok.Special {
			continue
		}
		scores = append(scores, TokenScore{Token: tok.Text, Raw: l2Norm(out.Gradients[i])})
	}

	normalize(scores)
	return scores, nil
}

func l2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// normalize min-max scales Raw into Normalized in place. When every raw
// score is equal the spread is zero, so all normalized scores are 0 rather
// than dividing by zero.
func normalize(scores []TokenScore) {
	if len(scores) == 0 {
		return
	}
	minScore, maxScore := scores[0].Raw, scores[0].Raw
	for _, s := range scores[1:] {
		if s.Raw < minScore {
			minScore = s.Raw
		}
		if s.Raw > maxScore {
			maxScore = s.Raw
		}
	}
	spread := maxScore - minScore
	if spread == 0 {
		for i := range scores {
			scores[i].Normalized = 0
		}
		return
	}
	for i := range scores {
		scores[i].Normalized = (scores[i].Raw - minScore) / spread
	}
}
