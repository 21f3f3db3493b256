package attribution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	candle_binding "github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/candle-binding"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/inference"
)

type fakeRuntime struct {
	loaded    bool
	tokens    []candle_binding.Token
	gradients [][]float32
	err       error
}

func (f *fakeRuntime) Loaded() bool { return f.loaded }

func (f *fakeRuntime) Forward(text string) (candle_binding.ForwardResult, error) {
	return candle_binding.ForwardResult{}, errors.New("not used in this test")
}

func (f *fakeRuntime) ForwardWithGradients(text string, targetClass int) (candle_binding.GradientResult, error) {
	if f.err != nil {
		return candle_binding.GradientResult{}, f.err
	}
	return candle_binding.GradientResult{
		Logits:    []float32{1, 0, 0, 0, 0},
		Tokens:    f.tokens,
		Gradients: f.gradients,
	}, nil
}

func structuralSandwich(words ...string) []candle_binding.Token {
	tokens := []candle_binding.Token{{Text: "[CLS]", ID: 101, Special: true}}
	for i, w := range words {
		tokens = append(tokens, candle_binding.Token{Text: w, ID: 1000 + i})
	}
	return append(tokens, candle_binding.Token{Text: "[SEP]", ID: 102, Special: true})
}

func TestExplainExcludesStructuralTokens(t *testing.T) {
	rt := &fakeRuntime{
		loaded: true,
		tokens: structuralSandwich("flood", "downtown"),
		gradients: [][]float32{
			{9, 9}, // [CLS]
			{3, 4}, // flood -> norm 5
			{0, 1}, // downtown -> norm 1
			{9, 9}, // [SEP]
		},
	}
	engine, err := NewEngine(rt)
	require.NoError(t, err)

	scores, err := engine.Explain("flood downtown", 0)
	require.NoError(t, err)

	require.Len(t, scores, 2)
	assert.Equal(t, "flood", scores[0].Token)
	assert.Equal(t, "downtown", scores[1].Token)
	assert.InDelta(t, 5.0, scores[0].Raw, 1e-9)
	assert.InDelta(t, 1.0, scores[1].Raw, 1e-9)
}

func TestExplainNormalizesToUnitRange(t *testing.T) {
	rt := &fakeRuntime{
		loaded: true,
		tokens: structuralSandwich("a", "b", "c"),
		gradients: [][]float32{
			{0},
			{2}, // raw 2
			{6}, // raw 6 -> normalized 1
			{1}, // raw 1 -> normalized 0
			{0},
		},
	}
	engine, err := NewEngine(rt)
	require.NoError(t, err)

	scores, err := engine.Explain("a b c", 1)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	var sawOne bool
	for _, s := range scores {
		assert.GreaterOrEqual(t, s.Normalized, 0.0)
		assert.LessOrEqual(t, s.Normalized, 1.0)
		if s.Normalized == 1.0 {
			sawOne = true
		}
	}
	assert.True(t, sawOne, "at least one token must score exactly 1.0")
	assert.InDelta(t, 0.2, scores[0].Normalized, 1e-9)
	assert.InDelta(t, 1.0, scores[1].Normalized, 1e-9)
	assert.InDelta(t, 0.0, scores[2].Normalized, 1e-9)
}

func TestExplainAllEqualScoresBecomeZero(t *testing.T) {
	rt := &fakeRuntime{
		loaded:    true,
		tokens:    structuralSandwich("x", "y"),
		gradients: [][]float32{{1}, {3}, {3}, {1}},
	}
	engine, err := NewEngine(rt)
	require.NoError(t, err)

	scores, err := engine.Explain("x y", 0)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.Equal(t, 0.0, s.Normalized)
	}
}

func TestExplainPreservesTokenOrder(t *testing.T) {
	rt := &fakeRuntime{
		loaded:    true,
		tokens:    structuralSandwich("one", "two", "three"),
		gradients: [][]float32{{0}, {9}, {1}, {5}, {0}},
	}
	engine, err := NewEngine(rt)
	require.NoError(t, err)

	scores, err := engine.Explain("one two three", 2)
	require.NoError(t, err)

	got := make([]string, len(scores))
	for i, s := range scores {
		got[i] = s.Token
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestExplainRejectsOutOfRangeLabel(t *testing.T) {
	engine, err := NewEngine(&fakeRuntime{loaded: true})
	require.NoError(t, err)

	for _, id := range []int{-1, 5, 100} {
		_, err := engine.Explain("text", id)
		var attErr *Error
		require.ErrorAs(t, err, &attErr, "label id %d", id)
		assert.Equal(t, id, attErr.LabelID)
	}
}

func TestExplainWrapsRuntimeFailure(t *testing.T) {
	boom := errors.New("backward pass failed")
	engine, err := NewEngine(&fakeRuntime{loaded: true, err: boom})
	require.NoError(t, err)

	_, err = engine.Explain("text", 0)
	var attErr *Error
	require.ErrorAs(t, err, &attErr)
	assert.ErrorIs(t, err, boom)
}

func TestExplainRejectsMisalignedGradients(t *testing.T) {
	rt := &fakeRuntime{
		loaded:    true,
		tokens:    structuralSandwich("word"),
		gradients: [][]float32{{1}, {2}}, // 3 tokens, 2 gradients
	}
	engine, err := NewEngine(rt)
	require.NoError(t, err)

	_, err = engine.Explain("word", 0)
	var attErr *Error
	assert.ErrorAs(t, err, &attErr)
}

func TestNewEngineRequiresLoadedRuntime(t *testing.T) {
	_, err := NewEngine(&fakeRuntime{loaded: false})
	assert.ErrorIs(t, err, inference.ErrModelUnavailable)
}
