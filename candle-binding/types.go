// Package candle_binding provides Go bindings for the Candle-based inference
// runtime that backs the disaster tweet classifier.
//
// Conventions:
//   - Rust builds a static/dynamic library via cargo build --release
//   - Go links against it via #cgo LDFLAGS
//   - C strings are passed via CString/CStr
//   - Rust-allocated memory is freed via explicit free functions
//
// The runtime owns the tokenizer and the fine-tuned MiniLM encoder plus
// classification head. Model state is process-wide: it is loaded once via
// InitClassifier and is read-only afterwards, so concurrent calls into the
// binding are safe.
package candle_binding

import "errors"

// ErrRuntimeUnavailable is returned by every binding call when the native
// runtime is not linked in (built without CGo) or has not been initialized.
var ErrRuntimeUnavailable = errors.New("candle-binding: inference runtime not available")

// Token is one sub-word piece as produced by the runtime's tokenizer.
// Special marks structural tokens ([CLS], [SEP], [PAD]) that carry no
// semantic content.
type Token struct {
	Text    string
	ID      int
	Special bool
}

// ModelInfo describes the loaded classifier artifacts. It is returned by
// InitClassifier so callers can verify weight/tokenizer compatibility.
type ModelInfo struct {
	NumClasses         int
	HiddenSize         int
	VocabSize          int // embedding table rows in the loaded weights
	TokenizerVocabSize int // vocabulary entries in the tokenizer artifact
	MaxSequenceLength  int
}

// ForwardResult is the output of a single deterministic forward pass:
// one unnormalized logit per class, plus the token sequence the input was
// encoded into (truncated to the configured maximum length).
type ForwardResult struct {
	Logits []float32
	Tokens []Token
}

// GradientResult is the output of a traced forward pass followed by a
// backward pass of the target class logit with respect to the token
// embedding layer. Gradients holds one vector of HiddenSize floats per
// token position, aligned 1:1 with Tokens.
type GradientResult struct {
	Logits    []float32
	Tokens    []Token
	Gradients [][]float32
}

// Entity is a named-entity span found by the token classification model.
type Entity struct {
	Text       string
	Label      string // e.g. "GPE", "LOC", "FAC"
	Start      int    // start character offset in the original text
	End        int    // end character offset in the original text
	Confidence float32
}
