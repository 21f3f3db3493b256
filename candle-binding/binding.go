//go:build !windows && cgo && (amd64 || arm64)
// +build !windows
// +build cgo
// +build amd64 arm64

package candle_binding

/*
#cgo LDFLAGS: -L${SRCDIR}/target/release -ldeltran_candle -ldl -lm -lpthread
#include <stdlib.h>
#include <stdbool.h>

// Structures below match the Rust #[repr(C)] definitions.

typedef struct {
    int num_classes;
    int hidden_size;
    int vocab_size;
    int tokenizer_vocab_size;
    int max_sequence_length;
    bool error;
    char* error_message;
} InitResult;

typedef struct {
    float* logits;
    int num_classes;
    char** token_texts;
    int* token_ids;
    bool* token_special;
    int num_tokens;
    bool error;
    char* error_message;
} ForwardResult;

typedef struct {
    float* logits;
    int num_classes;
    char** token_texts;
    int* token_ids;
    bool* token_special;
    int num_tokens;
    float* gradients;      // row-major [num_tokens, hidden_size]
    int hidden_size;
    bool error;
    char* error_message;
} GradientForwardResult;

typedef struct {
    char** texts;
    char** labels;
    int* starts;
    int* ends;
    float* confidences;
    int num_entities;
    bool error;
    char* error_message;
} EntityResult;

extern InitResult init_classifier(const char* model_path, const char* tokenizer_path,
                                  int max_seq_len, bool use_cpu);
extern ForwardResult classifier_forward(const char* text);
extern GradientForwardResult classifier_forward_with_gradients(const char* text, int target_class);
extern bool init_entity_recognizer(const char* model_path, bool use_cpu);
extern EntityResult recognize_entities(const char* text);
extern void free_forward_result(ForwardResult result);
extern void free_gradient_result(GradientForwardResult result);
extern void free_entity_result(EntityResult result);
extern void free_cstring(char* s);
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	initMu            sync.Mutex
	classifierLoaded  bool
	entityModelLoaded bool
)

// InitClassifier loads the classifier weights and tokenizer artifacts.
// It must be called once before Forward or ForwardWithGradients; repeated
// calls re-load the artifacts. The returned ModelInfo reports the loaded
// dimensions so the caller can check weight/tokenizer compatibility.
func InitClassifier(modelPath, tokenizerPath string, maxSeqLen int, useCPU bool) (ModelInfo, error) {
	initMu.Lock()
	defer initMu.Unlock()

	cModelPath := C.CString(modelPath)
	defer C.free(unsafe.Pointer(cModelPath))
	cTokenizerPath := C.CString(tokenizerPath)
	defer C.free(unsafe.Pointer(cTokenizerPath))

	result := C.init_classifier(cModelPath, cTokenizerPath, C.int(maxSeqLen), C.bool(useCPU))
	if result.error {
		msg := goStringAndFree(result.error_message)
		return ModelInfo{}, fmt.Errorf("candle-binding: classifier init failed: %s", msg)
	}

	classifierLoaded = true
	return ModelInfo{
		NumClasses:         int(result.num_classes),
		HiddenSize:         int(result.hidden_size),
		VocabSize:          int(result.vocab_size),
		TokenizerVocabSize: int(result.tokenizer_vocab_size),
		MaxSequenceLength:  int(result.max_sequence_length),
	}, nil
}

// ClassifierLoaded reports whether InitClassifier has succeeded.
func ClassifierLoaded() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return classifierLoaded
}

// Forward tokenizes text (truncating to the configured maximum sequence
// length) and runs a deterministic forward pass. Dropout is inactive in the
// runtime's eval mode, so identical inputs yield identical logits.
func Forward(text string) (ForwardResult, error) {
	if !ClassifierLoaded() {
		return ForwardResult{}, ErrRuntimeUnavailable
	}

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	result := C.classifier_forward(cText)
	if result.error {
		msg := goStringAndFree(result.error_message)
		C.free_forward_result(result)
		return ForwardResult{}, fmt.Errorf("candle-binding: forward pass failed: %s", msg)
	}
	defer C.free_forward_result(result)

	return ForwardResult{
		Logits: copyFloats(result.logits, int(result.num_classes)),
		Tokens: copyTokens(result.token_texts, result.token_ids, result.token_special, int(result.num_tokens)),
	}, nil
}

// ForwardWithGradients runs a traced forward pass and backpropagates the
// logit of targetClass to the token embedding layer. The returned gradient
// vectors are aligned 1:1 with the token sequence.
func ForwardWithGradients(text string, targetClass int) (GradientResult, error) {
	if !ClassifierLoaded() {
		return GradientResult{}, ErrRuntimeUnavailable
	}

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	result := C.classifier_forward_with_gradients(cText, C.int(targetClass))
	if result.error {
		msg := goStringAndFree(result.error_message)
		C.free_gradient_result(result)
		return GradientResult{}, fmt.Errorf("candle-binding: gradient pass failed: %s", msg)
	}
	defer C.free_gradient_result(result)

	numTokens := int(result.num_tokens)
	hidden := int(result.hidden_size)
	flat := copyFloats(result.gradients, numTokens*hidden)
	gradients := make([][]float32, numTokens)
	for i := 0; i < numTokens; i++ {
		gradients[i] = flat[i*hidden : (i+1)*hidden : (i+1)*hidden]
	}

	return GradientResult{
		Logits:    copyFloats(result.logits, int(result.num_classes)),
		Tokens:    copyTokens(result.token_texts, result.token_ids, result.token_special, numTokens),
		Gradients: gradients,
	}, nil
}

// InitEntityRecognizer loads the optional token classification model used
// for location entity extraction. Failure is not fatal to the process;
// callers fall back to rule-based extraction.
func InitEntityRecognizer(modelPath string, useCPU bool) error {
	initMu.Lock()
	defer initMu.Unlock()

	cModelPath := C.CString(modelPath)
	defer C.free(unsafe.Pointer(cModelPath))

	if !C.init_entity_recognizer(cModelPath, C.bool(useCPU)) {
		return fmt.Errorf("candle-binding: entity recognizer init failed for %s", modelPath)
	}
	entityModelLoaded = true
	return nil
}

// EntityRecognizerLoaded reports whether the entity model is available.
func EntityRecognizerLoaded() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return entityModelLoaded
}

// RecognizeEntities runs token classification over text and returns the
// detected entity spans with character offsets into the original text.
func RecognizeEntities(text string) ([]Entity, error) {
	if !EntityRecognizerLoaded() {
		return nil, ErrRuntimeUnavailable
	}

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	result := C.recognize_entities(cText)
	if result.error {
		msg := goStringAndFree(result.error_message)
		C.free_entity_result(result)
		return nil, fmt.Errorf("candle-binding: entity recognition failed: %s", msg)
	}
	defer C.free_entity_result(result)

	n := int(result.num_entities)
	entities := make([]Entity, 0, n)
	texts := (*[1 << 28]*C.char)(unsafe.Pointer(result.texts))[:n:n]
	labelArr := (*[1 << 28]*C.char)(unsafe.Pointer(result.labels))[:n:n]
	starts := (*[1 << 28]C.int)(unsafe.Pointer(result.starts))[:n:n]
	ends := (*[1 << 28]C.int)(unsafe.Pointer(result.ends))[:n:n]
	confs := (*[1 << 28]C.float)(unsafe.Pointer(result.confidences))[:n:n]
	for i := 0; i < n; i++ {
		entities = append(entities, Entity{
			Text:       C.GoString(texts[i]),
			Label:      C.GoString(labelArr[i]),
			Start:      int(starts[i]),
			End:        int(ends[i]),
			Confidence: float32(confs[i]),
		})
	}
	return entities, nil
}

func copyFloats(data *C.float, length int) []float32 {
	if data == nil || length <= 0 {
		return nil
	}
	cArray := (*[1 << 28]C.float)(unsafe.Pointer(data))[:length:length]
	out := make([]float32, length)
	for i := 0; i < length; i++ {
		out[i] = float32(cArray[i])
	}
	return out
}

func copyTokens(texts **C.char, ids *C.int, special *C.bool, length int) []Token {
	if length <= 0 {
		return nil
	}
	textArr := (*[1 << 28]*C.char)(unsafe.Pointer(texts))[:length:length]
	idArr := (*[1 << 28]C.int)(unsafe.Pointer(ids))[:length:length]
	specialArr := (*[1 << 28]C.bool)(unsafe.Pointer(special))[:length:length]
	tokens := make([]Token, length)
	for i := 0; i < length; i++ {
		tokens[i] = Token{
			Text:    C.GoString(textArr[i]),
			ID:      int(idArr[i]),
			Special: bool(specialArr[i]),
		}
	}
	return tokens
}

func goStringAndFree(s *C.char) string {
	if s == nil {
		return "unknown error"
	}
	msg := C.GoString(s)
	C.free_cstring(s)
	return msg
}
