package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	candle_binding "github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/candle-binding"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/attribution"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/extraction"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/inference"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Suite")
}

// fakeRuntime drives the pipeline without the native library. Logits are a
// pure function of the input text so runs are reproducible.
type fakeRuntime struct {
	forwardErr  error
	gradientErr error
}

func (f *fakeRuntime) Loaded() bool { return true }

func (f *fakeRuntime) logitsFor(text string) []float32 {
	logits := make([]float32, labels.Count())
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "trapped"):
		logits[int(labels.RescueVolunteeringOrDonation)] = 6
	case strings.Contains(lower, "bridge"):
		logits[int(labels.InfrastructureAndUtilityDamage)] = 6
	default:
		logits[int(labels.NotHumanitarian)] = 6
	}
	return logits
}

func (f *fakeRuntime) Forward(text string) (candle_binding.ForwardResult, error) {
	if f.forwardErr != nil {
		return candle_binding.ForwardResult{}, f.forwardErr
	}
	return candle_binding.ForwardResult{
		Logits: f.logitsFor(text),
		Tokens: tokenize(text),
	}, nil
}

func (f *fakeRuntime) ForwardWithGradients(text string, targetClass int) (candle_binding.GradientResult, error) {
	if f.gradientErr != nil {
		return candle_binding.GradientResult{}, f.gradientErr
	}
	tokens := tokenize(text)
	gradients := make([][]float32, len(tokens))
	for i := range gradients {
		gradients[i] = []float32{float32(i + 1), 0}
	}
	return candle_binding.GradientResult{
		Logits:    f.logitsFor(text),
		Tokens:    tokens,
		Gradients: gradients,
	}, nil
}

func tokenize(text string) []candle_binding.Token {
	fields := strings.Fields(text)
	tokens := make([]candle_binding.Token, 0, len(fields)+2)
	tokens = append(tokens, candle_binding.Token{Text: "[CLS]", Special: true})
	for i, f := range fields {
		tokens = append(tokens, candle_binding.Token{Text: strings.ToLower(f), ID: i + 1})
	}
	return append(tokens, candle_binding.Token{Text: "[SEP]", Special: true})
}

func newPipeline(rt inference.Runtime) *Pipeline {
	classifier, err := inference.NewEngine(rt)
	Expect(err).ToNot(HaveOccurred())
	explainer, err := attribution.NewEngine(rt)
	Expect(err).ToNot(HaveOccurred())
	extractor, err := extraction.New(config.Default().Extraction, nil)
	Expect(err).ToNot(HaveOccurred())
	p, err := New(classifier, explainer, extractor)
	Expect(err).ToNot(HaveOccurred())
	return p
}

var _ = Describe("Run", func() {
	const rescueText = "3 people trapped in downtown after building collapse, need water"

	var p *Pipeline

	BeforeEach(func() {
		p = newPipeline(&fakeRuntime{})
	})

	It("produces a fully populated record for an actionable prediction", func() {
		record, err := p.Run(rescueText)
		Expect(err).ToNot(HaveOccurred())

		Expect(record.ID).ToNot(BeEmpty())
		Expect(record.Text).To(Equal(rescueText))
		Expect(record.CreatedAt).ToNot(BeZero())
		Expect(record.Result.Label).To(Equal(labels.RescueVolunteeringOrDonation))
		Expect(record.Result.Confidence).To(HaveLen(labels.Count()))

		Expect(record.TokenImportance).ToNot(BeEmpty())
		for _, score := range record.TokenImportance {
			Expect(score.Token).ToNot(Equal("[CLS]"))
			Expect(score.Token).ToNot(Equal("[SEP]"))
			Expect(score.Normalized).To(BeNumerically(">=", 0))
			Expect(score.Normalized).To(BeNumerically("<=", 1))
		}

		Expect(record.Actionable.PeopleCounts).To(ContainElement(extraction.PeopleCount{Count: 3, Status: "trapped"}))
		Expect(record.Actionable.Locations).To(ContainElement("downtown"))
		Expect(record.Actionable.Needs).To(ContainElement("water"))
	})

	It("repeats identical outputs for identical input", func() {
		first, err := p.Run(rescueText)
		Expect(err).ToNot(HaveOccurred())
		second, err := p.Run(rescueText)
		Expect(err).ToNot(HaveOccurred())

		Expect(second.Result.Label).To(Equal(first.Result.Label))
		Expect(second.Result.Confidence).To(Equal(first.Result.Confidence))
		Expect(second.TokenImportance).To(Equal(first.TokenImportance))
		Expect(second.Actionable).To(Equal(first.Actionable))
		Expect(second.ID).ToNot(Equal(first.ID))
	})

	It("propagates classification failures without a partial record", func() {
		record, err := p.Run("   ")
		Expect(err).To(MatchError(inference.ErrEmptyInput))
		Expect(record).To(Equal(Record{}))
	})

	It("propagates runtime failures from classification", func() {
		broken := newPipeline(&fakeRuntime{forwardErr: errors.New("device lost")})
		_, err := broken.Run(rescueText)
		Expect(err).To(MatchError(ContainSubstring("device lost")))
	})

	It("absorbs attribution failures and returns an empty explanation", func() {
		flaky := newPipeline(&fakeRuntime{gradientErr: errors.New("backward pass failed")})
		record, err := flaky.Run(rescueText)
		Expect(err).ToNot(HaveOccurred())

		Expect(record.Result.Label).To(Equal(labels.RescueVolunteeringOrDonation))
		Expect(record.TokenImportance).To(BeEmpty())
		Expect(record.TokenImportance).ToNot(BeNil())
		Expect(record.Actionable.PeopleCounts).ToNot(BeEmpty())
	})

	It("skips enrichment content for non-actionable predictions", func() {
		record, err := p.Run("nice weather for the marathon today")
		Expect(err).ToNot(HaveOccurred())

		Expect(record.Result.Label).To(Equal(labels.NotHumanitarian))
		Expect(record.Actionable.Locations).To(BeEmpty())
		Expect(record.Actionable.PeopleCounts).To(BeEmpty())
		Expect(record.Actionable.Needs).To(BeEmpty())
		Expect(record.TokenImportance).ToNot(BeEmpty())
	})

	It("serves concurrent callers with independent records", func() {
		const callers = 16
		records := make([]Record, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				record, err := p.Run(fmt.Sprintf("%s run %d", rescueText, i))
				Expect(err).ToNot(HaveOccurred())
				records[i] = record
			}(i)
		}
		wg.Wait()

		seen := make(map[string]bool, callers)
		for _, record := range records {
			Expect(record.Result.Label).To(Equal(labels.RescueVolunteeringOrDonation))
			Expect(seen[record.ID]).To(BeFalse())
			seen[record.ID] = true
		}
	})
})

var _ = Describe("New", func() {
	It("rejects missing stages", func() {
		rt := &fakeRuntime{}
		classifier, err := inference.NewEngine(rt)
		Expect(err).ToNot(HaveOccurred())
		explainer, err := attribution.NewEngine(rt)
		Expect(err).ToNot(HaveOccurred())
		extractor, err := extraction.New(config.Default().Extraction, nil)
		Expect(err).ToNot(HaveOccurred())

		_, err = New(nil, explainer, extractor)
		Expect(err).To(HaveOccurred())
		_, err = New(classifier, nil, extractor)
		Expect(err).To(HaveOccurred())
		_, err = New(classifier, explainer, nil)
		Expect(err).To(HaveOccurred())
	})
})
