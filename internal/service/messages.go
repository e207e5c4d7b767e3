package service

import (
	"math/rand"
	"sync"
)

// Chooser selects one entry from a message pool. Validation and
// prediction outcomes are deterministic; only the flavor of the
// accompanying text varies, so the choice is injected to keep the
// rest of the pipeline testable with a fixed seed.
type Chooser interface {
	Pick(pool []string) string
}

// randomChooser picks uniformly from the pool using a seeded source.
type randomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewChooser returns a Chooser backed by a seeded random source.
func NewChooser(seed int64) Chooser {
	return &randomChooser{rng: rand.New(rand.NewSource(seed))}
}

// FirstChooser always picks the first pool entry. Tests use it so
// emitted text is predictable.
type FirstChooser struct{}

// Pick returns the first entry of the pool.
func (FirstChooser) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[0]
}

func (c *randomChooser) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return pool[c.rng.Intn(len(pool))]
}

// Message pools. Each validation or action emits exactly one entry
// from the relevant pool; which entry is flavor, not contract.
var (
	negativeAgeResponses = []string{
		"Time travel isn't covered by our health assessment! Please enter a valid age.",
		"I appreciate the creativity, but negative ages aren't in my database! What's your real age?",
		"Unless you're Benjamin Button, I'll need a positive number for your age!",
	}

	superhumanAgeResponses = []string{
		"That's quite an age! Please double-check and enter a realistic age.",
		"If you've really lived that long, I'd love to know your secrets! But for now, please enter a realistic age.",
		"That would make you superhuman! I need a more typical human age for accurate assessment.",
	}

	numberHelpResponses = []string{
		"I need a number for your age! Try something like 25, 45, or 67.",
		"Oops! I need your age as a number. For example: 35 or 62.",
		"Let me get a numerical age from you - just type a number like 28 or 54!",
	}

	centenarianResponses = []string{
		"You're in our highest age bracket. Impressive longevity!",
		"A true inspiration! You're in our highest age bracket.",
		"What a wealth of life experience - you're in the 90+ category.",
	}

	genderConfirmations = map[string][]string{
		"Male": {
			"Got it - Male! Thanks for that info.",
			"Perfect! Male recorded. Moving forward!",
			"Excellent! I've noted Male for your demographic info.",
		},
		"Female": {
			"Got it - Female! Thanks for sharing that.",
			"Perfect! Female recorded. Continuing on!",
			"Excellent! I've noted Female for your demographic data.",
		},
	}

	genderHelpResponses = []string{
		"I need either 'Male' or 'Female' for this assessment. Could you clarify?",
		"Please specify Male or Female for the demographic analysis.",
		"For this medical assessment, I need Male or Female. Which applies to you?",
	}

	yesConfirmations = []string{
		"Noted - that's a yes. Thanks for staying on top of it!",
		"Great, recorded as yes. Every answer sharpens the assessment!",
		"Perfect, I've marked that as yes. Consistency is key!",
	}

	noConfirmations = []string{
		"Noted - that's a no. We'll factor this into the assessment.",
		"Got it, recorded as no. This is important information for the analysis.",
		"Understood, a no it is. Thanks for the clarification!",
	}

	yesNoHelpResponses = []string{
		"Please answer Yes or No for this one. Which is it?",
		"I need a simple Yes or No answer here. Currently, which applies?",
		"Just a Yes or No will do - what's your answer?",
	}

	analysisIntros = []string{
		"Connecting to our prediction engine... This is exciting!",
		"Sending your data to our machine learning model...",
		"Processing your medical data through our risk assessment API...",
	}

	fallbackIntros = []string{
		"Our scoring service is temporarily busy, but I'll provide you with a local analysis...",
		"I'm having trouble reaching the scoring service, but don't worry - I'll analyze your data locally...",
	}

	reportOffers = []string{
		"Would you like me to generate a comprehensive PDF report of your assessment? Just say 'yes' and I'll create a detailed medical report for you!",
		"I can create a professional PDF report with all your assessment details. Would you like me to generate that for you?",
		"Want a detailed PDF report for your records? I can generate a comprehensive medical assessment document!",
	}

	reportSuccessMessages = []string{
		"Your PDF report has been generated successfully!",
		"Excellent! Your comprehensive medical report is ready!",
		"Perfect! Your detailed assessment report has been created!",
	}

	completionMessages = []string{
		"Excellent! I've collected %d pieces of medical information. Now I'm ready to run your readmission risk analysis!",
		"Fantastic! Your medical profile has %d data points. Time for some serious health analytics!",
		"Perfect! I now have %d medical parameters. Let's see what the data reveals about your health!",
	}
)

// ageEncouragementBands partitions successful age validations into the
// coarse bands used for encouragement text. The partition is
// intentionally coarser than the decade brackets the value maps to.
var ageEncouragementBands = []struct {
	min, max int // half-open [min, max)
	pool     []string
}{
	{0, 18, []string{
		"Great! Youth is on your side for health recovery!",
		"Young and resilient - that's a positive factor!",
	}},
	{18, 30, []string{
		"Perfect! You're in a great age range for health management!",
		"Your age works in your favor for diabetes management!",
	}},
	{30, 50, []string{
		"Excellent! Prime time for taking control of your health!",
		"This is a perfect age to focus on long-term health strategies!",
	}},
	{50, 70, []string{
		"Wise and experienced! Your maturity helps with consistent health management!",
		"At this stage, your health awareness really pays off!",
	}},
	{70, 100, []string{
		"Admirable! Your longevity shows you know how to take care of yourself!",
		"Age brings wisdom, especially in health management!",
	}},
}

// encouragementFor returns the message pool for a validated age.
func encouragementFor(age int) []string {
	for _, band := range ageEncouragementBands {
		if age >= band.min && age < band.max {
			return band.pool
		}
	}
	return centenarianResponses
}
