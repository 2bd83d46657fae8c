package router

import (
	"regexp"
	"strings"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// Decision is the routing outcome for one utterance
type Decision struct {
	Intent        entities.Intent
	Confidence    float64
	Clarification string
	Message       string
}

// Classifier routes an utterance to {retrieve, analytics, clarify} with
// greeting and out-of-scope short circuits. It scores cue lexicons against the
// utterance; ties or empty scores become clarification questions instead of
// guesses.
type Classifier struct{}

// NewClassifier creates an utterance classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

var (
	greetingWords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "thanks", "thank you"}

	// Cues that only make sense as aggregation or visualization requests
	analyticsCues = []string{
		"how many", "count", "number of", "average", "avg", "mean",
		"trend", "chart", "plot", "graph", "distribution", "per week",
		"per month", "by week", "by month", "by topic", "by attendee",
		"per attendee", "compare", "most frequent", "statistics", "breakdown",
	}

	// Cues that indicate retrieving rows or fields
	retrieveCues = []string{
		"show", "list", "find", "get", "give me", "display", "fetch",
		"what did", "what was", "what were", "when was", "when did",
		"who attended", "who was", "which meeting", "summary of", "summaries",
		"details of", "tell me about",
	}

	// Anchors that place an utterance inside the meeting-minutes domain
	domainAnchors = []string{
		"meeting", "meetings", "minutes", "attendee", "attendees", "week",
		"topic", "decision", "decisions", "summary", "summaries", "agenda",
		"responsible", "action item", "discussed", "attended", "purpose",
		"future plan", "notes", "target date",
	}

	reBareGreeting = regexp.MustCompile(`^\W*(?:hello|hi|hey|good (?:morning|afternoon|evening)|thanks|thank you)\W*$`)
)

// Classify routes an utterance. The empty utterance and bare greetings never
// reach the translation layer.
func (c *Classifier) Classify(utterance string) Decision {
	text := strings.ToLower(strings.TrimSpace(utterance))

	if text == "" {
		return Decision{
			Intent:        entities.IntentClarify,
			Clarification: "What would you like to know about the meeting minutes?",
		}
	}

	if reBareGreeting.MatchString(text) {
		return Decision{
			Intent:     entities.IntentGreeting,
			Confidence: 1,
			Message:    "Hello! Ask me anything about the meeting minutes: attendance, topics, decisions, or trends over time.",
		}
	}

	analyticsScore := scoreCues(text, analyticsCues)
	retrieveScore := scoreCues(text, retrieveCues)
	anchored := scoreCues(text, domainAnchors) > 0

	if !anchored {
		if analyticsScore == 0 && retrieveScore == 0 {
			return Decision{
				Intent:     entities.IntentOutOfScope,
				Confidence: 1,
				Message:    "I can only answer questions about the imported meeting minutes.",
			}
		}
		// A query verb without a domain anchor: ask what to look in
		return Decision{
			Intent:        entities.IntentClarify,
			Clarification: "Which meeting data are you asking about? Try mentioning a week, topic, or attendee.",
		}
	}

	switch {
	case analyticsScore > 0 && analyticsScore >= retrieveScore:
		return Decision{Intent: entities.IntentAnalytics, Confidence: confidence(analyticsScore, retrieveScore)}
	case retrieveScore > 0:
		return Decision{Intent: entities.IntentRetrieve, Confidence: confidence(retrieveScore, analyticsScore)}
	default:
		// In-domain but no recognizable verb: treat interrogatives as
		// retrieval, everything else as a clarification.
		if strings.ContainsAny(text, "?") || startsWithInterrogative(text) {
			return Decision{Intent: entities.IntentRetrieve, Confidence: 0.5}
		}
		return Decision{
			Intent:        entities.IntentClarify,
			Clarification: "Do you want to see specific meetings, or statistics across them?",
		}
	}
}

func scoreCues(text string, cues []string) int {
	score := 0
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			score++
		}
	}
	return score
}

func confidence(winner, loser int) float64 {
	if winner+loser == 0 {
		return 0
	}
	return float64(winner) / float64(winner+loser)
}

func startsWithInterrogative(text string) bool {
	for _, w := range []string{"what", "when", "who", "which", "where", "why", "how", "did", "was", "were"} {
		if strings.HasPrefix(text, w+" ") {
			return true
		}
	}
	return false
}
