package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

func TestClassify_Greeting(t *testing.T) {
	c := NewClassifier()

	for _, utterance := range []string{"hello", "Hi!", "good morning", "thanks"} {
		d := c.Classify(utterance)
		require.Equal(t, entities.IntentGreeting, d.Intent, "utterance %q", utterance)
		require.NotEmpty(t, d.Message)
	}
}

func TestClassify_EmptyAsksBack(t *testing.T) {
	d := NewClassifier().Classify("   ")
	require.Equal(t, entities.IntentClarify, d.Intent)
	require.NotEmpty(t, d.Clarification)
}

func TestClassify_Analytics(t *testing.T) {
	c := NewClassifier()

	for _, utterance := range []string{
		"how many meetings were held last month",
		"average attendance per week",
		"show the distribution of meeting topics",
		"plot meetings per month",
	} {
		d := c.Classify(utterance)
		require.Equal(t, entities.IntentAnalytics, d.Intent, "utterance %q", utterance)
	}
}

func TestClassify_Retrieve(t *testing.T) {
	c := NewClassifier()

	for _, utterance := range []string{
		"show meetings from week 23",
		"who attended the sprint planning meeting",
		"list decisions from last week",
		"when was the latest meeting about budget",
	} {
		d := c.Classify(utterance)
		require.Equal(t, entities.IntentRetrieve, d.Intent, "utterance %q", utterance)
	}
}

func TestClassify_OutOfScope(t *testing.T) {
	d := NewClassifier().Classify("bake a chocolate cake")
	require.Equal(t, entities.IntentOutOfScope, d.Intent)
	require.NotEmpty(t, d.Message)
}

func TestClassify_QueryVerbWithoutAnchorAsksBack(t *testing.T) {
	d := NewClassifier().Classify("show everything")
	require.Equal(t, entities.IntentClarify, d.Intent)
	require.NotEmpty(t, d.Clarification)
}

func TestClassify_InterrogativeDefaultsToRetrieve(t *testing.T) {
	d := NewClassifier().Classify("did the meeting in week 12 cover hiring?")
	require.Equal(t, entities.IntentRetrieve, d.Intent)
}
