package nlquery

import (
	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// Translator turns routed utterances into query plans
type Translator interface {
	Parse(utterance string, intent entities.Intent) (*entities.QueryPlan, error)
}

var _ Translator = (*Parser)(nil)
