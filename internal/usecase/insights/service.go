package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	domainrepo "github.com/insightlab/meeting-insights/internal/domain/repositories"
	"github.com/insightlab/meeting-insights/internal/infrastructure/cache"
	"github.com/insightlab/meeting-insights/internal/usecase/analytics"
	"github.com/insightlab/meeting-insights/internal/usecase/nlquery"
	"github.com/insightlab/meeting-insights/internal/usecase/router"
	"github.com/insightlab/meeting-insights/pkg/config"
)

const cacheGenerationKey = "answers:generation"

// Service orchestrates the question-answering pipeline
type Service interface {
	Ask(ctx context.Context, utterance string) (*entities.Answer, error)
	Export(ctx context.Context, utterance string) (string, string, error)
	History(ctx context.Context, limit int) ([]*entities.QueryRecord, error)
	InvalidateCache(ctx context.Context) error
}

type insightsService struct {
	minuteRepo domainrepo.MinuteRepository
	recordRepo domainrepo.QueryRecordRepository
	classifier *router.Classifier
	translator nlquery.Translator
	aggregator *analytics.Aggregator
	exporter   *analytics.Exporter
	store      cache.Store
	cfg        *config.Config
	logger     *zap.Logger
}

// NewService constructs the insights orchestrator. The exporter may be nil
// when no object storage is configured; Export then returns an error.
func NewService(
	minuteRepo domainrepo.MinuteRepository,
	recordRepo domainrepo.QueryRecordRepository,
	classifier *router.Classifier,
	translator nlquery.Translator,
	aggregator *analytics.Aggregator,
	exporter *analytics.Exporter,
	store cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &insightsService{
		minuteRepo: minuteRepo,
		recordRepo: recordRepo,
		classifier: classifier,
		translator: translator,
		aggregator: aggregator,
		exporter:   exporter,
		store:      store,
		cfg:        cfg,
		logger:     logger,
	}
}

// Ask runs the full pipeline: route, translate, execute, shape. Clarifications
// and courtesy intents short-circuit before any SQL is generated.
func (s *insightsService) Ask(ctx context.Context, utterance string) (*entities.Answer, error) {
	start := time.Now()

	if s.cfg.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Query.Timeout)
		defer cancel()
	}

	decision := s.classifier.Classify(utterance)
	switch decision.Intent {
	case entities.IntentGreeting, entities.IntentOutOfScope:
		return s.finish(ctx, utterance, &entities.Answer{
			Intent:     decision.Intent,
			ResultType: entities.ResultTypeMessage,
			Message:    decision.Message,
		}, start)
	case entities.IntentClarify:
		return s.finish(ctx, utterance, &entities.Answer{
			Intent:        decision.Intent,
			ResultType:    entities.ResultTypeMessage,
			Clarification: decision.Clarification,
		}, start)
	}

	plan, err := s.translator.Parse(utterance, decision.Intent)
	if err != nil {
		var clarify *entities.ClarificationError
		if errors.As(err, &clarify) {
			return s.finish(ctx, utterance, &entities.Answer{
				Intent:        entities.IntentClarify,
				ResultType:    entities.ResultTypeMessage,
				Clarification: clarify.Question,
			}, start)
		}
		return nil, err
	}

	if answer, ok := s.cachedAnswer(ctx, plan); ok {
		answer.CacheHit = true
		answer.ElapsedMS = time.Since(start).Milliseconds()
		s.audit(ctx, utterance, answer)
		return answer, nil
	}

	answer, err := s.execute(ctx, plan)
	if err != nil {
		return nil, err
	}

	s.storeAnswer(ctx, plan, answer)
	return s.finish(ctx, utterance, answer, start)
}

func (s *insightsService) execute(ctx context.Context, plan *entities.QueryPlan) (*entities.Answer, error) {
	var rs *entities.ResultSet
	var err error

	// Attendee grouping needs the jsonb arrays expanded per row, which the SQL
	// subset does not cover: fetch matching rows and fold in memory.
	if plan.GroupBy == "attendees" {
		rs, err = s.foldAttendees(ctx, plan)
	} else {
		rs, err = s.minuteRepo.Execute(ctx, plan)
	}
	if err != nil {
		return nil, err
	}

	answer := &entities.Answer{
		Intent:     plan.Intent,
		ResultType: analytics.ResultTypeFor(plan, rs),
		Result:     rs,
		Plan:       plan,
	}

	if plan.Intent == entities.IntentAnalytics && plan.GroupBy != "" {
		answer.Chart = analytics.BuildChart(rs, plan)
	}

	return answer, nil
}

func (s *insightsService) foldAttendees(ctx context.Context, plan *entities.QueryPlan) (*entities.ResultSet, error) {
	filters := planToFilters(plan, s.cfg.Query.MaxLimit)
	minutes, _, err := s.minuteRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	rs := s.aggregator.GroupByAttendee(minutes)
	rs.Columns = []string{"attendees", "value"}
	return rs, nil
}

// planToFilters maps the mappable plan predicates onto list filters for the
// in-memory fold path.
func planToFilters(plan *entities.QueryPlan, maxLimit int) domainrepo.MinuteFilters {
	filters := domainrepo.MinuteFilters{Limit: maxLimit}
	for _, f := range plan.Filters {
		switch f.Column {
		case "week_number":
			if f.Operator == entities.OpEq {
				if week, ok := toInt(f.Value); ok {
					filters.WeekNumber = &week
				}
			}
		case "meeting_date":
			if t, err := time.Parse("2006-01-02", fmt.Sprintf("%v", f.Value)); err == nil {
				switch f.Operator {
				case entities.OpGte, entities.OpGt:
					filters.From = &t
				case entities.OpLte, entities.OpLt:
					filters.To = &t
				}
			}
		case "meeting_topic":
			filters.Topic = fmt.Sprintf("%v", f.Value)
		case "attendees":
			filters.Attendee = fmt.Sprintf("%v", f.Value)
		}
	}
	return filters
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

// Export answers the utterance and writes the result set to an XLSX workbook
// in object storage, returning the object key and a download URL.
func (s *insightsService) Export(ctx context.Context, utterance string) (string, string, error) {
	if s.exporter == nil {
		return "", "", fmt.Errorf("no object storage configured for exports")
	}

	answer, err := s.Ask(ctx, utterance)
	if err != nil {
		return "", "", err
	}
	if answer.Result == nil {
		return "", "", fmt.Errorf("utterance did not produce a result set: %s", answer.Clarification)
	}

	return s.exporter.ExportXLSX(ctx, answer.Result, utterance)
}

func (s *insightsService) History(ctx context.Context, limit int) ([]*entities.QueryRecord, error) {
	return s.recordRepo.ListRecent(ctx, limit)
}

// InvalidateCache bumps the cache generation; every previously cached answer
// becomes unreachable. Called after dataset imports.
func (s *insightsService) InvalidateCache(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	gen := strconv.FormatInt(time.Now().UnixNano(), 10)
	return s.store.Set(ctx, cacheGenerationKey, gen, 0)
}

func (s *insightsService) cacheKey(ctx context.Context, plan *entities.QueryPlan) string {
	gen := "0"
	if s.store != nil {
		if v, ok, err := s.store.Get(ctx, cacheGenerationKey); err == nil && ok {
			gen = v
		}
	}
	sum := sha256.Sum256([]byte(plan.Fingerprint()))
	return fmt.Sprintf("answers:%s:%s", gen, hex.EncodeToString(sum[:]))
}

func (s *insightsService) cachedAnswer(ctx context.Context, plan *entities.QueryPlan) (*entities.Answer, bool) {
	if s.store == nil {
		return nil, false
	}
	raw, ok, err := s.store.Get(ctx, s.cacheKey(ctx, plan))
	if err != nil || !ok {
		return nil, false
	}
	var answer entities.Answer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, false
	}
	return &answer, true
}

func (s *insightsService) storeAnswer(ctx context.Context, plan *entities.QueryPlan, answer *entities.Answer) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(answer)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, s.cacheKey(ctx, plan), string(raw), s.cfg.Query.CacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache answer", zap.Error(err))
	}
}

func (s *insightsService) finish(ctx context.Context, utterance string, answer *entities.Answer, start time.Time) (*entities.Answer, error) {
	answer.ElapsedMS = time.Since(start).Milliseconds()
	s.audit(ctx, utterance, answer)
	return answer, nil
}

// audit writes the query record best-effort: an audit failure never fails the
// answer.
func (s *insightsService) audit(ctx context.Context, utterance string, answer *entities.Answer) {
	if s.recordRepo == nil {
		return
	}
	record := entities.NewQueryRecord(utterance, answer.Intent)
	record.ElapsedMS = answer.ElapsedMS
	record.CacheHit = answer.CacheHit
	if answer.Result != nil {
		record.SQL = answer.Result.SQL
		record.RowCount = answer.Result.RowCount
	}
	if err := s.recordRepo.Save(ctx, record); err != nil && s.logger != nil {
		s.logger.Warn("failed to save query record", zap.Error(err))
	}
}
