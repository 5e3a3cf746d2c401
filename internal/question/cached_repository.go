package question

import (
	"context"
	"time"

	"github.com/studylegend/backend/internal/cache"
)

// CachedQuestionRepository wraps a Repository with a TTL cache over its
// read operations. AppendAttempt writes through and drops the cached
// entries so later reads see the new attempt.
type CachedQuestionRepository struct {
	inner     Repository
	questions *cache.Cache[[]Question]
	subjects  *cache.Cache[[]string]
}

const allQuestionsKey = "*"

// NewCachedQuestionRepository creates a caching wrapper whose entries
// expire after ttl.
func NewCachedQuestionRepository(inner Repository, ttl time.Duration) *CachedQuestionRepository {
	return &CachedQuestionRepository{
		inner:     inner,
		questions: cache.New[[]Question](ttl),
		subjects:  cache.New[[]string](ttl),
	}
}

func (r *CachedQuestionRepository) FindAll(ctx context.Context) ([]Question, error) {
	return r.questions.GetOrLoad(allQuestionsKey, func() ([]Question, error) {
		return r.inner.FindAll(ctx)
	})
}

func (r *CachedQuestionRepository) FindBySubject(ctx context.Context, subject string) ([]Question, error) {
	return r.questions.GetOrLoad(subject, func() ([]Question, error) {
		return r.inner.FindBySubject(ctx, subject)
	})
}

func (r *CachedQuestionRepository) Subjects(ctx context.Context) ([]string, error) {
	return r.subjects.GetOrLoad(allQuestionsKey, func() ([]string, error) {
		return r.inner.Subjects(ctx)
	})
}

func (r *CachedQuestionRepository) AppendAttempt(ctx context.Context, q *Question, attempt Attempt) error {
	if err := r.inner.AppendAttempt(ctx, q, attempt); err != nil {
		return err
	}
	r.questions.Delete(allQuestionsKey)
	r.questions.Delete(q.Subject)
	return nil
}
