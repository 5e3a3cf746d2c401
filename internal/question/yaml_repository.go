package question

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SubjectFile is the on-disk layout of one subject's questions.
// Each subject lives in its own YAML file named after the subject,
// with questions grouped by week.
type SubjectFile struct {
	Weeks []WeekQuestions `yaml:"weeks"`
}

// WeekQuestions holds the questions for one week of a subject.
type WeekQuestions struct {
	Week      int        `yaml:"week"`
	Questions []Question `yaml:"questions"`
}

//go:generate mockgen -source=yaml_repository.go -destination=../mocks/question/mock_repository.go -package=mock_question Repository

// Repository defines operations for reading questions and recording attempts.
type Repository interface {
	FindAll(ctx context.Context) ([]Question, error)
	FindBySubject(ctx context.Context, subject string) ([]Question, error)
	Subjects(ctx context.Context) ([]string, error)
	AppendAttempt(ctx context.Context, q *Question, attempt Attempt) error
}

// FileQuestionRepository reads and writes questions as YAML subject files.
type FileQuestionRepository struct {
	dir string
}

// NewFileQuestionRepository creates a new FileQuestionRepository over dir.
func NewFileQuestionRepository(dir string) *FileQuestionRepository {
	return &FileQuestionRepository{dir: dir}
}

// FindAll returns every question across all subject files, in subject,
// week, then file order.
func (r *FileQuestionRepository) FindAll(_ context.Context) ([]Question, error) {
	filesMap, err := loadSubjectFiles(r.dir)
	if err != nil {
		return nil, fmt.Errorf("loadSubjectFiles(%s) > %w", r.dir, err)
	}

	var questions []Question
	for _, subject := range sortedSubjects(filesMap) {
		questions = append(questions, flattenSubject(subject, filesMap[subject])...)
	}
	return questions, nil
}

// FindBySubject returns the questions of a single subject file, or nil if
// the subject has no file.
func (r *FileQuestionRepository) FindBySubject(_ context.Context, subject string) ([]Question, error) {
	path := r.subjectPath(subject)
	contents, err := readYamlFile[SubjectFile](path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("readYamlFile(%s) > %w", path, err)
	}
	return flattenSubject(subject, contents), nil
}

// Subjects lists the subjects that have a question file.
func (r *FileQuestionRepository) Subjects(_ context.Context) ([]string, error) {
	filesMap, err := loadSubjectFiles(r.dir)
	if err != nil {
		return nil, fmt.Errorf("loadSubjectFiles(%s) > %w", r.dir, err)
	}
	return sortedSubjects(filesMap), nil
}

// AppendAttempt records an attempt against q and rewrites the subject file.
// The in-memory question is updated alongside the stored one.
func (r *FileQuestionRepository) AppendAttempt(_ context.Context, q *Question, attempt Attempt) error {
	if err := q.AppendAttempt(attempt); err != nil {
		return err
	}

	path := r.subjectPath(q.Subject)
	contents, err := readYamlFile[SubjectFile](path)
	if err != nil {
		return fmt.Errorf("readYamlFile(%s) > %w", path, err)
	}

	stored := findInSubjectFile(&contents, q.Week, q.Position)
	if stored == nil {
		return fmt.Errorf("question not found: subject %q week %d position %d", q.Subject, q.Week, q.Position)
	}
	stored.Attempts = append(stored.Attempts, attempt)
	timestamp := attempt.Timestamp
	stored.LastPracticed = &timestamp

	if err := writeYamlFile(path, contents); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", path, err)
	}
	return nil
}

// SaveSubject writes questions out as the subject's file, grouped by week.
func (r *FileQuestionRepository) SaveSubject(_ context.Context, subject string, questions []Question) error {
	byWeek := make(map[int][]Question)
	var weeks []int
	for _, q := range questions {
		if _, ok := byWeek[q.Week]; !ok {
			weeks = append(weeks, q.Week)
		}
		byWeek[q.Week] = append(byWeek[q.Week], q)
	}
	sort.Ints(weeks)

	contents := SubjectFile{}
	for _, week := range weeks {
		contents.Weeks = append(contents.Weeks, WeekQuestions{
			Week:      week,
			Questions: byWeek[week],
		})
	}

	path := r.subjectPath(subject)
	if err := writeYamlFile(path, contents); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", path, err)
	}
	return nil
}

func (r *FileQuestionRepository) subjectPath(subject string) string {
	return filepath.Join(r.dir, subject+".yml")
}

func flattenSubject(subject string, contents SubjectFile) []Question {
	var questions []Question
	for _, week := range contents.Weeks {
		for position, q := range week.Questions {
			q.Subject = subject
			q.Week = week.Week
			q.Position = position
			questions = append(questions, q)
		}
	}
	return questions
}

func findInSubjectFile(contents *SubjectFile, week, position int) *Question {
	for i := range contents.Weeks {
		if contents.Weeks[i].Week != week {
			continue
		}
		if position < 0 || position >= len(contents.Weeks[i].Questions) {
			return nil
		}
		return &contents.Weeks[i].Questions[position]
	}
	return nil
}
