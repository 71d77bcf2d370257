package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
	"quiz-forge/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `q.id "id", q.quiz_id "quiz_id", q.question "question", q.options "options", q.answer "answer", q.position "position", q.created_at "created_at"`

// QuestionRepository implements domain.QuestionRepository on Oracle.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create re-checks the answer against the options before writing.
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	m := toModelQuestion(question)

	query := `INSERT INTO questions (id, quiz_id, question, options, answer, position, created_at)
	VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, m.ID, m.QuizID, m.Question, m.Options, m.Answer, m.Position, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var rows []models.Question
	query := `SELECT ` + questionColumns + ` FROM questions q WHERE q.quiz_id = :1 AND q.position IS NOT NULL ORDER BY q.position`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list questions of quiz %s: %w", quizID, err)
	}
	return toDomainQuestions(rows), nil
}

func (r *QuestionRepository) GetByIDsForUser(ctx context.Context, ids []string, userID string) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return []*domain.Question{}, nil
	}
	query := `SELECT ` + questionColumns + ` FROM questions q
	JOIN quizzes z ON z.id = q.quiz_id
	WHERE z.user_id = :1 AND q.id IN (` + util.OracleBinds(2, len(ids)) + `)`

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by id: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (r *QuestionRepository) NextPosition(ctx context.Context, quizID string) (int, error) {
	var next int
	query := `SELECT NVL(MAX(position), 0) + 1 FROM questions WHERE quiz_id = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &next, query, quizID); err != nil {
		return 0, fmt.Errorf("failed to compute next question position: %w", err)
	}
	return next, nil
}

func (r *QuestionRepository) Attach(ctx context.Context, quizID string, questionIDs []string) error {
	exec := GetExecutor(ctx, r.db)
	for i, id := range questionIDs {
		_, err := exec.ExecContext(ctx, `UPDATE questions SET quiz_id = :1, position = :2 WHERE id = :3`, quizID, i+1, id)
		if err != nil {
			return fmt.Errorf("failed to attach question %s: %w", id, err)
		}
	}
	return nil
}

func (r *QuestionRepository) DetachAll(ctx context.Context, quizID string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, `UPDATE questions SET position = NULL WHERE quiz_id = :1`, quizID); err != nil {
		return fmt.Errorf("failed to detach questions of quiz %s: %w", quizID, err)
	}
	return nil
}

func (r *QuestionRepository) DeleteByQuiz(ctx context.Context, quizID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = :1`, quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions of quiz %s: %w", quizID, err)
	}
	return rowsAffected(res), nil
}

func (r *QuestionRepository) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	query := `DELETE FROM questions WHERE quiz_id IN (SELECT id FROM quizzes WHERE category_id = :1)`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions of category %s: %w", categoryID, err)
	}
	return rowsAffected(res), nil
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Question:  m.Question,
		Options:   []string(m.Options),
		Answer:    m.Answer,
		Position:  int(m.Position.Int64),
		CreatedAt: m.CreatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:        q.ID,
		QuizID:    q.QuizID,
		Question:  q.Question,
		Options:   models.StringSlice(q.Options),
		Answer:    q.Answer,
		Position:  util.IntToNullInt64(q.Position),
		CreatedAt: q.CreatedAt,
	}
}
