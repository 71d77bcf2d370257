package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"
	"quiz-forge/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations. Every
// operation is scoped to the calling user's identity ID.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error)
	SaveGeneratedQuiz(ctx context.Context, userID string, req *dto.SaveGeneratedQuizRequest) (*dto.SavedQuizResponse, error)
	GetQuizBySlug(ctx context.Context, userID, slug string) (*dto.QuizResponse, error)
	CreateQuiz(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	CreateQuestion(ctx context.Context, userID, quizID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	AttachQuestions(ctx context.Context, userID, quizID string, req *dto.AttachQuestionsRequest) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	DeleteQuiz(ctx context.Context, userID, quizID string) (*dto.DeleteResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator  domain.QuizGenerator
	reconciler CategoryReconciler
	categories domain.CategoryRepository
	quizzes    domain.QuizRepository
	questions  domain.QuestionRepository
	tx         domain.TransactionManager
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	generator domain.QuizGenerator,
	reconciler CategoryReconciler,
	categories domain.CategoryRepository,
	quizzes domain.QuizRepository,
	questions domain.QuestionRepository,
	tx domain.TransactionManager,
) QuizService {
	return &quizService{
		generator:  generator,
		reconciler: reconciler,
		categories: categories,
		quizzes:    quizzes,
		questions:  questions,
		tx:         tx,
	}
}

// GenerateQuiz runs the generation pipeline and reports the caller's existing
// category for the result. With Save set the payload is persisted as well.
func (s *quizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GeneratedQuizResponse, error) {
	payload, err := s.generator.Generate(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}

	existing := s.reconciler.Reconcile(ctx, payload.Category.Slug, userID)
	resp := toGeneratedResponse(payload, existing)

	if req.Save {
		saved, err := s.saveGenerated(ctx, userID, payload)
		if err != nil {
			return nil, err
		}
		resp.Saved = saved
	}

	logger.Get().Info("Quiz generated",
		zap.String("userID", userID),
		zap.String("category", payload.Category.Slug),
		zap.Bool("existingCategory", existing != nil),
		zap.Bool("saved", req.Save))
	return resp, nil
}

// SaveGeneratedQuiz persists a payload produced earlier by GenerateQuiz. It is
// validated again since it came back from the client.
func (s *quizService) SaveGeneratedQuiz(ctx context.Context, userID string, req *dto.SaveGeneratedQuizRequest) (*dto.SavedQuizResponse, error) {
	return s.saveGenerated(ctx, userID, fromSaveRequest(req))
}

func (s *quizService) saveGenerated(ctx context.Context, userID string, p *domain.GeneratedQuiz) (*dto.SavedQuizResponse, error) {
	if err := validation.ValidateGeneratedQuiz(p); err != nil {
		return nil, err
	}

	categoryName := strings.TrimSpace(p.Category.Name)
	categorySlug := util.Slugify(p.Category.Slug)
	if categorySlug == "" {
		categorySlug = util.Slugify(categoryName)
	}
	if categoryName == "" || categorySlug == "" {
		return nil, domain.NewInvalidInputError("generated category must have a name")
	}
	title := strings.TrimSpace(p.Quiz.Title)
	if title == "" {
		title = categoryName + " Quiz"
	}

	var saved *dto.SavedQuizResponse
	err := withSlugRetry(ctx, s.tx, "quiz", func(ctx context.Context) error {
		saved = &dto.SavedQuizResponse{QuestionCount: len(p.Questions)}

		category := s.reconciler.Reconcile(ctx, categorySlug, userID)
		if category == nil {
			slug, err := AssignUniqueSlug(ctx, categorySlug, userID, s.categories.ExistsBySlug)
			if err != nil {
				return err
			}
			category = domain.NewCategory(categoryName, slug, p.Category.Description, userID)
			if err := s.categories.Create(ctx, category); err != nil {
				return wrapInternal("failed to create category", err)
			}
			saved.CategoryCreated = true
		}

		quizSlug, err := AssignUniqueSlug(ctx, title, userID, s.quizzes.ExistsBySlug)
		if err != nil {
			return err
		}
		quiz := domain.NewQuiz(title, quizSlug, p.Quiz.Description, category.ID, userID)
		if err := s.quizzes.Create(ctx, quiz); err != nil {
			return wrapInternal("failed to create quiz", err)
		}

		for i, draft := range p.Questions {
			question := &domain.Question{
				QuizID:   quiz.ID,
				Question: draft.Question,
				Options:  draft.Options,
				Answer:   draft.Answer,
				Position: i + 1,
			}
			if err := s.questions.Create(ctx, question); err != nil {
				return wrapInternal("failed to create question", err)
			}
		}

		saved.CategoryID = category.ID
		saved.CategorySlug = category.Slug
		saved.QuizID = quiz.ID
		saved.QuizSlug = quiz.Slug
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Generated quiz saved",
		zap.String("userID", userID),
		zap.String("categorySlug", saved.CategorySlug),
		zap.String("quizSlug", saved.QuizSlug),
		zap.Bool("categoryCreated", saved.CategoryCreated))
	return saved, nil
}

// GetQuizBySlug returns the caller's quiz with its category and ordered questions.
func (s *quizService) GetQuizBySlug(ctx context.Context, userID, slug string) (*dto.QuizResponse, error) {
	quiz, err := s.quizzes.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("quiz %q not found", slug))
	}
	if err := s.loadQuizDetails(ctx, quiz); err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

func (s *quizService) loadQuizDetails(ctx context.Context, quiz *domain.Quiz) error {
	category, err := s.categories.GetByID(ctx, quiz.CategoryID, quiz.UserID)
	if err != nil {
		return domain.NewInternalError("failed to get quiz category", err)
	}
	questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return domain.NewInternalError("failed to list quiz questions", err)
	}
	quiz.Category = category
	quiz.Questions = questions
	return nil
}

// CreateQuiz creates a quiz under one of the caller's categories and attaches
// the given questions in order.
func (s *quizService) CreateQuiz(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	categorySlug := util.Slugify(req.CategorySlug)
	category, err := s.categories.GetBySlug(ctx, categorySlug, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("category %q not found", categorySlug))
	}
	if err := s.requireOwnedQuestions(ctx, userID, "", req.QuestionIDs); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	var quiz *domain.Quiz
	err = withSlugRetry(ctx, s.tx, "quiz", func(ctx context.Context) error {
		slug, err := AssignUniqueSlug(ctx, title, userID, s.quizzes.ExistsBySlug)
		if err != nil {
			return err
		}
		quiz = domain.NewQuiz(title, slug, strings.TrimSpace(req.Description), category.ID, userID)
		if err := s.quizzes.Create(ctx, quiz); err != nil {
			return wrapInternal("failed to create quiz", err)
		}
		if len(req.QuestionIDs) > 0 {
			if err := s.questions.Attach(ctx, quiz.ID, req.QuestionIDs); err != nil {
				return wrapInternal("failed to attach questions", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadQuizDetails(ctx, quiz); err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

// CreateQuestion appends a question to the end of one of the caller's quizzes.
func (s *quizService) CreateQuestion(ctx context.Context, userID, quizID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	question := &domain.Question{
		QuizID:   quiz.ID,
		Question: strings.TrimSpace(req.Question),
		Options:  req.Options,
		Answer:   req.Answer,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		position, err := s.questions.NextPosition(ctx, quiz.ID)
		if err != nil {
			return wrapInternal("failed to compute question position", err)
		}
		question.Position = position
		if err := s.questions.Create(ctx, question); err != nil {
			return wrapInternal("failed to create question", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toQuestionResponse(question)
	return &resp, nil
}

// AttachQuestions replaces the quiz's ordered question list. Only questions
// that already belong to this quiz can be listed.
func (s *quizService) AttachQuestions(ctx context.Context, userID, quizID string, req *dto.AttachQuestionsRequest) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnedQuestions(ctx, userID, quiz.ID, req.QuestionIDs); err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.questions.DetachAll(ctx, quiz.ID); err != nil {
			return wrapInternal("failed to detach questions", err)
		}
		if err := s.questions.Attach(ctx, quiz.ID, req.QuestionIDs); err != nil {
			return wrapInternal("failed to attach questions", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadQuizDetails(ctx, quiz); err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

// requireOwnedQuestions fails with NOT_FOUND unless every id is a question of
// the caller's, restricted to quizID when it is set.
func (s *quizService) requireOwnedQuestions(ctx context.Context, userID, quizID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.questions.GetByIDsForUser(ctx, ids, userID)
	if err != nil {
		return domain.NewInternalError("failed to get questions", err)
	}
	owned := make(map[string]bool, len(found))
	for _, q := range found {
		if quizID == "" || q.QuizID == quizID {
			owned[q.ID] = true
		}
	}
	for _, id := range ids {
		if !owned[id] {
			return domain.NewNotFoundError(fmt.Sprintf("question %s not found", id))
		}
	}
	return nil
}

// SubmitQuiz scores the answers against the quiz's current questions. Answers
// for unknown questions count as incorrect with an empty correct answer.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz questions", err)
	}

	byID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	result := domain.QuizResult{QuizID: quiz.ID, Total: len(questions)}
	for _, a := range req.Answers {
		feedback := domain.AnswerFeedback{QuestionID: a.QuestionID, Answer: a.Answer}
		if q, ok := byID[a.QuestionID]; ok {
			feedback.CorrectAnswer = q.Answer
			feedback.IsCorrect = q.Answer == a.Answer
		}
		if feedback.IsCorrect {
			result.Score++
		}
		result.Feedback = append(result.Feedback, feedback)
	}

	resp := &dto.SubmitQuizResponse{
		QuizID:   result.QuizID,
		Score:    result.Score,
		Total:    result.Total,
		Feedback: make([]dto.AnswerFeedback, len(result.Feedback)),
	}
	for i, f := range result.Feedback {
		resp.Feedback[i] = dto.AnswerFeedback{
			QuestionID:    f.QuestionID,
			Answer:        f.Answer,
			CorrectAnswer: f.CorrectAnswer,
			IsCorrect:     f.IsCorrect,
		}
	}
	return resp, nil
}

// DeleteQuiz removes the quiz and its questions in one transaction.
func (s *quizService) DeleteQuiz(ctx context.Context, userID, quizID string) (*dto.DeleteResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	result := domain.DeleteResult{DeletedID: quiz.ID}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.questions.DeleteByQuiz(ctx, quiz.ID)
		if err != nil {
			return wrapInternal("failed to delete quiz questions", err)
		}
		result.DeletedQuestions = n
		n, err = s.quizzes.Delete(ctx, quiz.ID, userID)
		if err != nil {
			return wrapInternal("failed to delete quiz", err)
		}
		result.DeletedQuizzes = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz deleted",
		zap.String("userID", userID),
		zap.String("quizID", quiz.ID),
		zap.Int64("questions", result.DeletedQuestions))
	return &dto.DeleteResponse{
		Success:          true,
		Message:          "Quiz deleted successfully",
		DeletedID:        result.DeletedID,
		DeletedQuizzes:   result.DeletedQuizzes,
		DeletedQuestions: result.DeletedQuestions,
	}, nil
}

func (s *quizService) ownedQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("quiz %s not found", quizID))
	}
	return quiz, nil
}
