package service

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

func toCategoryResponse(c *domain.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	resp := &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
	if len(c.Quizzes) > 0 {
		resp.Quizzes = make([]dto.QuizSummaryResponse, len(c.Quizzes))
		for i, q := range c.Quizzes {
			resp.Quizzes[i] = toQuizSummary(q)
		}
	}
	return resp
}

func toQuizSummary(q *domain.Quiz) dto.QuizSummaryResponse {
	return dto.QuizSummaryResponse{
		ID:          q.ID,
		Title:       q.Title,
		Slug:        q.Slug,
		Description: q.Description,
		CategoryID:  q.CategoryID,
		CreatedAt:   q.CreatedAt,
	}
}

func toQuizResponse(q *domain.Quiz) *dto.QuizResponse {
	resp := &dto.QuizResponse{
		QuizSummaryResponse: toQuizSummary(q),
		Category:            toCategoryResponse(q.Category),
		Questions:           make([]dto.QuestionResponse, len(q.Questions)),
	}
	for i, question := range q.Questions {
		resp.Questions[i] = toQuestionResponse(question)
	}
	return resp
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:       q.ID,
		QuizID:   q.QuizID,
		Question: q.Question,
		Options:  q.Options,
		Answer:   q.Answer,
		Position: q.Position,
	}
}

func toGeneratedResponse(p *domain.GeneratedQuiz, existing *domain.Category) *dto.GeneratedQuizResponse {
	resp := &dto.GeneratedQuizResponse{
		Category: dto.CategoryDraft{
			Name:        p.Category.Name,
			Slug:        p.Category.Slug,
			Description: p.Category.Description,
		},
		Quiz: dto.QuizDraft{
			Title:       p.Quiz.Title,
			Description: p.Quiz.Description,
		},
		Questions:        make([]dto.QuestionDraft, len(p.Questions)),
		ExistingCategory: toCategoryResponse(existing),
	}
	for i, q := range p.Questions {
		resp.Questions[i] = dto.QuestionDraft{Question: q.Question, Options: q.Options, Answer: q.Answer}
	}
	return resp
}

// fromSaveRequest keeps absent sections nil so validation can report them.
func fromSaveRequest(req *dto.SaveGeneratedQuizRequest) *domain.GeneratedQuiz {
	if req == nil {
		return nil
	}
	p := &domain.GeneratedQuiz{}
	if req.Category != nil {
		p.Category = &domain.CategoryDraft{
			Name:        req.Category.Name,
			Slug:        req.Category.Slug,
			Description: req.Category.Description,
		}
	}
	if req.Quiz != nil {
		p.Quiz = &domain.QuizDraft{Title: req.Quiz.Title, Description: req.Quiz.Description}
	}
	if req.Questions != nil {
		p.Questions = make([]domain.QuestionDraft, len(req.Questions))
		for i, q := range req.Questions {
			p.Questions[i] = domain.QuestionDraft{Question: q.Question, Options: q.Options, Answer: q.Answer}
		}
	}
	return p
}
