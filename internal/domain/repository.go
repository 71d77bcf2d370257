package domain

import "context"

// Repositories return (nil, nil) when a record is absent. Every owner-scoped
// lookup takes the caller's identity ID so foreign records read as absent.

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id, userID string) (*Category, error)
	GetBySlug(ctx context.Context, slug, userID string) (*Category, error)
	ListByUser(ctx context.Context, userID string) ([]*Category, error)
	ExistsBySlug(ctx context.Context, slug, userID string) (bool, error)
	Delete(ctx context.Context, id, userID string) (int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id, userID string) (*Quiz, error)
	GetBySlug(ctx context.Context, slug, userID string) (*Quiz, error)
	ListByCategory(ctx context.Context, categoryID, userID string) ([]*Quiz, error)
	ListByUser(ctx context.Context, userID string) ([]*Quiz, error)
	ExistsBySlug(ctx context.Context, slug, userID string) (bool, error)
	Delete(ctx context.Context, id, userID string) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID, userID string) (int64, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	// ListByQuiz returns the attached questions in position order.
	ListByQuiz(ctx context.Context, quizID string) ([]*Question, error)
	// GetByIDsForUser returns only questions whose quiz is owned by userID.
	GetByIDsForUser(ctx context.Context, ids []string, userID string) ([]*Question, error)
	NextPosition(ctx context.Context, quizID string) (int, error)
	// Attach moves the questions into quizID with positions 1..n in slice order.
	Attach(ctx context.Context, quizID string, questionIDs []string) error
	DetachAll(ctx context.Context, quizID string) error
	DeleteByQuiz(ctx context.Context, quizID string) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TransactionManager runs fn so that repositories called with the derived
// context share one transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
