// Package knight provides the interface for knight persistence and its
// Redis, Postgres and in-memory implementations
package knight

//go:generate mockgen -destination=mock/mock_repository.go -package=knightmock github.com/KirkDiggler/knight-api/internal/repositories/knight Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
)

const (
	// Error messages
	errKnightNil       = "knight cannot be nil"
	errKnightIDEmpty   = "knight ID cannot be empty"
	errNicknameEmpty   = "nickname cannot be empty"
	errDeletedAtNotSet = "deleted at cannot be zero"
)

// Repository defines the interface for knight persistence. Knights are never
// removed; MarkDead flags them instead.
type Repository interface {
	// List returns knights ordered by ID
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get retrieves a knight by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the knight doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByNickname retrieves the knight holding a nickname
	// Returns errors.NotFound if no knight holds it
	GetByNickname(ctx context.Context, input GetByNicknameInput) (*GetByNicknameOutput, error)

	// Create stores a new knight
	// Returns errors.AlreadyExists if the ID or the nickname is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// UpdateNickname changes the nickname of a knight
	// Returns errors.NotFound if the knight doesn't exist
	// Returns errors.AlreadyExists if another knight holds the nickname
	UpdateNickname(ctx context.Context, input UpdateNicknameInput) (*UpdateNicknameOutput, error)

	// MarkDead soft deletes a knight
	// Returns errors.NotFound if the knight doesn't exist
	// Returns errors.FailedPrecondition if the knight is already dead
	MarkDead(ctx context.Context, input MarkDeadInput) (*MarkDeadOutput, error)
}

// ListInput defines the input for listing knights
type ListInput struct {
	OnlyDead bool
}

// ListOutput defines the output for listing knights
type ListOutput struct {
	Knights []*entities.Knight
}

// GetInput defines the input for getting a knight
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a knight
type GetOutput struct {
	Knight *entities.Knight
}

// GetByNicknameInput defines the input for looking a knight up by nickname
type GetByNicknameInput struct {
	Nickname string
}

// GetByNicknameOutput defines the output for looking a knight up by nickname
type GetByNicknameOutput struct {
	Knight *entities.Knight
}

// CreateInput defines the input for creating a knight
type CreateInput struct {
	Knight *entities.Knight
}

// CreateOutput defines the output for creating a knight
type CreateOutput struct {
	Knight *entities.Knight
}

// UpdateNicknameInput defines the input for renaming a knight
type UpdateNicknameInput struct {
	ID       string
	Nickname string
}

// UpdateNicknameOutput defines the output for renaming a knight
type UpdateNicknameOutput struct {
	Knight *entities.Knight
}

// MarkDeadInput defines the input for soft deleting a knight
type MarkDeadInput struct {
	ID        string
	DeletedAt time.Time
}

// MarkDeadOutput defines the output for soft deleting a knight
type MarkDeadOutput struct {
	Knight *entities.Knight
}

func validateCreate(input CreateInput) error {
	if input.Knight == nil {
		return errors.InvalidArgument(errKnightNil)
	}
	if input.Knight.ID == "" {
		return errors.InvalidArgument(errKnightIDEmpty)
	}
	if input.Knight.Nickname == "" {
		return errors.InvalidArgument(errNicknameEmpty)
	}
	return nil
}

func validateUpdateNickname(input UpdateNicknameInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errKnightIDEmpty)
	}
	if input.Nickname == "" {
		return errors.InvalidArgument(errNicknameEmpty)
	}
	return nil
}

func validateMarkDead(input MarkDeadInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errKnightIDEmpty)
	}
	if input.DeletedAt.IsZero() {
		return errors.InvalidArgument(errDeletedAtNotSet)
	}
	return nil
}

func errNotFound(id string) error {
	return errors.NotFoundf("knight with ID %s not found", id).WithMeta("knight_id", id)
}

func errNicknameTaken(nickname string) error {
	return errors.AlreadyExistsf("knight already exists with nickname: %s", nickname).
		WithMeta("nickname", nickname)
}

func errAlreadyDead(id string) error {
	return errors.FailedPrecondition("the hero is already dead, respecting the legend").
		WithMeta("knight_id", id)
}
