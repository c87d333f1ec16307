package knight

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	knights   map[string]*entities.Knight
	nicknames map[string]string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		knights:   make(map[string]*entities.Knight),
		nicknames: make(map[string]string),
	}
}

// List returns stored knights ordered by ID
func (r *InMemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.knights))
	for id := range r.knights {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	knights := make([]*entities.Knight, 0, len(ids))
	for _, id := range ids {
		knight := r.knights[id]
		if input.OnlyDead && !knight.IsDead() {
			continue
		}
		knights = append(knights, knight.Clone())
	}

	return &ListOutput{Knights: knights}, nil
}

// Get retrieves a knight by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errKnightIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	knight, exists := r.knights[input.ID]
	if !exists {
		return nil, errNotFound(input.ID)
	}

	return &GetOutput{Knight: knight.Clone()}, nil
}

// GetByNickname retrieves the knight holding a nickname
func (r *InMemoryRepository) GetByNickname(
	_ context.Context,
	input GetByNicknameInput,
) (*GetByNicknameOutput, error) {
	if input.Nickname == "" {
		return nil, errors.InvalidArgument(errNicknameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.nicknames[input.Nickname]
	if !exists {
		return nil, errors.NotFoundf("knight with nickname %s not found", input.Nickname)
	}

	return &GetByNicknameOutput{Knight: r.knights[id].Clone()}, nil
}

// Create stores a new knight
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.nicknames[input.Knight.Nickname]; taken {
		return nil, errNicknameTaken(input.Knight.Nickname)
	}
	if _, exists := r.knights[input.Knight.ID]; exists {
		return nil, errors.AlreadyExistsf("knight with ID %s already exists", input.Knight.ID)
	}

	r.knights[input.Knight.ID] = input.Knight.Clone()
	r.nicknames[input.Knight.Nickname] = input.Knight.ID

	return &CreateOutput{Knight: input.Knight.Clone()}, nil
}

// UpdateNickname changes the nickname of a knight
func (r *InMemoryRepository) UpdateNickname(
	_ context.Context,
	input UpdateNicknameInput,
) (*UpdateNicknameOutput, error) {
	if err := validateUpdateNickname(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	knight, exists := r.knights[input.ID]
	if !exists {
		return nil, errNotFound(input.ID)
	}

	if holder, taken := r.nicknames[input.Nickname]; taken && holder != input.ID {
		return nil, errNicknameTaken(input.Nickname)
	}

	delete(r.nicknames, knight.Nickname)
	knight.Nickname = input.Nickname
	r.nicknames[input.Nickname] = input.ID

	return &UpdateNicknameOutput{Knight: knight.Clone()}, nil
}

// MarkDead soft deletes a knight
func (r *InMemoryRepository) MarkDead(_ context.Context, input MarkDeadInput) (*MarkDeadOutput, error) {
	if err := validateMarkDead(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	knight, exists := r.knights[input.ID]
	if !exists {
		return nil, errNotFound(input.ID)
	}
	if knight.IsDead() {
		return nil, errAlreadyDead(input.ID)
	}

	deletedAt := input.DeletedAt
	knight.IsDeleted = true
	knight.DeletedAt = &deletedAt

	return &MarkDeadOutput{Knight: knight.Clone()}, nil
}
