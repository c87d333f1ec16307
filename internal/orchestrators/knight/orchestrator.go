// Package knight implements the knight lifecycle: creation, lookups,
// nickname changes and soft deletion
package knight

//go:generate mockgen -destination=mock/mock_service.go -package=knightmock github.com/KirkDiggler/knight-api/internal/orchestrators/knight Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/knight-api/internal/engine"
	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
	"github.com/KirkDiggler/knight-api/internal/pkg/idgen"
	knightrepo "github.com/KirkDiggler/knight-api/internal/repositories/knight"
)

// Field limits for knights
const (
	MaxNameLength       = 64
	MaxNicknameLength   = 32
	MaxWeaponNameLength = 64
	MinWeaponMod        = 0
	MaxWeaponMod        = 10
	MinAttributeScore   = 0
	MaxAttributeScore   = 10
)

// Service defines the knight lifecycle operations
type Service interface {
	CreateKnight(ctx context.Context, input *CreateKnightInput) (*CreateKnightOutput, error)
	GetKnight(ctx context.Context, input *GetKnightInput) (*GetKnightOutput, error)
	ListKnights(ctx context.Context, input *ListKnightsInput) (*ListKnightsOutput, error)
	UpdateKnight(ctx context.Context, input *UpdateKnightInput) (*UpdateKnightOutput, error)
	DeleteKnight(ctx context.Context, input *DeleteKnightInput) (*DeleteKnightOutput, error)
}

// Config holds the dependencies for the knight orchestrator
type Config struct {
	KnightRepo  knightrepo.Repository
	Engine      engine.Engine
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.KnightRepo == nil {
		vb.RequiredField("KnightRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	knightRepo knightrepo.Repository
	engine     engine.Engine
	clock      clock.Clock
	idGen      idgen.Generator
}

// NewOrchestrator creates a new knight orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		knightRepo: cfg.KnightRepo,
		engine:     cfg.Engine,
		clock:      c,
		idGen:      cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) CreateKnight(ctx context.Context, input *CreateKnightInput) (*CreateKnightOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	now := o.clock.Now()
	if err := validateCreateKnight(input, now); err != nil {
		return nil, err
	}

	if err := o.ensureNicknameFree(ctx, input.Nickname, ""); err != nil {
		return nil, err
	}

	weapons := make([]entities.Weapon, len(input.Weapons))
	copy(weapons, input.Weapons)

	knight := &entities.Knight{
		ID:           o.idGen.Generate(),
		Name:         input.Name,
		Nickname:     input.Nickname,
		Birthday:     input.Birthday,
		Weapons:      weapons,
		Attributes:   input.Attributes,
		KeyAttribute: input.KeyAttribute,
	}

	created, err := o.knightRepo.Create(ctx, knightrepo.CreateInput{Knight: knight})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create knight")
	}

	logEntity(ctx, "knight created", created.Knight,
		"nickname", created.Knight.Nickname)

	return &CreateKnightOutput{
		Knight: o.engine.ProjectKnight(created.Knight, now),
	}, nil
}

func (o *orchestrator) GetKnight(ctx context.Context, input *GetKnightInput) (*GetKnightOutput, error) {
	if input == nil || input.KnightID == "" {
		return nil, errors.InvalidArgument("knight ID is required")
	}

	slog.DebugContext(ctx, "getting knight", "knight_id", input.KnightID)

	got, err := o.knightRepo.Get(ctx, knightrepo.GetInput{ID: input.KnightID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get knight")
	}

	return &GetKnightOutput{
		Knight: o.engine.ProjectKnight(got.Knight, o.clock.Now()),
	}, nil
}

func (o *orchestrator) ListKnights(ctx context.Context, input *ListKnightsInput) (*ListKnightsOutput, error) {
	filter := entities.ListFilterAll
	if input != nil {
		filter = input.Filter
	}
	if !filter.IsValid() {
		return nil, errors.InvalidArgumentf("unknown knight filter: %s", filter).
			WithMeta("filter", string(filter))
	}

	slog.DebugContext(ctx, "listing knights", "filter", string(filter))

	listed, err := o.knightRepo.List(ctx, knightrepo.ListInput{OnlyDead: filter.OnlyDead()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list knights")
	}

	return &ListKnightsOutput{
		Knights: o.engine.ProjectKnights(listed.Knights, o.clock.Now()),
	}, nil
}

func (o *orchestrator) UpdateKnight(ctx context.Context, input *UpdateKnightInput) (*UpdateKnightOutput, error) {
	if input == nil || input.KnightID == "" {
		return nil, errors.InvalidArgument("knight ID is required")
	}
	if err := validateUpdateKnight(input); err != nil {
		return nil, err
	}

	got, err := o.knightRepo.Get(ctx, knightrepo.GetInput{ID: input.KnightID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get knight")
	}
	knight := got.Knight

	if input.Nickname != nil && *input.Nickname != knight.Nickname {
		if err := o.ensureNicknameFree(ctx, *input.Nickname, knight.ID); err != nil {
			return nil, err
		}

		updated, err := o.knightRepo.UpdateNickname(ctx, knightrepo.UpdateNicknameInput{
			ID:       knight.ID,
			Nickname: *input.Nickname,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to update knight")
		}

		logEntity(ctx, "knight nickname updated", updated.Knight,
			"from", knight.Nickname,
			"to", updated.Knight.Nickname)
		knight = updated.Knight
	}

	return &UpdateKnightOutput{
		Knight: o.engine.ProjectKnight(knight, o.clock.Now()),
	}, nil
}

func (o *orchestrator) DeleteKnight(ctx context.Context, input *DeleteKnightInput) (*DeleteKnightOutput, error) {
	if input == nil || input.KnightID == "" {
		return nil, errors.InvalidArgument("knight ID is required")
	}

	got, err := o.knightRepo.Get(ctx, knightrepo.GetInput{ID: input.KnightID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get knight")
	}
	if got.Knight.IsDead() {
		return nil, errAlreadyDead(input.KnightID)
	}

	now := o.clock.Now()
	marked, err := o.knightRepo.MarkDead(ctx, knightrepo.MarkDeadInput{
		ID:        input.KnightID,
		DeletedAt: now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete knight")
	}

	logEntity(ctx, "knight laid to rest", marked.Knight,
		"nickname", marked.Knight.Nickname)

	return &DeleteKnightOutput{
		Knight: o.engine.ProjectKnight(marked.Knight, now),
	}, nil
}

// ensureNicknameFree fails when a knight other than selfID holds nickname
func (o *orchestrator) ensureNicknameFree(ctx context.Context, nickname, selfID string) error {
	holder, err := o.knightRepo.GetByNickname(ctx, knightrepo.GetByNicknameInput{Nickname: nickname})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "failed to check nickname")
	}
	if holder.Knight.ID == selfID {
		return nil
	}
	return errNicknameTaken(nickname)
}

// logEntity records a write against e, keyed by its type and ID
func logEntity(ctx context.Context, msg string, e core.Entity, args ...any) {
	attrs := append([]any{"entity_type", e.GetType(), "entity_id", e.GetID()}, args...)
	slog.InfoContext(ctx, msg, attrs...)
}

func errNicknameTaken(nickname string) error {
	return errors.AlreadyExistsf("knight already exists with nickname: %s", nickname).
		WithMeta("nickname", nickname)
}

func errAlreadyDead(id string) error {
	return errors.FailedPrecondition("the hero is already dead, respecting the legend").
		WithMeta("knight_id", id)
}
