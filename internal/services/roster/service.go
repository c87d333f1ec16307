// Package roster rolls random knights for seeding a store
package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/gosimple/slug"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock_service.go -package=rostermock github.com/KirkDiggler/knight-api/internal/services/roster Service

const (
	// MaxCount bounds a single generation request
	MaxCount = 100

	minAge      = 16
	ageSpread   = 40
	maxWeapons  = 3
	suffixSides = 999
)

var (
	knightNames = []string{
		"Arthur Pendragon",
		"Lancelot du Lac",
		"Gawain of Orkney",
		"Percival of Wales",
		"Galahad the Pure",
		"Tristan of Lyonesse",
		"Bedivere the One-Handed",
		"Kay the Seneschal",
		"Gareth Beaumains",
		"Lamorak de Galis",
		"Bors de Ganis",
		"Ywain the Lion Knight",
	}

	weaponNames = []string{
		"sword",
		"lance",
		"mace",
		"dagger",
		"longbow",
		"warhammer",
		"morning star",
		"halberd",
	}
)

// Service rolls knight creation requests
type Service interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// GenerateInput contains how many knights to roll
type GenerateInput struct {
	Count int
}

// GenerateOutput contains the rolled creation requests
type GenerateOutput struct {
	Knights []*knight.CreateKnightInput
}

// Config holds the dependencies of the roster service
type Config struct {
	Roller dice.Roller
	Clock  clock.Clock
}

// Validate checks the config. A nil Clock defaults to the real clock.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type service struct {
	roller dice.Roller
	clock  clock.Clock
}

// New creates a roster service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &service{roller: cfg.Roller, clock: c}, nil
}

// Generate rolls Count knights. Every request passes the orchestrator's
// create validation; nicknames may still collide with stored knights.
func (s *service) Generate(_ context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("count", input.Count, 1, MaxCount, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	knights := make([]*knight.CreateKnightInput, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		k, err := s.rollKnight(now)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll knight %d", i+1)
		}
		knights = append(knights, k)
	}

	return &GenerateOutput{Knights: knights}, nil
}

func (s *service) rollKnight(now time.Time) (*knight.CreateKnightInput, error) {
	name, err := s.pick(knightNames)
	if err != nil {
		return nil, err
	}

	suffix, err := s.roller.Roll(suffixSides)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll nickname suffix")
	}

	birthday, err := s.rollBirthday(now)
	if err != nil {
		return nil, err
	}

	attributes, err := s.rollAttributes()
	if err != nil {
		return nil, err
	}

	keyAttribute, err := s.pickAttribute()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll key attribute")
	}

	weapons, err := s.rollWeapons()
	if err != nil {
		return nil, err
	}

	return &knight.CreateKnightInput{
		Name:         name,
		Nickname:     nickname(name, suffix),
		Birthday:     birthday,
		Weapons:      weapons,
		Attributes:   attributes,
		KeyAttribute: keyAttribute,
	}, nil
}

// rollBirthday never returns a date after now
func (s *service) rollBirthday(now time.Time) (time.Time, error) {
	years, err := s.roller.Roll(ageSpread)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to roll age")
	}
	days, err := s.roller.Roll(365)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to roll birthday")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	birthday := today.AddDate(-(minAge + years - 1), 0, -(days - 1))
	if birthday.After(now) {
		birthday = today
	}
	return birthday, nil
}

func (s *service) rollAttributes() (entities.Attributes, error) {
	// d11 - 1 covers the full 0..10 score range
	scores, err := s.roller.RollN(len(entities.AttributeNames()), knight.MaxAttributeScore+1)
	if err != nil {
		return entities.Attributes{}, errors.Wrap(err, "failed to roll attributes")
	}
	if len(scores) != 6 {
		return entities.Attributes{}, errors.Internalf("expected 6 attribute rolls, got %d", len(scores))
	}

	return entities.Attributes{
		Strength:     scores[0] - 1,
		Dexterity:    scores[1] - 1,
		Constitution: scores[2] - 1,
		Intelligence: scores[3] - 1,
		Wisdom:       scores[4] - 1,
		Charisma:     scores[5] - 1,
	}, nil
}

// rollWeapons returns at least one weapon; the first one is equipped
func (s *service) rollWeapons() ([]entities.Weapon, error) {
	count, err := s.roller.Roll(maxWeapons)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll weapon count")
	}
	if count < 1 {
		count = 1
	}

	weapons := make([]entities.Weapon, 0, count)
	for i := 0; i < count; i++ {
		name, err := s.pick(weaponNames)
		if err != nil {
			return nil, err
		}
		mod, err := s.roller.Roll(knight.MaxWeaponMod + 1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll weapon mod")
		}
		attr, err := s.pickAttribute()
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll weapon attribute")
		}

		weapons = append(weapons, entities.Weapon{
			Name:     name,
			Mod:      mod - 1,
			Attr:     attr,
			Equipped: i == 0,
		})
	}

	return weapons, nil
}

func (s *service) pick(values []string) (string, error) {
	i, err := s.index(len(values))
	if err != nil {
		return "", err
	}
	return values[i], nil
}

func (s *service) pickAttribute() (entities.AttributeName, error) {
	names := entities.AttributeNames()
	i, err := s.index(len(names))
	if err != nil {
		return "", err
	}
	return names[i], nil
}

// index rolls a zero based index below n
func (s *service) index(n int) (int, error) {
	roll, err := s.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll choice")
	}
	if roll < 1 || roll > n {
		return 0, errors.Internalf("roll %d out of range 1..%d", roll, n)
	}
	return roll - 1, nil
}

// nickname slugs the name and appends the suffix, trimming the slug so
// the result fits MaxNicknameLength
func nickname(name string, suffix int) string {
	tail := fmt.Sprintf("-%d", suffix)
	base := slug.Make(name)
	if room := knight.MaxNicknameLength - len(tail); len(base) > room {
		base = slug.Make(base[:room])
	}
	return base + tail
}
