package engine

import (
	"math"
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
)

const (
	// BaseAttack is the attack of a knight before modifiers
	BaseAttack = 10

	// MinExperienceAge is the age at which knights start earning experience
	MinExperienceAge = 7

	// DefaultExperienceBase and DefaultExperienceExponent give the
	// experience curve floor((age-7) * 22^1.45)
	DefaultExperienceBase     = 22.0
	DefaultExperienceExponent = 1.45
)

type modifierRange struct {
	min, max int
	modifier int
}

// Ranges are inclusive and checked in order. The table reaches past the
// stored 0-10 domain on purpose and must keep these bounds.
var modifierTable = []modifierRange{
	{min: 0, max: 8, modifier: -2},
	{min: 9, max: 10, modifier: -1},
	{min: 11, max: 12, modifier: 0},
	{min: 13, max: 15, modifier: 1},
	{min: 16, max: 18, modifier: 2},
	{min: 19, max: 20, modifier: 3},
}

type engine struct {
	experienceFactor float64
}

// Config configures the engine. Zero fields take the defaults.
type Config struct {
	ExperienceBase     float64
	ExperienceExponent float64
}

func (cfg *Config) base() float64 {
	if cfg.ExperienceBase == 0 {
		return DefaultExperienceBase
	}
	return cfg.ExperienceBase
}

func (cfg *Config) exponent() float64 {
	if cfg.ExperienceExponent == 0 {
		return DefaultExperienceExponent
	}
	return cfg.ExperienceExponent
}

// Validate validates the config
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	base, exponent := cfg.base(), cfg.exponent()
	if math.IsNaN(base) || math.IsInf(base, 0) || base < 1 {
		vb.Field("ExperienceBase", "must be a finite number of at least 1")
	}
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) || exponent < 0 {
		vb.Field("ExperienceExponent", "must be a finite, non-negative number")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if math.IsInf(math.Pow(base, exponent), 0) {
		vb.Field("ExperienceExponent", "overflows the experience factor")
	}
	return vb.Build()
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{
		experienceFactor: math.Pow(cfg.base(), cfg.exponent()),
	}, nil
}

func (e *engine) Age(birthday, now time.Time) int {
	now = now.In(birthday.Location())

	years := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		years--
	}

	// Birthdays after now are rejected upstream
	if years < 0 {
		return 0
	}
	return years
}

func (e *engine) AttributeModifier(score int) int {
	for _, r := range modifierTable {
		if score >= r.min && score <= r.max {
			return r.modifier
		}
	}
	return 0
}

func (e *engine) Attack(knight *entities.Knight) int {
	if knight == nil {
		return BaseAttack
	}

	attack := BaseAttack + e.AttributeModifier(knight.Attributes.Score(knight.KeyAttribute))
	for _, weapon := range knight.Weapons {
		if weapon.Equipped {
			attack += weapon.Mod
		}
	}
	return attack
}

func (e *engine) Experience(age int) int {
	if age < MinExperienceAge {
		return 0
	}
	return int(math.Floor(float64(age-MinExperienceAge) * e.experienceFactor))
}

func (e *engine) ProjectKnight(knight *entities.Knight, now time.Time) *KnightView {
	if knight == nil {
		return nil
	}

	snapshot := knight.Clone()
	age := e.Age(snapshot.Birthday, now)

	weapons := snapshot.Weapons
	if weapons == nil {
		weapons = []entities.Weapon{}
	}

	return &KnightView{
		ID:           snapshot.ID,
		Name:         snapshot.Name,
		Nickname:     snapshot.Nickname,
		Birthday:     snapshot.Birthday,
		Age:          age,
		Weapons:      weapons,
		Attributes:   snapshot.Attributes,
		KeyAttribute: snapshot.KeyAttribute,
		Attack:       e.Attack(snapshot),
		Exp:          e.Experience(age),
		IsDeleted:    snapshot.IsDeleted,
		DeletedAt:    snapshot.DeletedAt,
	}
}

func (e *engine) ProjectKnights(knights []*entities.Knight, now time.Time) []*KnightView {
	views := make([]*KnightView, 0, len(knights))
	for _, knight := range knights {
		views = append(views, e.ProjectKnight(knight, now))
	}
	return views
}
