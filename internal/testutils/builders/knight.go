// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
)

// KnightBuilder provides a fluent interface for building test Knight instances
type KnightBuilder struct {
	knight *entities.Knight
}

// NewKnightBuilder creates a new builder with a valid, living knight
func NewKnightBuilder() *KnightBuilder {
	return &KnightBuilder{
		knight: &entities.Knight{
			ID:       "00000000-0000-0000-0000-000000000001",
			Name:     "Lancelot du Lac",
			Nickname: "lancelot",
			Birthday: time.Date(1997, time.November, 19, 0, 0, 0, 0, time.UTC),
			Weapons: []entities.Weapon{
				{Name: "sword", Mod: 2, Attr: entities.AttributeStrength, Equipped: true},
			},
			Attributes: entities.Attributes{
				Strength:     10,
				Dexterity:    8,
				Constitution: 7,
				Intelligence: 5,
				Wisdom:       6,
				Charisma:     9,
			},
			KeyAttribute: entities.AttributeStrength,
		},
	}
}

// WithID sets the knight ID
func (b *KnightBuilder) WithID(id string) *KnightBuilder {
	b.knight.ID = id
	return b
}

// WithName sets the knight name
func (b *KnightBuilder) WithName(name string) *KnightBuilder {
	b.knight.Name = name
	return b
}

// WithNickname sets the knight nickname
func (b *KnightBuilder) WithNickname(nickname string) *KnightBuilder {
	b.knight.Nickname = nickname
	return b
}

// WithBirthday sets the knight birthday
func (b *KnightBuilder) WithBirthday(birthday time.Time) *KnightBuilder {
	b.knight.Birthday = birthday
	return b
}

// WithWeapons replaces the knight weapons
func (b *KnightBuilder) WithWeapons(weapons ...entities.Weapon) *KnightBuilder {
	b.knight.Weapons = weapons
	return b
}

// WithAttributes sets the attribute scores
func (b *KnightBuilder) WithAttributes(attributes entities.Attributes) *KnightBuilder {
	b.knight.Attributes = attributes
	return b
}

// WithKeyAttribute sets the key attribute
func (b *KnightBuilder) WithKeyAttribute(name entities.AttributeName) *KnightBuilder {
	b.knight.KeyAttribute = name
	return b
}

// Dead marks the knight as soft deleted at deletedAt
func (b *KnightBuilder) Dead(deletedAt time.Time) *KnightBuilder {
	b.knight.IsDeleted = true
	b.knight.DeletedAt = &deletedAt
	return b
}

// Build returns a copy of the built knight
func (b *KnightBuilder) Build() *entities.Knight {
	return b.knight.Clone()
}
