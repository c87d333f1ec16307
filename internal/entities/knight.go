package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeKnight is the rpg-toolkit entity type reported by Knight
const EntityTypeKnight = "knight"

// AttributeName names one of the six knight attributes
type AttributeName string

// Attribute names accepted as a key attribute or a weapon attribute
const (
	AttributeStrength     AttributeName = "strength"
	AttributeDexterity    AttributeName = "dexterity"
	AttributeConstitution AttributeName = "constitution"
	AttributeIntelligence AttributeName = "intelligence"
	AttributeWisdom       AttributeName = "wisdom"
	AttributeCharisma     AttributeName = "charisma"
)

// AttributeNames returns every attribute name in declaration order
func AttributeNames() []AttributeName {
	return []AttributeName{
		AttributeStrength,
		AttributeDexterity,
		AttributeConstitution,
		AttributeIntelligence,
		AttributeWisdom,
		AttributeCharisma,
	}
}

// IsValid reports whether the name is one of the six attributes
func (a AttributeName) IsValid() bool {
	for _, name := range AttributeNames() {
		if a == name {
			return true
		}
	}
	return false
}

// String returns the attribute name
func (a AttributeName) String() string {
	return string(a)
}

// Attributes holds the six attribute scores of a knight
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Score returns the score of the named attribute. Unknown names score 0.
func (a Attributes) Score(name AttributeName) int {
	switch name {
	case AttributeStrength:
		return a.Strength
	case AttributeDexterity:
		return a.Dexterity
	case AttributeConstitution:
		return a.Constitution
	case AttributeIntelligence:
		return a.Intelligence
	case AttributeWisdom:
		return a.Wisdom
	case AttributeCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Weapon is carried by a knight. Attr is recorded but takes no part in attack.
type Weapon struct {
	Name     string        `json:"name"`
	Mod      int           `json:"mod"`
	Attr     AttributeName `json:"attr"`
	Equipped bool          `json:"equipped"`
}

// Knight is the stored knight document
type Knight struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Nickname     string        `json:"nickname"`
	Birthday     time.Time     `json:"birthday"`
	Weapons      []Weapon      `json:"weapons"`
	Attributes   Attributes    `json:"attributes"`
	KeyAttribute AttributeName `json:"keyAttribute"`
	IsDeleted    bool          `json:"isDeleted"`
	DeletedAt    *time.Time    `json:"deletedAt,omitempty"`
}

var _ core.Entity = (*Knight)(nil)

// GetID implements core.Entity
func (k *Knight) GetID() string {
	return k.ID
}

// GetType implements core.Entity
func (k *Knight) GetType() string {
	return EntityTypeKnight
}

// IsDead reports whether the knight has been soft deleted
func (k *Knight) IsDead() bool {
	return k.IsDeleted
}

// Clone returns a deep copy of the knight
func (k *Knight) Clone() *Knight {
	if k == nil {
		return nil
	}

	clone := *k
	if k.Weapons != nil {
		clone.Weapons = make([]Weapon, len(k.Weapons))
		copy(clone.Weapons, k.Weapons)
	}
	if k.DeletedAt != nil {
		deletedAt := *k.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	return &clone
}

// ListFilter selects which knights a listing returns
type ListFilter string

const (
	// ListFilterAll returns every knight, alive or dead
	ListFilterAll ListFilter = ""
	// ListFilterHeroes returns only dead knights
	ListFilterHeroes ListFilter = "heroes"
)

// IsValid reports whether the filter is known
func (f ListFilter) IsValid() bool {
	return f == ListFilterAll || f == ListFilterHeroes
}

// OnlyDead reports whether the filter restricts the listing to dead knights
func (f ListFilter) OnlyDead() bool {
	return f == ListFilterHeroes
}
