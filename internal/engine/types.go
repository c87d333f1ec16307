package engine

import (
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
)

// KnightView is a knight together with its derived fields
type KnightView struct {
	ID           string
	Name         string
	Nickname     string
	Birthday     time.Time
	Age          int
	Weapons      []entities.Weapon
	Attributes   entities.Attributes
	KeyAttribute entities.AttributeName
	Attack       int
	Exp          int
	IsDeleted    bool
	DeletedAt    *time.Time
}
