package knight

import (
	"time"

	"github.com/KirkDiggler/knight-api/internal/engine"
	"github.com/KirkDiggler/knight-api/internal/entities"
)

// CreateKnightInput contains the fields of a new knight
type CreateKnightInput struct {
	Name         string
	Nickname     string
	Birthday     time.Time
	Weapons      []entities.Weapon
	Attributes   entities.Attributes
	KeyAttribute entities.AttributeName
}

// CreateKnightOutput contains the created knight
type CreateKnightOutput struct {
	Knight *engine.KnightView
}

// GetKnightInput identifies the knight to fetch
type GetKnightInput struct {
	KnightID string
}

// GetKnightOutput contains the fetched knight
type GetKnightOutput struct {
	Knight *engine.KnightView
}

// ListKnightsInput selects which knights to list
type ListKnightsInput struct {
	Filter entities.ListFilter
}

// ListKnightsOutput contains the listed knights
type ListKnightsOutput struct {
	Knights []*engine.KnightView
}

// UpdateKnightInput contains a partial knight update. A nil Nickname leaves
// the knight unchanged.
type UpdateKnightInput struct {
	KnightID string
	Nickname *string
}

// UpdateKnightOutput contains the updated knight
type UpdateKnightOutput struct {
	Knight *engine.KnightView
}

// DeleteKnightInput identifies the knight to soft delete
type DeleteKnightInput struct {
	KnightID string
}

// DeleteKnightOutput contains the knight as it was laid to rest
type DeleteKnightOutput struct {
	Knight *engine.KnightView
}
