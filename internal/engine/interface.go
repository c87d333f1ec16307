// Package engine computes the derived knight fields and builds the knight
// projection returned to callers
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/knight-api/internal/engine Engine

import (
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
)

// Engine provides the knight attribute calculations. Implementations are
// pure and safe for concurrent use.
type Engine interface {
	// Age returns the complete years between birthday and now
	Age(birthday, now time.Time) int
	// AttributeModifier maps an attribute score to its combat modifier
	AttributeModifier(score int) int
	// Attack returns the attack value of a knight
	Attack(knight *entities.Knight) int
	// Experience returns the experience earned at the given age
	Experience(age int) int

	// ProjectKnight builds the view of a single knight at now
	ProjectKnight(knight *entities.Knight, now time.Time) *KnightView
	// ProjectKnights builds views for knights, keeping their order
	ProjectKnights(knights []*entities.Knight, now time.Time) []*KnightView
}
