package testutils

import (
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/testutils/builders"
)

// Round table fixture IDs, in store order
const (
	LancelotID = "00000000-0000-0000-0000-000000000001"
	GawainID   = "00000000-0000-0000-0000-000000000002"
	GalahadID  = "00000000-0000-0000-0000-000000000003"
)

// CreateTestRoundTable returns three knights sorted by ID. Galahad fell at
// fallenAt; the other two are alive.
func CreateTestRoundTable(fallenAt time.Time) []*entities.Knight {
	return []*entities.Knight{
		builders.NewKnightBuilder().
			WithID(LancelotID).
			Build(),
		builders.NewKnightBuilder().
			WithID(GawainID).
			WithName("Gawain of Orkney").
			WithNickname("gawain").
			WithBirthday(time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)).
			WithKeyAttribute(entities.AttributeConstitution).
			Build(),
		builders.NewKnightBuilder().
			WithID(GalahadID).
			WithName("Galahad the Pure").
			WithNickname("galahad").
			WithBirthday(time.Date(2004, time.March, 3, 0, 0, 0, 0, time.UTC)).
			WithKeyAttribute(entities.AttributeWisdom).
			Dead(fallenAt).
			Build(),
	}
}

// Heroes keeps the dead knights of a fixture set
func Heroes(knights []*entities.Knight) []*entities.Knight {
	heroes := make([]*entities.Knight, 0, len(knights))
	for _, k := range knights {
		if k.IsDead() {
			heroes = append(heroes, k)
		}
	}
	return heroes
}
