package knight_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/knight-api/internal/engine"
	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
	"github.com/KirkDiggler/knight-api/internal/pkg/idgen"
	knightrepo "github.com/KirkDiggler/knight-api/internal/repositories/knight"
)

// LifecycleTestSuite drives the orchestrator against the in-memory store
type LifecycleTestSuite struct {
	suite.Suite
	ctx          context.Context
	clock        *clock.Fixed
	orchestrator knight.Service
}

func TestLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleTestSuite))
}

func (s *LifecycleTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2024, time.November, 19, 9, 0, 0, 0, time.UTC))

	eng, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	s.orchestrator, err = knight.NewOrchestrator(&knight.Config{
		KnightRepo:  knightrepo.NewInMemory(),
		Engine:      eng,
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential(),
	})
	s.Require().NoError(err)
}

func (s *LifecycleTestSuite) create(nickname string) string {
	out, err := s.orchestrator.CreateKnight(s.ctx, &knight.CreateKnightInput{
		Name:     "Sir " + nickname,
		Nickname: nickname,
		Birthday: time.Date(2001, time.November, 20, 0, 0, 0, 0, time.UTC),
		Weapons: []entities.Weapon{
			{Name: "sword", Mod: 3, Attr: entities.AttributeStrength, Equipped: true},
		},
		Attributes:   entities.Attributes{Strength: 9},
		KeyAttribute: entities.AttributeStrength,
	})
	s.Require().NoError(err)
	return out.Knight.ID
}

func (s *LifecycleTestSuite) TestCreateTwiceConflicts() {
	s.create("gawain")

	_, err := s.orchestrator.CreateKnight(s.ctx, &knight.CreateKnightInput{
		Name:         "Another Gawain",
		Nickname:     "gawain",
		Birthday:     time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Weapons:      []entities.Weapon{{Name: "axe", Attr: entities.AttributeStrength}},
		KeyAttribute: entities.AttributeStrength,
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *LifecycleTestSuite) TestAgeCrossesAnniversary() {
	id := s.create("tristan")

	got, err := s.orchestrator.GetKnight(s.ctx, &knight.GetKnightInput{KnightID: id})
	s.Require().NoError(err)
	s.Equal(22, got.Knight.Age)
	s.Equal(1326, got.Knight.Exp)
	s.Equal(12, got.Knight.Attack)

	s.clock.Advance(24 * time.Hour)

	got, err = s.orchestrator.GetKnight(s.ctx, &knight.GetKnightInput{KnightID: id})
	s.Require().NoError(err)
	s.Equal(23, got.Knight.Age)
	s.Equal(1414, got.Knight.Exp)
}

func (s *LifecycleTestSuite) TestDeleteTwiceIsRejected() {
	id := s.create("percival")

	deleted, err := s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: id})
	s.Require().NoError(err)
	s.True(deleted.Knight.IsDeleted)

	_, err = s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: id})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	heroes, err := s.orchestrator.ListKnights(s.ctx, &knight.ListKnightsInput{Filter: entities.ListFilterHeroes})
	s.Require().NoError(err)
	s.Require().Len(heroes.Knights, 1)
	s.Equal(id, heroes.Knights[0].ID)
}

func (s *LifecycleTestSuite) TestNicknameUpdates() {
	lancelot := s.create("lancelot")
	s.create("galahad")

	taken := "galahad"
	_, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{KnightID: lancelot, Nickname: &taken})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	own := "lancelot"
	out, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{KnightID: lancelot, Nickname: &own})
	s.Require().NoError(err)
	s.Equal("lancelot", out.Knight.Nickname)

	fresh := "du-lac"
	out, err = s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{KnightID: lancelot, Nickname: &fresh})
	s.Require().NoError(err)
	s.Equal("du-lac", out.Knight.Nickname)

	all, err := s.orchestrator.ListKnights(s.ctx, &knight.ListKnightsInput{})
	s.Require().NoError(err)
	s.Len(all.Knights, 2)
}
