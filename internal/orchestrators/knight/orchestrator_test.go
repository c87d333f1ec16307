package knight_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/knight-api/internal/engine"
	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
	idgenmock "github.com/KirkDiggler/knight-api/internal/pkg/idgen/mock"
	knightrepo "github.com/KirkDiggler/knight-api/internal/repositories/knight"
	knightrepomock "github.com/KirkDiggler/knight-api/internal/repositories/knight/mock"
	"github.com/KirkDiggler/knight-api/internal/testutils"
	"github.com/KirkDiggler/knight-api/internal/testutils/builders"
	"github.com/KirkDiggler/knight-api/internal/testutils/mocks"
)

const testKnightID = "00000000-0000-0000-0000-000000000001"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *knightrepomock.MockRepository
	mockIDGen    *idgenmock.MockGenerator
	clock        *clock.Fixed
	orchestrator knight.Service
	ctx          context.Context
	now          time.Time
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = knightrepomock.NewMockRepository(s.ctrl)
	s.mockIDGen = idgenmock.NewMockGenerator(s.ctrl)
	s.now = time.Date(2024, time.November, 19, 9, 0, 0, 0, time.UTC)
	s.clock = clock.NewFixed(s.now)
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	s.orchestrator, err = knight.NewOrchestrator(&knight.Config{
		KnightRepo:  s.mockRepo,
		Engine:      eng,
		Clock:       s.clock,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) createInput() *knight.CreateKnightInput {
	return &knight.CreateKnightInput{
		Name:     "Lancelot du Lac",
		Nickname: "lancelot",
		Birthday: time.Date(1997, time.November, 19, 0, 0, 0, 0, time.UTC),
		Weapons: []entities.Weapon{
			{Name: "sword", Mod: 2, Attr: entities.AttributeStrength, Equipped: true},
			{Name: "lance", Mod: 5, Attr: entities.AttributeDexterity},
		},
		Attributes: entities.Attributes{
			Strength: 10, Dexterity: 8, Constitution: 7, Intelligence: 5, Wisdom: 6, Charisma: 9,
		},
		KeyAttribute: entities.AttributeStrength,
	}
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := knight.NewOrchestrator(&knight.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "KnightRepo")
	s.Contains(err.Error(), "Engine")
	s.Contains(err.Error(), "IDGenerator")
}

func (s *OrchestratorTestSuite) TestCreateKnight_Success() {
	input := s.createInput()

	mocks.ExpectNicknameFree(s.ctx, s.mockRepo, "lancelot")
	s.mockIDGen.EXPECT().Generate().Return(testKnightID)
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in knightrepo.CreateInput) (*knightrepo.CreateOutput, error) {
			s.Equal(testKnightID, in.Knight.ID)
			s.Equal("lancelot", in.Knight.Nickname)
			s.False(in.Knight.IsDeleted)
			s.Nil(in.Knight.DeletedAt)
			return &knightrepo.CreateOutput{Knight: in.Knight}, nil
		})

	out, err := s.orchestrator.CreateKnight(s.ctx, input)
	s.Require().NoError(err)
	s.Require().NotNil(out.Knight)
	s.Equal(testKnightID, out.Knight.ID)
	s.Equal(27, out.Knight.Age)
	s.Equal(11, out.Knight.Attack)
	s.Equal(1768, out.Knight.Exp)
	s.False(out.Knight.IsDeleted)
}

func (s *OrchestratorTestSuite) TestCreateKnight_NicknameTaken() {
	existing := builders.NewKnightBuilder().WithNickname("lancelot").Build()
	mocks.ExpectNicknameHeld(s.ctx, s.mockRepo, existing)

	_, err := s.orchestrator.CreateKnight(s.ctx, s.createInput())
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
	s.Equal("knight already exists with nickname: lancelot", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestCreateKnight_StoreConflict() {
	s.mockRepo.EXPECT().
		GetByNickname(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("knight not found"))
	s.mockIDGen.EXPECT().Generate().Return(testKnightID)
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.AlreadyExists("knight already exists with nickname: lancelot"))

	_, err := s.orchestrator.CreateKnight(s.ctx, s.createInput())
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestCreateKnight_ValidationErrors() {
	testCases := []struct {
		name   string
		modify func(*knight.CreateKnightInput)
		field  string
	}{
		{
			name:   "missing name",
			modify: func(in *knight.CreateKnightInput) { in.Name = "" },
			field:  "name",
		},
		{
			name: "nickname too long",
			modify: func(in *knight.CreateKnightInput) {
				in.Nickname = "abcdefghijklmnopqrstuvwxyz0123456"
			},
			field: "nickname",
		},
		{
			name:   "future birthday",
			modify: func(in *knight.CreateKnightInput) { in.Birthday = s.now.Add(24 * time.Hour) },
			field:  "birthday",
		},
		{
			name:   "no weapons",
			modify: func(in *knight.CreateKnightInput) { in.Weapons = nil },
			field:  "weapons",
		},
		{
			name:   "weapon mod out of range",
			modify: func(in *knight.CreateKnightInput) { in.Weapons[1].Mod = 11 },
			field:  "weapons[1].mod",
		},
		{
			name:   "weapon attr unknown",
			modify: func(in *knight.CreateKnightInput) { in.Weapons[0].Attr = "luck" },
			field:  "weapons[0].attr",
		},
		{
			name:   "attribute out of range",
			modify: func(in *knight.CreateKnightInput) { in.Attributes.Wisdom = 11 },
			field:  "attributes.wisdom",
		},
		{
			name:   "unknown key attribute",
			modify: func(in *knight.CreateKnightInput) { in.KeyAttribute = "luck" },
			field:  "keyAttribute",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			input := s.createInput()
			tc.modify(input)

			_, err := s.orchestrator.CreateKnight(s.ctx, input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *OrchestratorTestSuite) TestGetKnight() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()
	mocks.ExpectKnightGet(s.ctx, s.mockRepo, testKnightID, k)

	out, err := s.orchestrator.GetKnight(s.ctx, &knight.GetKnightInput{KnightID: testKnightID})
	s.Require().NoError(err)
	s.Equal("lancelot", out.Knight.Nickname)
	s.Equal(11, out.Knight.Attack)
}

func (s *OrchestratorTestSuite) TestGetKnight_NotFound() {
	mocks.ExpectKnightMissing(s.ctx, s.mockRepo, testKnightID)

	_, err := s.orchestrator.GetKnight(s.ctx, &knight.GetKnightInput{KnightID: testKnightID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal(testKnightID, errors.GetMeta(err)["knight_id"])
}

func (s *OrchestratorTestSuite) TestGetKnight_RequiresID() {
	_, err := s.orchestrator.GetKnight(s.ctx, &knight.GetKnightInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListKnights() {
	testCases := []struct {
		name     string
		filter   entities.ListFilter
		onlyDead bool
	}{
		{name: "all", filter: entities.ListFilterAll, onlyDead: false},
		{name: "heroes", filter: entities.ListFilterHeroes, onlyDead: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			knights := []*entities.Knight{
				builders.NewKnightBuilder().WithID(testKnightID).Build(),
			}
			s.mockRepo.EXPECT().
				List(s.ctx, knightrepo.ListInput{OnlyDead: tc.onlyDead}).
				Return(&knightrepo.ListOutput{Knights: knights}, nil)

			out, err := s.orchestrator.ListKnights(s.ctx, &knight.ListKnightsInput{Filter: tc.filter})
			s.Require().NoError(err)
			s.Len(out.Knights, 1)
		})
	}
}

func (s *OrchestratorTestSuite) TestListKnights_ProjectsRoundTable() {
	roundTable := testutils.CreateTestRoundTable(s.now.AddDate(0, -1, 0))
	s.mockRepo.EXPECT().
		List(s.ctx, knightrepo.ListInput{OnlyDead: true}).
		Return(&knightrepo.ListOutput{Knights: testutils.Heroes(roundTable)}, nil)

	out, err := s.orchestrator.ListKnights(s.ctx, &knight.ListKnightsInput{Filter: entities.ListFilterHeroes})
	s.Require().NoError(err)
	s.Require().Len(out.Knights, 1)

	galahad := out.Knights[0]
	s.Equal(testutils.GalahadID, galahad.ID)
	s.True(galahad.IsDeleted)
	s.Equal(20, galahad.Age)
	s.Equal(1149, galahad.Exp)
	// wisdom 6 reads as -2 on the modifier table
	s.Equal(10, galahad.Attack)
}

func (s *OrchestratorTestSuite) TestListKnights_UnknownFilter() {
	_, err := s.orchestrator.ListKnights(s.ctx, &knight.ListKnightsInput{Filter: "villains"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateKnight_NoNickname() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()
	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(&knightrepo.GetOutput{Knight: k}, nil)

	out, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{KnightID: testKnightID})
	s.Require().NoError(err)
	s.Equal("lancelot", out.Knight.Nickname)
}

func (s *OrchestratorTestSuite) TestUpdateKnight_SameNickname() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()
	nickname := "lancelot"
	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(&knightrepo.GetOutput{Knight: k}, nil)

	out, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{
		KnightID: testKnightID,
		Nickname: &nickname,
	})
	s.Require().NoError(err)
	s.Equal("lancelot", out.Knight.Nickname)
}

func (s *OrchestratorTestSuite) TestUpdateKnight_NewNickname() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()
	renamed := builders.NewKnightBuilder().WithID(testKnightID).WithNickname("du-lac").Build()
	nickname := "du-lac"

	gomock.InOrder(
		s.mockRepo.EXPECT().
			Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
			Return(&knightrepo.GetOutput{Knight: k}, nil),
		s.mockRepo.EXPECT().
			GetByNickname(s.ctx, knightrepo.GetByNicknameInput{Nickname: nickname}).
			Return(nil, errors.NotFound("knight not found")),
		s.mockRepo.EXPECT().
			UpdateNickname(s.ctx, knightrepo.UpdateNicknameInput{ID: testKnightID, Nickname: nickname}).
			Return(&knightrepo.UpdateNicknameOutput{Knight: renamed}, nil),
	)

	out, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{
		KnightID: testKnightID,
		Nickname: &nickname,
	})
	s.Require().NoError(err)
	s.Equal("du-lac", out.Knight.Nickname)
}

func (s *OrchestratorTestSuite) TestUpdateKnight_NicknameTaken() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()
	other := builders.NewKnightBuilder().
		WithID("00000000-0000-0000-0000-000000000002").
		WithNickname("galahad").
		Build()
	nickname := "galahad"

	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(&knightrepo.GetOutput{Knight: k}, nil)
	s.mockRepo.EXPECT().
		GetByNickname(s.ctx, knightrepo.GetByNicknameInput{Nickname: nickname}).
		Return(&knightrepo.GetByNicknameOutput{Knight: other}, nil)

	_, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{
		KnightID: testKnightID,
		Nickname: &nickname,
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestUpdateKnight_NotFound() {
	nickname := "galahad"
	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(nil, errors.NotFound("knight not found"))

	_, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{
		KnightID: testKnightID,
		Nickname: &nickname,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUpdateKnight_InvalidNickname() {
	empty := ""
	_, err := s.orchestrator.UpdateKnight(s.ctx, &knight.UpdateKnightInput{
		KnightID: testKnightID,
		Nickname: &empty,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteKnight() {
	k := builders.NewKnightBuilder().WithID(testKnightID).Build()

	gomock.InOrder(
		mocks.ExpectKnightGet(s.ctx, s.mockRepo, testKnightID, k),
		mocks.ExpectKnightMarkDead(s.ctx, s.mockRepo, k, s.now),
	)

	out, err := s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: testKnightID})
	s.Require().NoError(err)
	s.True(out.Knight.IsDeleted)
	s.Require().NotNil(out.Knight.DeletedAt)
	s.Equal(s.now, *out.Knight.DeletedAt)
}

func (s *OrchestratorTestSuite) TestDeleteKnight_LogsEntity() {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	k := builders.NewKnightBuilder().WithID(testKnightID).WithNickname("lancelot").Build()
	mocks.ExpectKnightGet(s.ctx, s.mockRepo, testKnightID, k)
	mocks.ExpectKnightMarkDead(s.ctx, s.mockRepo, k, s.now)

	_, err := s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: testKnightID})
	s.Require().NoError(err)

	var line map[string]any
	s.Require().NoError(json.Unmarshal(logs.Bytes(), &line))
	s.Equal("knight laid to rest", line["msg"])
	s.Equal(entities.EntityTypeKnight, line["entity_type"])
	s.Equal(testKnightID, line["entity_id"])
	s.Equal("lancelot", line["nickname"])
}

func (s *OrchestratorTestSuite) TestDeleteKnight_AlreadyDead() {
	dead := builders.NewKnightBuilder().WithID(testKnightID).Dead(s.now).Build()

	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(&knightrepo.GetOutput{Knight: dead}, nil)

	_, err := s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: testKnightID})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("the hero is already dead, respecting the legend", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestDeleteKnight_NotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, knightrepo.GetInput{ID: testKnightID}).
		Return(nil, errors.NotFound("knight not found"))

	_, err := s.orchestrator.DeleteKnight(s.ctx, &knight.DeleteKnightInput{KnightID: testKnightID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
