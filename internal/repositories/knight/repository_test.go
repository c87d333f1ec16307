package knight_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/repositories/knight"
	"github.com/KirkDiggler/knight-api/internal/testutils/builders"
)

const (
	firstID  = "00000000-0000-0000-0000-000000000001"
	secondID = "00000000-0000-0000-0000-000000000002"
	thirdID  = "00000000-0000-0000-0000-000000000003"
	missedID = "00000000-0000-0000-0000-0000000000ff"
)

// RepositoryContractSuite holds the behaviour every knight store shares.
// Backend suites embed it and set repo in SetupTest.
type RepositoryContractSuite struct {
	suite.Suite
	ctx  context.Context
	repo knight.Repository
	now  time.Time
}

func (s *RepositoryContractSuite) setup(repo knight.Repository) {
	s.ctx = context.Background()
	s.repo = repo
	s.now = time.Date(2024, time.November, 19, 10, 30, 0, 0, time.UTC)
}

func (s *RepositoryContractSuite) create(k *entities.Knight) *entities.Knight {
	out, err := s.repo.Create(s.ctx, knight.CreateInput{Knight: k})
	s.Require().NoError(err)
	return out.Knight
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	k := builders.NewKnightBuilder().WithID(firstID).Build()
	s.create(k)

	out, err := s.repo.Get(s.ctx, knight.GetInput{ID: firstID})
	s.Require().NoError(err)
	s.Equal(k, out.Knight)
}

func (s *RepositoryContractSuite) TestCreateValidatesInput() {
	_, err := s.repo.Create(s.ctx, knight.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, knight.CreateInput{
		Knight: builders.NewKnightBuilder().WithID("").Build(),
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestCreateDuplicateNickname() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("galahad").Build())

	_, err := s.repo.Create(s.ctx, knight.CreateInput{
		Knight: builders.NewKnightBuilder().WithID(secondID).WithNickname("galahad").Build(),
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
	s.Contains(err.Error(), "galahad")

	_, err = s.repo.Get(s.ctx, knight.GetInput{ID: secondID})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestCreateDuplicateIDLeavesNicknameFree() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("galahad").Build())

	_, err := s.repo.Create(s.ctx, knight.CreateInput{
		Knight: builders.NewKnightBuilder().WithID(firstID).WithNickname("percival").Build(),
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	_, err = s.repo.GetByNickname(s.ctx, knight.GetByNicknameInput{Nickname: "percival"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, knight.GetInput{ID: missedID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, knight.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestGetByNickname() {
	k := builders.NewKnightBuilder().WithID(firstID).WithNickname("bors").Build()
	s.create(k)

	out, err := s.repo.GetByNickname(s.ctx, knight.GetByNicknameInput{Nickname: "bors"})
	s.Require().NoError(err)
	s.Equal(firstID, out.Knight.ID)

	_, err = s.repo.GetByNickname(s.ctx, knight.GetByNicknameInput{Nickname: "tristan"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, knight.ListInput{})
	s.Require().NoError(err)
	s.NotNil(out.Knights)
	s.Empty(out.Knights)
}

func (s *RepositoryContractSuite) TestListOrderAndFilter() {
	s.create(builders.NewKnightBuilder().WithID(thirdID).WithNickname("gawain").Build())
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("kay").Build())
	s.create(builders.NewKnightBuilder().WithID(secondID).WithNickname("bedivere").Build())

	_, err := s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: secondID, DeletedAt: s.now})
	s.Require().NoError(err)

	all, err := s.repo.List(s.ctx, knight.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(all.Knights, 3)
	s.Equal(firstID, all.Knights[0].ID)
	s.Equal(secondID, all.Knights[1].ID)
	s.Equal(thirdID, all.Knights[2].ID)

	dead, err := s.repo.List(s.ctx, knight.ListInput{OnlyDead: true})
	s.Require().NoError(err)
	s.Require().Len(dead.Knights, 1)
	s.Equal("bedivere", dead.Knights[0].Nickname)
	s.True(dead.Knights[0].IsDeleted)
}

func (s *RepositoryContractSuite) TestUpdateNickname() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("lancelot").Build())

	out, err := s.repo.UpdateNickname(s.ctx, knight.UpdateNicknameInput{ID: firstID, Nickname: "the-white-knight"})
	s.Require().NoError(err)
	s.Equal("the-white-knight", out.Knight.Nickname)

	got, err := s.repo.GetByNickname(s.ctx, knight.GetByNicknameInput{Nickname: "the-white-knight"})
	s.Require().NoError(err)
	s.Equal(firstID, got.Knight.ID)

	// The previous nickname is free again
	s.create(builders.NewKnightBuilder().WithID(secondID).WithNickname("lancelot").Build())
}

func (s *RepositoryContractSuite) TestUpdateNicknameToOwnNickname() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("lancelot").Build())

	out, err := s.repo.UpdateNickname(s.ctx, knight.UpdateNicknameInput{ID: firstID, Nickname: "lancelot"})
	s.Require().NoError(err)
	s.Equal("lancelot", out.Knight.Nickname)
}

func (s *RepositoryContractSuite) TestUpdateNicknameTakenByAnother() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("lancelot").Build())
	s.create(builders.NewKnightBuilder().WithID(secondID).WithNickname("galahad").Build())

	_, err := s.repo.UpdateNickname(s.ctx, knight.UpdateNicknameInput{ID: secondID, Nickname: "lancelot"})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	got, err := s.repo.Get(s.ctx, knight.GetInput{ID: secondID})
	s.Require().NoError(err)
	s.Equal("galahad", got.Knight.Nickname)
}

func (s *RepositoryContractSuite) TestUpdateNicknameNotFound() {
	_, err := s.repo.UpdateNickname(s.ctx, knight.UpdateNicknameInput{ID: missedID, Nickname: "mordred"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestMarkDead() {
	s.create(builders.NewKnightBuilder().WithID(firstID).Build())

	out, err := s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: firstID, DeletedAt: s.now})
	s.Require().NoError(err)
	s.True(out.Knight.IsDeleted)
	s.Require().NotNil(out.Knight.DeletedAt)
	s.True(s.now.Equal(*out.Knight.DeletedAt))

	got, err := s.repo.Get(s.ctx, knight.GetInput{ID: firstID})
	s.Require().NoError(err)
	s.True(got.Knight.IsDead())
	s.Require().NotNil(got.Knight.DeletedAt)
	s.True(s.now.Equal(*got.Knight.DeletedAt))
}

func (s *RepositoryContractSuite) TestMarkDeadTwice() {
	s.create(builders.NewKnightBuilder().WithID(firstID).Build())

	_, err := s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: firstID, DeletedAt: s.now})
	s.Require().NoError(err)

	_, err = s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: firstID, DeletedAt: s.now.Add(time.Hour)})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	// The first death date stays
	got, err := s.repo.Get(s.ctx, knight.GetInput{ID: firstID})
	s.Require().NoError(err)
	s.True(s.now.Equal(*got.Knight.DeletedAt))
}

func (s *RepositoryContractSuite) TestMarkDeadNotFound() {
	_, err := s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: missedID, DeletedAt: s.now})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: firstID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestDeadKnightKeepsNickname() {
	s.create(builders.NewKnightBuilder().WithID(firstID).WithNickname("arthur").Build())
	_, err := s.repo.MarkDead(s.ctx, knight.MarkDeadInput{ID: firstID, DeletedAt: s.now})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, knight.CreateInput{
		Knight: builders.NewKnightBuilder().WithID(secondID).WithNickname("arthur").Build(),
	})
	s.True(errors.IsAlreadyExists(err))
}
