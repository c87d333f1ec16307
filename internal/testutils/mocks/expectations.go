// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	knightrepo "github.com/KirkDiggler/knight-api/internal/repositories/knight"
	knightrepomock "github.com/KirkDiggler/knight-api/internal/repositories/knight/mock"
)

// ExpectKnightGet sets up a mock expectation for loading a knight by ID
func ExpectKnightGet(
	ctx context.Context, mockRepo *knightrepomock.MockRepository,
	knightID string, knight *entities.Knight,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, knightrepo.GetInput{ID: knightID}).
		Return(&knightrepo.GetOutput{Knight: knight}, nil)
}

// ExpectKnightMissing sets up a Get expectation that reports NotFound
func ExpectKnightMissing(ctx context.Context, mockRepo *knightrepomock.MockRepository, knightID string) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, knightrepo.GetInput{ID: knightID}).
		Return(nil, errors.NotFoundf("knight with ID %s not found", knightID).WithMeta("knight_id", knightID))
}

// ExpectNicknameFree sets up a nickname lookup that finds nobody
func ExpectNicknameFree(ctx context.Context, mockRepo *knightrepomock.MockRepository, nickname string) *gomock.Call {
	return mockRepo.EXPECT().
		GetByNickname(ctx, knightrepo.GetByNicknameInput{Nickname: nickname}).
		Return(nil, errors.NotFoundf("knight with nickname %s not found", nickname))
}

// ExpectNicknameHeld sets up a nickname lookup that finds holder
func ExpectNicknameHeld(
	ctx context.Context, mockRepo *knightrepomock.MockRepository, holder *entities.Knight,
) *gomock.Call {
	return mockRepo.EXPECT().
		GetByNickname(ctx, knightrepo.GetByNicknameInput{Nickname: holder.Nickname}).
		Return(&knightrepo.GetByNicknameOutput{Knight: holder}, nil)
}

// ExpectKnightCreate echoes the created knight back like a store would
func ExpectKnightCreate(ctx context.Context, mockRepo *knightrepomock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input knightrepo.CreateInput) (*knightrepo.CreateOutput, error) {
			return &knightrepo.CreateOutput{Knight: input.Knight.Clone()}, nil
		})
}

// ExpectKnightMarkDead marks a copy of knight dead at deletedAt
func ExpectKnightMarkDead(
	ctx context.Context, mockRepo *knightrepomock.MockRepository,
	knight *entities.Knight, deletedAt time.Time,
) *gomock.Call {
	dead := knight.Clone()
	dead.IsDeleted = true
	dead.DeletedAt = &deletedAt

	return mockRepo.EXPECT().
		MarkDead(ctx, knightrepo.MarkDeadInput{ID: knight.ID, DeletedAt: deletedAt}).
		Return(&knightrepo.MarkDeadOutput{Knight: dead}, nil)
}
