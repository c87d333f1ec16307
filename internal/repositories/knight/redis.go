package knight

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	redisclient "github.com/KirkDiggler/knight-api/internal/redis"
)

// All keys share the {knight} hash tag so they land in one cluster slot and
// can be watched together.
const (
	knightKeyPrefix  = "{knight}:"
	knightIndexKey   = "{knight}:index"
	nicknameIndexKey = "{knight}:nickname"

	defaultMaxTxRetries = 5
)

func knightKey(id string) string {
	return knightKeyPrefix + id
}

type redisRepository struct {
	client       redisclient.Client
	maxTxRetries int
}

// RedisConfig contains configuration for the Redis knight repository.
type RedisConfig struct {
	Client redisclient.Client
	// MaxTxRetries bounds optimistic transaction retries, defaults to 5
	MaxTxRetries int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.MaxTxRetries < 0 {
		return errors.InvalidArgument("max tx retries cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed knight repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	retries := cfg.MaxTxRetries
	if retries == 0 {
		retries = defaultMaxTxRetries
	}

	return &redisRepository{
		client:       cfg.Client,
		maxTxRetries: retries,
	}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, knightIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read knight index")
	}
	slices.Sort(ids)

	slog.DebugContext(ctx, "listing knights from index",
		"count", len(ids),
		"only_dead", input.OnlyDead)

	knights := make([]*entities.Knight, 0, len(ids))
	if len(ids) == 0 {
		return &ListOutput{Knights: knights}, nil
	}

	cmds := make([]*redis.StringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.Get(ctx, knightKey(id))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Wrap(err, "failed to get knights")
	}

	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				slog.WarnContext(ctx, "indexed knight is missing its document",
					"knight_id", ids[i])
				continue
			}
			return nil, errors.Wrapf(err, "failed to get knight %s", ids[i])
		}

		knight, err := decodeKnight(data)
		if err != nil {
			return nil, err
		}
		if input.OnlyDead && !knight.IsDead() {
			continue
		}
		knights = append(knights, knight)
	}

	return &ListOutput{Knights: knights}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errKnightIDEmpty)
	}

	knight, err := r.load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Knight: knight}, nil
}

func (r *redisRepository) GetByNickname(
	ctx context.Context,
	input GetByNicknameInput,
) (*GetByNicknameOutput, error) {
	if input.Nickname == "" {
		return nil, errors.InvalidArgument(errNicknameEmpty)
	}

	id, err := r.client.HGet(ctx, nicknameIndexKey, input.Nickname).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("knight with nickname %s not found", input.Nickname)
		}
		return nil, errors.Wrap(err, "failed to read nickname index")
	}

	knight, err := r.load(ctx, r.client, id)
	if err != nil {
		return nil, err
	}

	return &GetByNicknameOutput{Knight: knight}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}
	knight := input.Knight

	data, err := json.Marshal(knight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal knight")
	}

	// The nickname index is the uniqueness guard; claiming it first means two
	// concurrent creates cannot both succeed.
	claimed, err := r.client.HSetNX(ctx, nicknameIndexKey, knight.Nickname, knight.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim nickname")
	}
	if !claimed {
		return nil, errNicknameTaken(knight.Nickname)
	}

	pipe := r.client.TxPipeline()
	created := pipe.SetNX(ctx, knightKey(knight.ID), data, 0)
	pipe.SAdd(ctx, knightIndexKey, knight.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.releaseNickname(ctx, knight.Nickname)
		return nil, errors.Wrap(err, "failed to create knight")
	}

	if !created.Val() {
		r.releaseNickname(ctx, knight.Nickname)
		return nil, errors.AlreadyExistsf("knight with ID %s already exists", knight.ID)
	}

	return &CreateOutput{Knight: knight.Clone()}, nil
}

func (r *redisRepository) UpdateNickname(
	ctx context.Context,
	input UpdateNicknameInput,
) (*UpdateNicknameOutput, error) {
	if err := validateUpdateNickname(input); err != nil {
		return nil, err
	}

	key := knightKey(input.ID)
	var updated *entities.Knight

	txf := func(tx *redis.Tx) error {
		knight, err := r.load(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		if knight.Nickname == input.Nickname {
			updated = knight
			return nil
		}

		holder, err := tx.HGet(ctx, nicknameIndexKey, input.Nickname).Result()
		switch {
		case err == nil && holder != input.ID:
			return errNicknameTaken(input.Nickname)
		case err != nil && !errors.Is(err, redis.Nil):
			return errors.Wrap(err, "failed to read nickname index")
		}

		previous := knight.Nickname
		knight.Nickname = input.Nickname
		data, err := json.Marshal(knight)
		if err != nil {
			return errors.Wrap(err, "failed to marshal knight")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.HDel(ctx, nicknameIndexKey, previous)
			pipe.HSet(ctx, nicknameIndexKey, input.Nickname, input.ID)
			return nil
		})
		if err != nil {
			return err
		}

		updated = knight
		return nil
	}

	if err := r.watch(ctx, txf, key, nicknameIndexKey); err != nil {
		return nil, errors.Wrap(err, "failed to update knight nickname")
	}

	return &UpdateNicknameOutput{Knight: updated}, nil
}

func (r *redisRepository) MarkDead(ctx context.Context, input MarkDeadInput) (*MarkDeadOutput, error) {
	if err := validateMarkDead(input); err != nil {
		return nil, err
	}

	key := knightKey(input.ID)
	var updated *entities.Knight

	txf := func(tx *redis.Tx) error {
		knight, err := r.load(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if knight.IsDead() {
			return errAlreadyDead(input.ID)
		}

		deletedAt := input.DeletedAt
		knight.IsDeleted = true
		knight.DeletedAt = &deletedAt

		data, err := json.Marshal(knight)
		if err != nil {
			return errors.Wrap(err, "failed to marshal knight")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = knight
		return nil
	}

	if err := r.watch(ctx, txf, key); err != nil {
		return nil, errors.Wrap(err, "failed to mark knight dead")
	}

	return &MarkDeadOutput{Knight: updated}, nil
}

// watch runs txf under WATCH, retrying when a watched key changed underneath.
func (r *redisRepository) watch(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	for attempt := 0; attempt < r.maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		slog.DebugContext(ctx, "knight transaction conflicted, retrying",
			"attempt", attempt+1,
			"keys", keys)
	}
	return errors.Unavailable("knight store is too busy, try again")
}

func (r *redisRepository) releaseNickname(ctx context.Context, nickname string) {
	if err := r.client.HDel(ctx, nicknameIndexKey, nickname).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to release nickname",
			"nickname", nickname,
			"error", err.Error())
	}
}

func (r *redisRepository) load(ctx context.Context, c redis.Cmdable, id string) (*entities.Knight, error) {
	data, err := c.Get(ctx, knightKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get knight %s", id)
	}
	return decodeKnight(data)
}

func decodeKnight(data []byte) (*entities.Knight, error) {
	var knight entities.Knight
	if err := json.Unmarshal(data, &knight); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal knight")
	}
	return &knight, nil
}
