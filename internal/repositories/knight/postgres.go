package knight

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
)

// knightRecord is the row stored in the knights table. Weapons and
// attributes stay JSON documents.
type knightRecord struct {
	ID           string         `gorm:"primaryKey;type:uuid"`
	Name         string         `gorm:"size:64;not null"`
	Nickname     string         `gorm:"size:32;not null;uniqueIndex:idx_knights_nickname"`
	Birthday     time.Time      `gorm:"type:date;not null"`
	Weapons      datatypes.JSON `gorm:"type:jsonb;not null"`
	Attributes   datatypes.JSON `gorm:"type:jsonb;not null"`
	KeyAttribute string         `gorm:"size:16;not null"`
	IsDeleted    bool           `gorm:"not null;default:false;index"`
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (knightRecord) TableName() string {
	return "knights"
}

func toRecord(knight *entities.Knight) (*knightRecord, error) {
	weapons, err := json.Marshal(knight.Weapons)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal weapons")
	}
	attributes, err := json.Marshal(knight.Attributes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal attributes")
	}

	return &knightRecord{
		ID:           knight.ID,
		Name:         knight.Name,
		Nickname:     knight.Nickname,
		Birthday:     knight.Birthday,
		Weapons:      datatypes.JSON(weapons),
		Attributes:   datatypes.JSON(attributes),
		KeyAttribute: string(knight.KeyAttribute),
		IsDeleted:    knight.IsDeleted,
		DeletedAt:    knight.DeletedAt,
	}, nil
}

func (rec *knightRecord) toEntity() (*entities.Knight, error) {
	knight := &entities.Knight{
		ID:           rec.ID,
		Name:         rec.Name,
		Nickname:     rec.Nickname,
		Birthday:     rec.Birthday.UTC(),
		KeyAttribute: entities.AttributeName(rec.KeyAttribute),
		IsDeleted:    rec.IsDeleted,
	}
	if rec.DeletedAt != nil {
		deletedAt := rec.DeletedAt.UTC()
		knight.DeletedAt = &deletedAt
	}
	if err := json.Unmarshal(rec.Weapons, &knight.Weapons); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal weapons")
	}
	if err := json.Unmarshal(rec.Attributes, &knight.Attributes); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal attributes")
	}
	return knight, nil
}

// OpenPostgres connects to databaseURL and migrates the knights table
func OpenPostgres(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.InvalidArgument("database URL is required")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to postgres")
	}

	if err := db.AutoMigrate(&knightRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate knights table")
	}

	return db, nil
}

type postgresRepository struct {
	db *gorm.DB
}

// PostgresConfig contains configuration for the Postgres knight repository.
type PostgresConfig struct {
	DB *gorm.DB
}

// Validate validates the PostgresConfig.
func (cfg *PostgresConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// NewPostgres creates a new Postgres-backed knight repository
func NewPostgres(cfg *PostgresConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if input.OnlyDead {
		query = query.Where("is_deleted = ?", true)
	}

	var records []knightRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list knights")
	}

	knights := make([]*entities.Knight, 0, len(records))
	for i := range records {
		knight, err := records[i].toEntity()
		if err != nil {
			return nil, err
		}
		knights = append(knights, knight)
	}

	return &ListOutput{Knights: knights}, nil
}

func (r *postgresRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errKnightIDEmpty)
	}

	knight, err := r.find(ctx, r.db, "id = ?", input.ID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errNotFound(input.ID)
		}
		return nil, err
	}

	return &GetOutput{Knight: knight}, nil
}

func (r *postgresRepository) GetByNickname(
	ctx context.Context,
	input GetByNicknameInput,
) (*GetByNicknameOutput, error) {
	if input.Nickname == "" {
		return nil, errors.InvalidArgument(errNicknameEmpty)
	}

	knight, err := r.find(ctx, r.db, "nickname = ?", input.Nickname)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("knight with nickname %s not found", input.Nickname)
		}
		return nil, err
	}

	return &GetByNicknameOutput{Knight: knight}, nil
}

func (r *postgresRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	rec, err := toRecord(input.Knight)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, r.duplicateError(ctx, input.Knight)
		}
		return nil, errors.Wrap(err, "failed to create knight")
	}

	return &CreateOutput{Knight: input.Knight.Clone()}, nil
}

func (r *postgresRepository) UpdateNickname(
	ctx context.Context,
	input UpdateNicknameInput,
) (*UpdateNicknameOutput, error) {
	if err := validateUpdateNickname(input); err != nil {
		return nil, err
	}

	var updated *entities.Knight
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		holder, err := r.find(ctx, tx, "nickname = ?", input.Nickname)
		switch {
		case err == nil && holder.ID != input.ID:
			return errNicknameTaken(input.Nickname)
		case err != nil && !errors.IsNotFound(err):
			return err
		}

		result := tx.Model(&knightRecord{}).
			Where("id = ?", input.ID).
			Update("nickname", input.Nickname)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return errNicknameTaken(input.Nickname)
			}
			return errors.Wrap(result.Error, "failed to update nickname")
		}
		if result.RowsAffected == 0 {
			return errNotFound(input.ID)
		}

		updated, err = r.find(ctx, tx, "id = ?", input.ID)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update knight nickname")
	}

	return &UpdateNicknameOutput{Knight: updated}, nil
}

func (r *postgresRepository) MarkDead(ctx context.Context, input MarkDeadInput) (*MarkDeadOutput, error) {
	if err := validateMarkDead(input); err != nil {
		return nil, err
	}

	deletedAt := input.DeletedAt
	result := r.db.WithContext(ctx).Model(&knightRecord{}).
		Where("id = ? AND is_deleted = ?", input.ID, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": &deletedAt,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to mark knight dead")
	}

	knight, err := r.find(ctx, r.db, "id = ?", input.ID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errNotFound(input.ID)
		}
		return nil, err
	}

	// Nothing changed, so the knight was already dead
	if result.RowsAffected == 0 {
		return nil, errAlreadyDead(input.ID)
	}

	return &MarkDeadOutput{Knight: knight}, nil
}

func (r *postgresRepository) find(ctx context.Context, db *gorm.DB, query string, args ...any) (*entities.Knight, error) {
	var rec knightRecord
	if err := db.WithContext(ctx).Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("knight not found")
		}
		return nil, errors.Wrap(err, "failed to get knight")
	}
	return rec.toEntity()
}

func (r *postgresRepository) duplicateError(ctx context.Context, knight *entities.Knight) error {
	if _, err := r.find(ctx, r.db, "nickname = ?", knight.Nickname); err == nil {
		return errNicknameTaken(knight.Nickname)
	}
	return errors.AlreadyExistsf("knight with ID %s already exists", knight.ID)
}
