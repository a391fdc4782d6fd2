//go:generate mockery --name ScopeWordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_vocab_art/internal/middleware"
	"go_vocab_art/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ScopeWordRepository インターフェース
// スコープ（試験・学年・教科・global）とスコープ配下の単語レコードの永続化を担う。
// 単語の更新は必ず UpdateWordFields の部分更新で行い、レコード全体の上書きはしない。
type ScopeWordRepository interface {
	FindScope(ctx context.Context, db *gorm.DB, scopeType model.ScopeType, scopeKey string) (*model.ScopeDocument, error)
	CreateScope(ctx context.Context, tx *gorm.DB, scope *model.ScopeDocument) error
	FindWord(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, word string) (*model.WordRecord, error)
	CreateWord(ctx context.Context, tx *gorm.DB, record *model.WordRecord) error
	UpdateWordFields(ctx context.Context, tx *gorm.DB, scopeID uuid.UUID, word string, updates map[string]interface{}) error
	CountWords(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, search string) (int64, error)
	ListWords(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, offset, limit int, search string) ([]*model.WordRecord, error)
	DeleteWord(ctx context.Context, tx *gorm.DB, scopeID uuid.UUID, word string) error
}

type gormScopeWordRepository struct{}

func NewGormScopeWordRepository() ScopeWordRepository {
	return &gormScopeWordRepository{}
}

// FindScope はスコープ種別とキーでスコープを検索します。キーの大文字小文字は無視する。
func (r *gormScopeWordRepository) FindScope(ctx context.Context, db *gorm.DB, scopeType model.ScopeType, scopeKey string) (*model.ScopeDocument, error) {
	logger := middleware.GetLogger(ctx)
	var scope model.ScopeDocument
	result := db.WithContext(ctx).
		Where("scope_type = ? AND LOWER(scope_key) = LOWER(?)", scopeType, scopeKey).
		First(&scope)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding scope in DB",
			"error", result.Error,
			"scope_type", string(scopeType),
			"scope_key", scopeKey,
		)
		return nil, fmt.Errorf("gormScopeWordRepository.FindScope: %w", result.Error)
	}
	return &scope, nil
}

func (r *gormScopeWordRepository) CreateScope(ctx context.Context, tx *gorm.DB, scope *model.ScopeDocument) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(scope)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error creating scope in DB",
			"error", result.Error,
			"scope_type", string(scope.ScopeType),
			"scope_key", scope.ScopeKey,
		)
		return fmt.Errorf("gormScopeWordRepository.CreateScope: %w", result.Error)
	}
	return nil
}

// FindWord はスコープ内の単語を検索します。単語の大文字小文字は無視する。
func (r *gormScopeWordRepository) FindWord(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, word string) (*model.WordRecord, error) {
	logger := middleware.GetLogger(ctx)
	var record model.WordRecord
	result := db.WithContext(ctx).
		Where("scope_id = ? AND LOWER(word) = LOWER(?)", scopeID, word).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word in DB",
			"error", result.Error,
			"scope_id", scopeID.String(),
			"word", word,
		)
		return nil, fmt.Errorf("gormScopeWordRepository.FindWord: %w", result.Error)
	}
	return &record, nil
}

func (r *gormScopeWordRepository) CreateWord(ctx context.Context, tx *gorm.DB, record *model.WordRecord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(record)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error creating word record in DB",
			"error", result.Error,
			"scope_id", record.ScopeID.String(),
			"word", record.Word,
		)
		return fmt.Errorf("gormScopeWordRepository.CreateWord: %w", result.Error)
	}
	return nil
}

// UpdateWordFields は対象単語の指定フィールドのみを更新します。
// 同一スコープの他の単語に影響しないことを保証するため、WHERE句で単語まで絞る。
func (r *gormScopeWordRepository) UpdateWordFields(ctx context.Context, tx *gorm.DB, scopeID uuid.UUID, word string, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.WordRecord{}).
		Where("scope_id = ? AND LOWER(word) = LOWER(?)", scopeID, word).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word record in DB",
			"error", result.Error,
			"scope_id", scopeID.String(),
			"word", word,
		)
		return fmt.Errorf("gormScopeWordRepository.UpdateWordFields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormScopeWordRepository) CountWords(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, search string) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.WordRecord{}).Where("scope_id = ?", scopeID)
	if search != "" {
		query = query.Where("word LIKE ?", "%"+search+"%")
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error counting word records in DB",
			"error", result.Error,
			"scope_id", scopeID.String(),
		)
		return 0, fmt.Errorf("gormScopeWordRepository.CountWords: %w", result.Error)
	}
	return count, nil
}

// ListWords は登録順（created_at 昇順）でページ分の単語を返します。
func (r *gormScopeWordRepository) ListWords(ctx context.Context, db *gorm.DB, scopeID uuid.UUID, offset, limit int, search string) ([]*model.WordRecord, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.WordRecord
	query := db.WithContext(ctx).Where("scope_id = ?", scopeID)
	if search != "" {
		query = query.Where("word LIKE ?", "%"+search+"%")
	}
	result := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&records)
	if result.Error != nil {
		logger.Error("Error listing word records in DB",
			"error", result.Error,
			"scope_id", scopeID.String(),
		)
		return nil, fmt.Errorf("gormScopeWordRepository.ListWords: %w", result.Error)
	}
	return records, nil
}

func (r *gormScopeWordRepository) DeleteWord(ctx context.Context, tx *gorm.DB, scopeID uuid.UUID, word string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("scope_id = ? AND LOWER(word) = LOWER(?)", scopeID, word).
		Delete(&model.WordRecord{})
	if result.Error != nil {
		logger.Error("Error deleting word record in DB",
			"error", result.Error,
			"scope_id", scopeID.String(),
			"word", word,
		)
		return fmt.Errorf("gormScopeWordRepository.DeleteWord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
