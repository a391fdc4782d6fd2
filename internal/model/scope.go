// internal/model/scope.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeType は単語リストのグルーピング種別です
type ScopeType string

const (
	ScopeTypeExam    ScopeType = "exam"
	ScopeTypeGrade   ScopeType = "grade"
	ScopeTypeSubject ScopeType = "subject"
	ScopeTypeGlobal  ScopeType = "global"
)

// GlobalScopeKey はスコープなし（全体）コレクション用の予約キー。
// global スコープは scopes テーブル上の単一行として表現する。
const GlobalScopeKey = "global"

// ScopeDocument はスコープ（試験名・学年・科目、または global）ごとの
// 単語リストの親ドキュメントを表します。
// ScopeKey は入力された表記のまま保存し、検索は大文字小文字を無視して行う。
type ScopeDocument struct {
	ScopeID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"scope_id"`
	ScopeType ScopeType      `gorm:"not null;index:idx_scope_type_key" json:"scope_type"`
	ScopeKey  string         `gorm:"not null;index:idx_scope_type_key" json:"scope_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Words []WordRecord `gorm:"foreignKey:ScopeID;references:ScopeID" json:"-"`
}

func (ScopeDocument) TableName() string {
	return "scopes"
}
