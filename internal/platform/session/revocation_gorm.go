package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRevocationModel is the GORM model for the token_revocations table.
type TokenRevocationModel struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	RevokedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TokenRevocationModel) TableName() string {
	return "token_revocations"
}

// revocationGorm はRedisが使えない環境向けのデータベース実装です。
type revocationGorm struct {
	db *gorm.DB
}

var _ RevocationStore = (*revocationGorm)(nil)

// NewRevocationGorm creates a new instance of revocationGorm.
func NewRevocationGorm(db *gorm.DB) *revocationGorm {
	return &revocationGorm{db: db}
}

// Revoke upserts the revocation instant for the user.
func (r *revocationGorm) Revoke(ctx context.Context, userID string, at time.Time) error {
	m := TokenRevocationModel{UserID: userID, RevokedAt: at.UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"revoked_at"}),
		}).
		Create(&m).Error
}

// RevokedAt returns the stored revocation instant, if any.
func (r *revocationGorm) RevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	var m TokenRevocationModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return m.RevokedAt, true, nil
}
