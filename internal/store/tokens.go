package store

import (
	"time"

	"gorm.io/gorm/clause"
)

// RevokeToken marks a token id as logged out. Revoking twice is fine.
func (s *Store) RevokeToken(id string, expiresAt time.Time) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&RevokedToken{ID: id, ExpiresAt: expiresAt}).Error
}

func (s *Store) IsRevoked(id string) (bool, error) {
	var n int64
	err := s.db.Model(&RevokedToken{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// PruneRevoked drops revocations whose tokens have expired.
func (s *Store) PruneRevoked(now time.Time) (int64, error) {
	res := s.db.Where("expires_at < ?", now).Delete(&RevokedToken{})
	return res.RowsAffected, res.Error
}
