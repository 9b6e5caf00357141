package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(name, email, passwordHash string) (*UserRecord, error) {
	u := &UserRecord{Name: strings.TrimSpace(name), Email: NormalizeEmail(email), PasswordHash: passwordHash}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&UserRecord{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) UserByEmail(email string) (*UserRecord, error) {
	return s.findUser("email = ?", NormalizeEmail(email))
}

func (s *Store) UserByID(id string) (*UserRecord, error) {
	return s.findUser("id = ?", id)
}

func (s *Store) findUser(query string, arg interface{}) (*UserRecord, error) {
	var u UserRecord
	err := s.db.Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
