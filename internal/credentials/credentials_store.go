package credentials

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrMismatch is deliberately generic: callers translate it into an
	// invalid-credentials signal without revealing which field was wrong.
	ErrMismatch = errors.New("credential mismatch")

	ErrNotFound = errors.New("credential not found")
)

//go:generate mockgen -source=credentials_store.go -destination=mock/credentials_store_mock.go -package=mock
type Store interface {
	WithTx(tx *sql.Tx) Store
	Create(ctx context.Context, userID, email, plainPassword string) error
	Verify(ctx context.Context, userID, plainPassword string) error
	SetPassword(ctx context.Context, userID, newPassword string) error
	Delete(ctx context.Context, userID string) error
}

type store struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) WithTx(tx *sql.Tx) Store {
	return &store{db: s.db, tx: tx}
}

func (s *store) Create(ctx context.Context, userID, email, plainPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if s.tx != nil {
		_, err = s.tx.ExecContext(ctx,
			`INSERT INTO credentials (user_id, email, password_hash) VALUES ($1, $2, $3)`,
			userID, email, string(hash),
		)
		return err
	}

	return s.db.WithContext(ctx).Create(&Credential{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
	}).Error
}

func (s *store) Verify(ctx context.Context, userID, plainPassword string) error {
	var c Credential
	err := s.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMismatch
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrMismatch
	}
	return nil
}

func (s *store) SetPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&Credential{}).
		Where("user_id = ?", userID).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *store) Delete(ctx context.Context, userID string) error {
	if s.tx != nil {
		_, err := s.tx.ExecContext(ctx, `DELETE FROM credentials WHERE user_id = $1`, userID)
		return err
	}
	return s.db.WithContext(ctx).Delete(&Credential{}, "user_id = ?", userID).Error
}
