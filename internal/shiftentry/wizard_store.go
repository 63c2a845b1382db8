package shiftentry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	wizardKeyPrefix = "wizard:"
	wizardTTL       = 30 * time.Minute
)

// WizardStore keeps each employee's in-progress submission step in redis so
// the two-phase flow survives a page reload.
type WizardStore struct {
	rdb *redis.Client
}

func NewWizardStore(rdb *redis.Client) *WizardStore {
	return &WizardStore{rdb: rdb}
}

func wizardKey(employeeID string) string {
	return wizardKeyPrefix + employeeID
}

// Get returns the stored wizard, or a fresh one at date selection.
func (s *WizardStore) Get(ctx context.Context, employeeID string) (Wizard, error) {
	raw, err := s.rdb.Get(ctx, wizardKey(employeeID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewWizard(), nil
		}
		return Wizard{}, err
	}

	var w Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return NewWizard(), nil
	}
	return w, nil
}

func (s *WizardStore) Save(ctx context.Context, employeeID string, w Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, wizardKey(employeeID), raw, wizardTTL).Err()
}

func (s *WizardStore) Clear(ctx context.Context, employeeID string) error {
	return s.rdb.Del(ctx, wizardKey(employeeID)).Err()
}
