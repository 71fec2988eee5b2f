package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpdateProfile writes the profile fields present in fields for targetID.
// Only the owner may do this. Each sent profile field must be a string;
// absent fields keep their values and other keys are ignored.
//
// The update only matches a row where a sent field differs, so a request
// that changes nothing fails with ErrUpdateFailed just like an update of a
// missing user.
func (s *UserService) UpdateProfile(ctx context.Context, sessionUserID, targetID uuid.UUID, fields map[string]interface{}) error {
	if sessionUserID != targetID {
		return ErrForbidden
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		if _, ok := models.ProfileColumns[key]; ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ErrUpdateFailed
	}
	sort.Strings(keys)

	invalid := map[string]string{}
	updates := make(map[string]interface{}, len(keys))
	changed := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		value, ok := fields[key].(string)
		if !ok {
			invalid[key] = "Invalid value"
			continue
		}
		column := models.ProfileColumns[key]
		updates[column] = value
		changed = append(changed, column+" <> ?")
		args = append(args, value)
	}
	if len(invalid) > 0 {
		return NewValidationError(invalid)
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", targetID).
		Where("("+strings.Join(changed, " OR ")+")", args...).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return ErrUpdateFailed
	}
	return nil
}
