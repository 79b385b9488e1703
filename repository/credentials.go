package repository

import (
	"errors"
	"time"

	"staffledger/models"
	"staffledger/types"

	"gorm.io/gorm"
)

// CredentialRepo persists credentials. Lookups are by normalized username;
// callers normalize before reaching this layer.
type CredentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

func (r *CredentialRepo) FindByUsername(username string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.Where("username = ?", username).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.StorageErr(err)
	}
	return &cred, nil
}

func (r *CredentialRepo) Save(cred *models.Credential) error {
	if err := r.db.Create(cred).Error; err != nil {
		return types.StorageErr(err)
	}
	return nil
}

func (r *CredentialRepo) UpdatePasswordHash(username, hash string) error {
	res := r.db.Model(&models.Credential{}).Where("username = ?", username).
		Update("password_hash", hash)
	if res.Error != nil {
		return types.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *CredentialRepo) UpdateLastLogin(username string, ts time.Time) error {
	res := r.db.Model(&models.Credential{}).Where("username = ?", username).
		Update("last_login_at", ts)
	if res.Error != nil {
		return types.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// HasAdmin reports whether any administrator credential exists; used by the
// startup bootstrap.
func (r *CredentialRepo) HasAdmin() (bool, error) {
	var count int64
	err := r.db.Model(&models.Credential{}).
		Where("role = ?", models.RoleAdministrator).Count(&count).Error
	if err != nil {
		return false, types.StorageErr(err)
	}
	return count > 0, nil
}

func (r *CredentialRepo) Delete(username string) error {
	res := r.db.Where("username = ?", username).Delete(&models.Credential{})
	if res.Error != nil {
		return types.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}
