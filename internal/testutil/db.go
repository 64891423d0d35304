// Package testutil builds throwaway SQLite databases for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobboard/internal/config"
	"jobboard/internal/infra"
	"jobboard/internal/models/db_models"
	"jobboard/pkg/utils"
)

// NewDB opens a private in-memory database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.OpenDatabase(config.DatabaseConfig{
		Driver:      "sqlite",
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AutoMigrate: true,
	}, false)
	require.NoError(t, err)
	t.Cleanup(func() { infra.CloseDatabase(db) })
	return db
}

// CreateUser inserts a user whose password is "Secret1!".
func CreateUser(t *testing.T, db *gorm.DB, username string, role db_models.Role) *db_models.User {
	t.Helper()
	hash, err := utils.HashPassword("Secret1!")
	require.NoError(t, err)

	user := &db_models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.edu",
		Username:     username,
		DateOfBirth:  time.Date(1999, 5, 1, 0, 0, 0, 0, time.UTC),
		ImageFile:    db_models.DefaultImageFile,
		PasswordHash: hash,
		Role:         role,
		Status:       db_models.EntitlementRegular,
	}
	require.NoError(t, db.Omit("Jobs", "Posts").Create(user).Error)
	return user
}

// CreateJob inserts an ingested job owned by admin.
func CreateJob(t *testing.T, db *gorm.DB, admin *db_models.User, title, company string) *db_models.Job {
	t.Helper()
	job := &db_models.Job{
		Title:       title,
		Description: title + " role",
		CompanyName: company,
		DatePosted:  "2021-03-01",
		Link:        "https://jobs.example.com/" + title,
		Source:      db_models.SourceMuse,
		AdminID:     admin.ID,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
