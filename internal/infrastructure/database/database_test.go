package database

import (
	"testing"

	"github.com/sangkips/caixa-api/internal/config"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestSQLiteMigrateAndSeed(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	admin := &config.AdminConfig{Matricula: "0001", Email: "admin@caixa.local", Password: "segredo123"}
	require.NoError(t, SeedAdmin(db, admin))
	// second run is a no-op
	require.NoError(t, SeedAdmin(db, admin))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Administrador", users[0].Nome)
	assert.Equal(t, enum.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("segredo123")))
}

func TestSeedAdmin_NotConfigured(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedAdmin(db, &config.AdminConfig{}))

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
