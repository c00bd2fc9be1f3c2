package database

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/config"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin operator from configuration.
// Nothing happens when the admin credentials are not configured or the
// account already exists.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" || cfg.Matricula == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("email = ? OR matricula = ?", cfg.Email, cfg.Matricula).First(&existing).Error
	if err == nil {
		log.Info().Str("email", cfg.Email).Msg("admin operator already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin operator: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Administrador"
	}

	admin := entity.User{
		Nome:      name,
		Matricula: cfg.Matricula,
		Email:     cfg.Email,
		Password:  string(hashed),
		Role:      enum.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin operator: %w", err)
	}

	log.Info().Str("email", cfg.Email).Str("matricula", cfg.Matricula).Msg("admin operator created")
	return nil
}
