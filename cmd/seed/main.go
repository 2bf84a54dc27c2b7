// seed crée le compte administrateur initial si aucun administrateur n'existe
// encore. Les identifiants viennent de SEED_ADMIN_NAME, SEED_ADMIN_EMAIL et
// SEED_ADMIN_PASSWORD.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/infrastructure/postgres"
	"github.com/sourcedupays/terrain-api/pkg/config"
	"github.com/sourcedupays/terrain-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL et SEED_ADMIN_PASSWORD sont requis")
	}
	if len(cfg.Seed.AdminPassword) < 8 {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD: 8 caractères minimum")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	roles, err := statsRepo.RoleDistribution(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("lire la distribution des rôles")
	}
	if roles[entity.RoleAdministrateur] > 0 {
		log.Info().Msg("un administrateur existe déjà, rien à faire")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hacher le mot de passe")
	}

	admin := &entity.User{
		ID:           uuid.New().String(),
		Name:         cfg.Seed.AdminName,
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleAdministrateur,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("créer l'administrateur")
	}

	log.Info().Str("email", admin.Email).Msg("administrateur initial créé")
}
