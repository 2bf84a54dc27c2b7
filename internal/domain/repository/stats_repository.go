package repository

import (
	"context"
	"time"

	"github.com/sourcedupays/terrain-api/internal/domain/policy"
)

// MemberPerformance nombre de visites remontées par un membre d'équipe.
type MemberPerformance struct {
	Name   string
	Visits int
}

// StatsRepository agrégations de lecture pour les tableaux de bord. Toujours
// calculées à la demande, jamais mises en cache. Les requêtes scopées
// partagent le même prédicat SQL que les listings de visites : dupliquer ce
// filtre entre lecture et agrégat est la source classique de fuite de portée.
type StatsRepository interface {
	// CountVisits compte les visites de la portée ; status vide = tous statuts.
	CountVisits(ctx context.Context, scope policy.Scope, status string) (int, error)

	// StatusDistribution ventile les visites de la portée par statut.
	StatusDistribution(ctx context.Context, scope policy.Scope) (map[string]int, error)

	// TeamPerformance compte les visites par membre de l'équipe du superviseur.
	TeamPerformance(ctx context.Context, supervisorID string) ([]MemberPerformance, error)

	// CountVisitsOnDay compte les visites d'un merchandiser à une date donnée.
	CountVisitsOnDay(ctx context.Context, merchandiserID string, day time.Time) (int, error)

	// OrderedQuantityBetween somme les quantités commandées (détails de type
	// commande) d'un merchandiser sur une période.
	OrderedQuantityBetween(ctx context.Context, merchandiserID string, from, to time.Time) (int, error)

	CountUsers(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	RoleDistribution(ctx context.Context) (map[string]int, error)
}
