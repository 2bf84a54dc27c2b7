package dto

import "github.com/shopspring/decimal"

// AdminDashboard totaux système + distribution des rôles. Vue administrateur,
// non scopée.
type AdminDashboard struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalVisits       int            `json:"totalVisits"`
	TotalProducts     int            `json:"totalProducts"`
	RolesDistribution map[string]int `json:"rolesDistribution"`
}

// TeamMemberPerformance visites remontées par un membre de l'équipe.
type TeamMemberPerformance struct {
	Name   string `json:"nom"`
	Visits int    `json:"visites"`
}

// SupervisorDashboard compteurs de l'équipe du superviseur, strictement
// scopés sur ses merchandisers.
type SupervisorDashboard struct {
	PendingVisits      int                     `json:"visitesEnAttente"`
	StatusDistribution map[string]int          `json:"statutsData"`
	TeamPerformance    []TeamMemberPerformance `json:"performanceEquipe"`
}

// MerchandiserDashboard activité du jour et estimation du chiffre d'affaires
// mensuel du merchandiser connecté.
type MerchandiserDashboard struct {
	VisitsToday    int                    `json:"visitesAujourdhui"`
	DailyTarget    int                    `json:"objectifVisitesJour"`
	MonthlyRevenue decimal.Decimal        `json:"caDuMois"`
	MonthlyTarget  decimal.Decimal        `json:"objectifCaMois"`
	LastVisits     []VisitSummaryResponse `json:"dernieresVisites"`
}
