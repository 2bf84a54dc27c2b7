package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics compteurs Prometheus de l'API terrain.
type Metrics struct {
	// Registry possède les métriques ; exposé pour le endpoint /metrics.
	Registry *prometheus.Registry

	visitsCreated  prometheus.Counter
	visitDecisions *prometheus.CounterVec
	loginAttempts  *prometheus.CounterVec
}

// NewMetrics crée un registre dédié et y enregistre les métriques. Le registre
// privé évite les paniques "duplicate collector" quand NewMetrics est appelé
// plusieurs fois (tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		visitsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "terrain_visits_created_total",
			Help: "Nombre total de visites soumises.",
		}),
		visitDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terrain_visit_decisions_total",
				Help: "Nombre total de décisions de validation par verdict.",
			},
			[]string{"outcome"},
		),
		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terrain_login_attempts_total",
				Help: "Tentatives de connexion par résultat.",
			},
			[]string{"result"},
		),
	}
}

// IncrVisitCreated incrémente le compteur de visites soumises.
func (m *Metrics) IncrVisitCreated() {
	m.visitsCreated.Inc()
}

// IncrVisitDecision incrémente le compteur de décisions ("valide"/"rejete").
func (m *Metrics) IncrVisitDecision(outcome string) {
	m.visitDecisions.WithLabelValues(outcome).Inc()
}

// IncrLogin incrémente le compteur de connexions ("success"/"failure").
func (m *Metrics) IncrLogin(result string) {
	m.loginAttempts.WithLabelValues(result).Inc()
}
