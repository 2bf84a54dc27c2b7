package entity

import "time"

// ActivityLog entrée du journal d'activité : qui a fait quoi, quand.
// Append-only ; jamais modifiée ni supprimée. L'écriture fait partie de la
// même transaction que l'opération journalisée.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Timestamp time.Time
}
