package pets

import "time"

// RetentionWindow: un registro deja de ser visible un año (365 días) después de creado.
const RetentionWindow = 365 * 24 * time.Hour

func ExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(RetentionWindow)
}

// IsVisible es true mientras now < ExpiresAt.
func IsVisible(r PetRecord, now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// FilterValid devuelve los registros no expirados, en el mismo orden.
// Es pura: no toca el almacenamiento (el purge lo hace el Service).
func FilterValid(records []PetRecord, now time.Time) []PetRecord {
	out := make([]PetRecord, 0, len(records))
	for _, r := range records {
		if IsVisible(r, now) {
			out = append(out, r)
		}
	}
	return out
}
