package pets

import "time"

// PetRecord es la única entidad persistida: un memorial de mascota.
// Es inmutable después de creada; no existe operación de update.
type PetRecord struct {
	ID   string
	Name string
	Type string // etiqueta libre: "Cachorro", "Gato", ...

	BirthDate   *time.Time // solo fecha, opcional
	Description string

	// Images son referencias a imagen (data URLs o URLs externas), 1..5.
	Images []string

	CreatedAt time.Time
	ExpiresAt time.Time // siempre CreatedAt + RetentionWindow

	// UserID es la etiqueta de dueño del Identity Provider. No es identidad verificada.
	UserID string
}

// Draft es lo que manda el caller al crear. ExpiresAt y UserID los completa el service.
type Draft struct {
	ID          string // opcional; si viene vacío se genera un uuid
	Name        string
	Type        string
	BirthDate   *time.Time
	Description string
	Images      []string
	CreatedAt   time.Time // opcional; zero = ahora
}

func (r PetRecord) clone() PetRecord {
	out := r
	if r.Images != nil {
		out.Images = append([]string(nil), r.Images...)
	}
	if r.BirthDate != nil {
		bd := *r.BirthDate
		out.BirthDate = &bd
	}
	return out
}
