package entities

// Status es el flag de borrado lógico que llevan todas las entidades.
// Nunca se elimina una fila: se marca INACTIVE y todas las lecturas
// filtran por ACTIVE.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Label devuelve la representación externa del status ("Active"/"Inactive").
func (s Status) Label() string {
	if s == StatusActive {
		return "Active"
	}
	return "Inactive"
}
