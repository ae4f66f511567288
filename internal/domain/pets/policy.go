package pets

import (
	"fmt"
	"strings"
)

// DeleteMissing decide qué responde Delete cuando el id no existe.
type DeleteMissing string

const (
	DeleteMissingNotFound DeleteMissing = "not_found"
	DeleteMissingOK       DeleteMissing = "ok"
)

// Orphans decide si una mascota cuyo dueño ya no existe sigue siendo visible.
type Orphans string

const (
	OrphansHidden  Orphans = "hidden"
	OrphansVisible Orphans = "visible"
)

type Policy struct {
	DeleteMissing DeleteMissing
	Orphans       Orphans
}

func DefaultPolicy() Policy {
	return Policy{
		DeleteMissing: DeleteMissingNotFound,
		Orphans:       OrphansHidden,
	}
}

func ParsePolicy(deleteMissing, orphans string) (Policy, error) {
	p := DefaultPolicy()

	switch v := DeleteMissing(strings.ToLower(strings.TrimSpace(deleteMissing))); v {
	case "":
	case DeleteMissingNotFound, DeleteMissingOK:
		p.DeleteMissing = v
	default:
		return Policy{}, fmt.Errorf("unknown pet delete policy %q", deleteMissing)
	}

	switch v := Orphans(strings.ToLower(strings.TrimSpace(orphans))); v {
	case "":
	case OrphansHidden, OrphansVisible:
		p.Orphans = v
	default:
		return Policy{}, fmt.Errorf("unknown orphan pets policy %q", orphans)
	}

	return p, nil
}
