package vaccinations

import (
	"fmt"
	"strings"
)

// MergeMode define cómo update combina el cuerpo recibido con la fila guardada.
type MergeMode string

const (
	// MergeReplace: un campo ausente conserva el valor guardado; un campo presente
	// lo pisa, incluso con "" o null (que dejan la columna en NULL).
	MergeReplace MergeMode = "replace"
	// MergeCoalesce: cualquier valor vacío ("" / 0 / null / ausente) conserva el valor
	// guardado. Es el comportamiento histórico del front.
	MergeCoalesce MergeMode = "coalesce"
)

func ParseMergeMode(raw string) (MergeMode, error) {
	switch MergeMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MergeReplace:
		return MergeReplace, nil
	case MergeCoalesce:
		return MergeCoalesce, nil
	default:
		return "", fmt.Errorf("unknown update mode %q (want replace or coalesce)", raw)
	}
}
