// Package optional distingue en los cuerpos JSON un campo ausente de uno
// enviado como null o con valor vacío.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Value registra si la clave estuvo presente en el JSON y si vino como null.
// El zero value equivale a "campo no enviado".
type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

// Of construye un Value presente con v.
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

// Null construye un Value presente con null explícito.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

func (v *Value[T]) UnmarshalJSON(b []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		v.Null = true
		v.V = zero
		return nil
	}
	v.Null = false
	return json.Unmarshal(b, &v.V)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Set || v.Null {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// Present es true si el campo vino con un valor no null.
func (v Value[T]) Present() bool {
	return v.Set && !v.Null
}

// Ptr devuelve nil si el campo está ausente o es null.
func (v Value[T]) Ptr() *T {
	if !v.Present() {
		return nil
	}
	out := v.V
	return &out
}

// Int es un entero que acepta tanto 12 como "12" en JSON. Los formularios del
// front envían los ids como strings.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "value " + s, Type: reflect.TypeOf(Int(0))}
	}
	*n = Int(v)
	return nil
}

func (n Int) Int64() int64 { return int64(n) }

// Text es un string que también acepta números JSON (38.5 -> "38.5"),
// tal como los manda el formulario de vacunas para temperatura y dosis.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*t = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = Text(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return &json.UnmarshalTypeError{Value: s, Type: reflect.TypeOf(Text(""))}
	}
	*t = Text(num.String())
	return nil
}
