package signature

import (
	"fmt"
	"reflect"
	"strings"
)

// ObjectPath is a D-Bus object path, signature code 'o'.
type ObjectPath string

// Sig is a D-Bus signature value, signature code 'g'.
type Sig string

// Signer lets a record type report its own wire signature instead of the
// reflection-derived one.
type Signer interface {
	SignatureDBus() string
}

var (
	signerType     = reflect.TypeOf((*Signer)(nil)).Elem()
	objectPathType = reflect.TypeOf(ObjectPath(""))
	sigType        = reflect.TypeOf(Sig(""))
)

// TypeError reports a Go type that has no D-Bus representation.
type TypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot derive D-Bus signature for %s: %s", e.Type, e.Reason)
}

// Of derives the D-Bus type signature of v.
//
// The mapping follows the wire protocol: uint8 'y', bool 'b', int16 'n',
// uint16 'q', int32 'i', uint32 'u', int64 'x', uint64 't', float64 'd',
// string 's', ObjectPath 'o', Sig 'g', slices and arrays 'a', maps 'a{..}',
// structs '(..)', and interface values 'v'. Pointer types map to their
// element type. If v implements Signer, its own answer wins.
func Of(v any) (string, error) {
	if s, ok := v.(Signer); ok {
		return s.SignatureDBus(), nil
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return "", &TypeError{Type: nil, Reason: "untyped nil"}
	}
	return OfType(t)
}

// OfType derives the D-Bus type signature of t.
func OfType(t reflect.Type) (string, error) {
	var sb strings.Builder
	if err := writeType(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeType(sb *strings.Builder, t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Implements(signerType) {
		v := reflect.Zero(t).Interface().(Signer)
		sb.WriteString(v.SignatureDBus())
		return nil
	}

	switch t {
	case objectPathType:
		sb.WriteByte('o')
		return nil
	case sigType:
		sb.WriteByte('g')
		return nil
	}

	switch t.Kind() {
	case reflect.Uint8:
		sb.WriteByte('y')
	case reflect.Bool:
		sb.WriteByte('b')
	case reflect.Int16:
		sb.WriteByte('n')
	case reflect.Uint16:
		sb.WriteByte('q')
	case reflect.Int32:
		sb.WriteByte('i')
	case reflect.Uint32:
		sb.WriteByte('u')
	case reflect.Int64:
		sb.WriteByte('x')
	case reflect.Uint64:
		sb.WriteByte('t')
	case reflect.Float64:
		sb.WriteByte('d')
	case reflect.String:
		sb.WriteByte('s')
	case reflect.Interface:
		sb.WriteByte('v')

	case reflect.Slice, reflect.Array:
		sb.WriteByte('a')
		return writeType(sb, t.Elem())

	case reflect.Map:
		key := t.Key()
		ks, err := OfType(key)
		if err != nil {
			return err
		}
		if len(ks) != 1 || !isBasic(ks[0]) {
			return &TypeError{Type: t, Reason: "map key must map to a basic type"}
		}
		sb.WriteString("a{")
		sb.WriteString(ks)
		if err := writeType(sb, t.Elem()); err != nil {
			return err
		}
		sb.WriteByte('}')

	case reflect.Struct:
		sb.WriteByte('(')
		wrote := false
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("dbus") == "-" {
				continue
			}
			if err := writeType(sb, f.Type); err != nil {
				return err
			}
			wrote = true
		}
		if !wrote {
			return &TypeError{Type: t, Reason: "struct has no encodable fields"}
		}
		sb.WriteByte(')')

	default:
		return &TypeError{Type: t, Reason: fmt.Sprintf("kind %s has no wire representation", t.Kind())}
	}
	return nil
}
