package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Literal is an already-serialized Python literal. Caller-supplied values can
// only reach generated script text through one of the constructors below, so
// object names and paths containing quotes or control characters cannot break
// out of their literal position.
type Literal string

// Str serializes s as a double-quoted Python string literal.
func Str(s string) Literal {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return Literal(b.String())
}

// Float serializes f as a Python float literal. Integral values keep a
// trailing ".0" so the generated source reads like Python repr output.
func Float(f float64) Literal {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return Literal(s)
}

// Int serializes i as a Python int literal.
func Int(i int) Literal {
	return Literal(strconv.Itoa(i))
}

// Bool serializes b as True or False.
func Bool(b bool) Literal {
	if b {
		return "True"
	}
	return "False"
}

// Vec3 serializes v as a 3-tuple, e.g. (0.0, 1.0, 2.5).
func Vec3(v [3]float64) Literal {
	return Literal(fmt.Sprintf("(%s, %s, %s)", Float(v[0]), Float(v[1]), Float(v[2])))
}

// Vec4 serializes v as a 4-tuple (RGBA colors).
func Vec4(v [4]float64) Literal {
	return Literal(fmt.Sprintf("(%s, %s, %s, %s)", Float(v[0]), Float(v[1]), Float(v[2]), Float(v[3])))
}

// StrList serializes names as a Python list of string literals.
func StrList(names []string) Literal {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(Str(n))
	}
	return Literal("[" + strings.Join(parts, ", ") + "]")
}

// Vec3List serializes vertex coordinates as a list of 3-tuples.
func Vec3List(verts [][3]float64) Literal {
	parts := make([]string, len(verts))
	for i, v := range verts {
		parts[i] = string(Vec3(v))
	}
	return Literal("[" + strings.Join(parts, ", ") + "]")
}

// IntListList serializes face index lists as a list of lists of ints.
func IntListList(faces [][]int) Literal {
	parts := make([]string, len(faces))
	for i, face := range faces {
		idx := make([]string, len(face))
		for j, v := range face {
			idx[j] = strconv.Itoa(v)
		}
		parts[i] = "[" + strings.Join(idx, ", ") + "]"
	}
	return Literal("[" + strings.Join(parts, ", ") + "]")
}

// Raw marks s as a trusted Python fragment. Only for fixed, server-controlled
// text; never pass caller input through Raw.
func Raw(s string) Literal {
	return Literal(s)
}
