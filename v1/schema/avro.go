package schema

import "encoding/json"

// avroPrimitives are type names that are never named-type references.
var avroPrimitives = map[string]bool{
	"null":    true,
	"boolean": true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"bytes":   true,
	"string":  true,
	"record":  true,
	"enum":    true,
	"array":   true,
	"map":     true,
	"fixed":   true,
	"error":   true,
}

// Expand returns a copy of an Avro schema where every reference to a named
// type is replaced by its full definition. References to a type that is
// currently being defined (recursive schemas) are left as names to keep the
// result finite. The result is computed once and memoized.
//
// The expanded document may define the same named type more than once and is
// therefore not re-validated; the returned Schema shares the original's
// codec, which describes the same logical type.
//
// Expand returns ErrNotAvro for JSON schemas.
func (s *Schema) Expand() (*Schema, error) {
	if s.typ != TypeAvro {
		return nil, ErrNotAvro
	}

	s.expandOnce.Do(func() {
		var doc interface{}
		if err := json.Unmarshal([]byte(s.canonical), &doc); err != nil {
			s.expandErr = err
			return
		}

		ex := &expander{
			defs:       make(map[string]interface{}),
			inProgress: make(map[string]bool),
		}
		expanded := ex.expand(doc, "")

		out, err := json.Marshal(expanded)
		if err != nil {
			s.expandErr = err
			return
		}
		s.expanded = &Schema{
			raw:         string(out),
			canonical:   string(out),
			typ:         TypeAvro,
			fingerprint: fingerprint(string(out)),
			name:        s.name,
			codec:       s.codec,
		}
	})

	return s.expanded, s.expandErr
}

type expander struct {
	// defs maps full names of named types to their expanded definitions.
	defs map[string]interface{}

	// inProgress tracks named types whose definition is still being walked,
	// so that recursive references stay as plain names.
	inProgress map[string]bool
}

func (ex *expander) expand(node interface{}, namespace string) interface{} {
	switch n := node.(type) {
	case string:
		return ex.resolve(n, namespace)
	case []interface{}:
		// union
		out := make([]interface{}, len(n))
		for i, branch := range n {
			out[i] = ex.expand(branch, namespace)
		}
		return out
	case map[string]interface{}:
		return ex.expandComplex(n, namespace)
	default:
		return node
	}
}

// resolve replaces a named-type reference with its registered definition.
// Unqualified names are resolved against the enclosing namespace first.
func (ex *expander) resolve(name, namespace string) interface{} {
	if avroPrimitives[name] {
		return name
	}
	for _, candidate := range []string{qualify(name, namespace), name} {
		if ex.inProgress[candidate] {
			return name
		}
		if def, ok := ex.defs[candidate]; ok {
			return def
		}
	}
	return name
}

func (ex *expander) expandComplex(node map[string]interface{}, namespace string) interface{} {
	typ, _ := node["type"].(string)

	switch typ {
	case "record", "error":
		full := fullName(node, namespace)
		inner := innerNamespace(node, namespace)
		ex.inProgress[full] = true

		out := copyMap(node)
		if fields, ok := node["fields"].([]interface{}); ok {
			expandedFields := make([]interface{}, len(fields))
			for i, f := range fields {
				field, ok := f.(map[string]interface{})
				if !ok {
					expandedFields[i] = f
					continue
				}
				fieldCopy := copyMap(field)
				fieldCopy["type"] = ex.expand(field["type"], inner)
				expandedFields[i] = fieldCopy
			}
			out["fields"] = expandedFields
		}

		delete(ex.inProgress, full)
		ex.defs[full] = out
		return out

	case "enum", "fixed":
		out := copyMap(node)
		ex.defs[fullName(node, namespace)] = out
		return out

	case "array":
		out := copyMap(node)
		out["items"] = ex.expand(node["items"], namespace)
		return out

	case "map":
		out := copyMap(node)
		out["values"] = ex.expand(node["values"], namespace)
		return out

	default:
		// e.g. {"type": "string", "logicalType": ...} or a bare reference
		// wrapped in an object
		return node
	}
}

// fullName computes the full name of a named type per the Avro spec: a name
// containing dots is already full, otherwise the namespace attribute or the
// enclosing namespace qualifies it.
func fullName(node map[string]interface{}, enclosing string) string {
	name, _ := node["name"].(string)
	if hasDot(name) {
		return name
	}
	if ns, ok := node["namespace"].(string); ok && ns != "" {
		return ns + "." + name
	}
	return qualify(name, enclosing)
}

// innerNamespace is the namespace that applies to a named type's children.
func innerNamespace(node map[string]interface{}, enclosing string) string {
	if name, _ := node["name"].(string); hasDot(name) {
		return name[:lastDot(name)]
	}
	if ns, ok := node["namespace"].(string); ok && ns != "" {
		return ns
	}
	return enclosing
}

func qualify(name, namespace string) string {
	if namespace == "" || hasDot(name) {
		return name
	}
	return namespace + "." + name
}

func hasDot(s string) bool {
	return lastDot(s) >= 0
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
