// Package projection renders restricted views of entity records. Each
// entity declares a static field table; only fields in the table can ever
// appear in output, so write-only columns like password hashes stay out
// of every response regardless of what a caller asks for.
package projection

// Field binds a projectable field name to its value extractor.
type Field[T any] struct {
	Name string
	Get  func(T) any
}

// FieldSpec is the ordered set of projectable fields for one entity.
type FieldSpec[T any] struct {
	order   []string
	getters map[string]func(T) any
}

// NewFieldSpec builds a FieldSpec from the given fields. Later duplicates
// overwrite earlier ones.
func NewFieldSpec[T any](fields ...Field[T]) FieldSpec[T] {
	spec := FieldSpec[T]{
		getters: make(map[string]func(T) any, len(fields)),
	}
	for _, f := range fields {
		if _, ok := spec.getters[f.Name]; !ok {
			spec.order = append(spec.order, f.Name)
		}
		spec.getters[f.Name] = f.Get
	}
	return spec
}

// Names returns the legal field names in declaration order.
func (s FieldSpec[T]) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Has reports whether name is a projectable field.
func (s FieldSpec[T]) Has(name string) bool {
	_, ok := s.getters[name]
	return ok
}

// Project renders record as a field-name-to-value map.
//
// A non-nil include narrows the result to fields present in both the spec
// and include; names unknown to the spec are ignored. Exclude then
// subtracts; excluding an absent field is a no-op. Pure function of its
// inputs.
func (s FieldSpec[T]) Project(record T, include, exclude []string) map[string]any {
	var allowed map[string]struct{}
	if include != nil {
		allowed = make(map[string]struct{}, len(include))
		for _, name := range include {
			allowed[name] = struct{}{}
		}
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	out := make(map[string]any, len(s.order))
	for _, name := range s.order {
		if allowed != nil {
			if _, ok := allowed[name]; !ok {
				continue
			}
		}
		if _, ok := excluded[name]; ok {
			continue
		}
		out[name] = s.getters[name](record)
	}
	return out
}
