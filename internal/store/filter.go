package store

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter es un predicado sobre documentos. Se traduce a query BSON para
// backends con motor de queries (mongo) y se evalúa in-process sobre el
// documento crudo para los que no lo tienen (memory, redis).
type Filter interface {
	ToBSON() bson.D
	Match(doc bson.Raw) bool
}

// All matchea todos los documentos de la colección.
type All struct{}

func (All) ToBSON() bson.D        { return bson.D{} }
func (All) Match(_ bson.Raw) bool { return true }

// Eq matchea documentos cuyo campo string es igual a Value.
type Eq struct {
	Field string
	Value string
}

func (f Eq) ToBSON() bson.D { return bson.D{{Key: f.Field, Value: f.Value}} }

func (f Eq) Match(doc bson.Raw) bool {
	v, err := doc.LookupErr(f.Field)
	if err != nil {
		return false
	}
	s, ok := v.StringValueOK()
	return ok && s == f.Value
}

// ArrayContains matchea documentos cuyo array de strings contiene Value.
type ArrayContains struct {
	Field string
	Value string
}

// ToBSON: en mongo la igualdad sobre un array es "contiene".
func (f ArrayContains) ToBSON() bson.D { return bson.D{{Key: f.Field, Value: f.Value}} }

func (f ArrayContains) Match(doc bson.Raw) bool {
	for _, v := range arrayValues(doc, f.Field) {
		if s, ok := v.StringValueOK(); ok && s == f.Value {
			return true
		}
	}
	return false
}

// ElemMatch matchea documentos con al menos un elemento del array Field
// cuyos campos string coinciden con todos los de Fields.
type ElemMatch struct {
	Field  string
	Fields map[string]string
}

func (f ElemMatch) ToBSON() bson.D {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cond := make(bson.D, 0, len(keys))
	for _, k := range keys {
		cond = append(cond, bson.E{Key: k, Value: f.Fields[k]})
	}
	return bson.D{{Key: f.Field, Value: bson.D{{Key: "$elemMatch", Value: cond}}}}
}

func (f ElemMatch) Match(doc bson.Raw) bool {
	for _, v := range arrayValues(doc, f.Field) {
		elem, ok := v.DocumentOK()
		if !ok {
			continue
		}
		if matchAll(elem, f.Fields) {
			return true
		}
	}
	return false
}

// And matchea si todos los filtros matchean.
type And []Filter

func (f And) ToBSON() bson.D {
	parts := make(bson.A, 0, len(f))
	for _, sub := range f {
		parts = append(parts, sub.ToBSON())
	}
	return bson.D{{Key: "$and", Value: parts}}
}

func (f And) Match(doc bson.Raw) bool {
	for _, sub := range f {
		if !sub.Match(doc) {
			return false
		}
	}
	return true
}

func arrayValues(doc bson.Raw, field string) []bson.RawValue {
	v, err := doc.LookupErr(field)
	if err != nil {
		return nil
	}
	arr, ok := v.ArrayOK()
	if !ok {
		return nil
	}
	values, err := arr.Values()
	if err != nil {
		return nil
	}
	return values
}

func matchAll(elem bson.Raw, fields map[string]string) bool {
	for k, want := range fields {
		v, err := elem.LookupErr(k)
		if err != nil {
			return false
		}
		s, ok := v.StringValueOK()
		if !ok || s != want {
			return false
		}
	}
	return true
}
