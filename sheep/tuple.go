package sheep

import (
	"sort"
	"strconv"
	"strings"
)

const tupleSeparator = ";"

// Field is one entry of an ordered mapping. An empty Name marks a positional
// entry.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered key/value mapping as exchanged with the CRM.
type Fields []Field

// EncodeTuples turns fields into the CRM tuple list, e.g. {home: "123"} becomes
// ["123;home"]. Positional entries and entries named by a non-negative integer
// index are emitted as bare values, so numeric names do not survive encoding.
func EncodeTuples(fields Fields) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if isIndexName(field.Name) {
			out = append(out, field.Value)
			continue
		}
		out = append(out, field.Value+tupleSeparator+field.Name)
	}
	return out
}

// EncodeTupleMap encodes an unordered map with keys in sorted order.
func EncodeTupleMap(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make(Fields, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, Field{Name: key, Value: values[key]})
	}
	return EncodeTuples(fields)
}

// DecodeTuples expands a CRM tuple list, splitting each element on the first
// ";" only. The second component becomes the name. A repeated name replaces
// the earlier value in place.
func DecodeTuples(values []string) Fields {
	out := make(Fields, 0, len(values))
	positions := map[string]int{}
	for _, value := range values {
		head, name, named := strings.Cut(value, tupleSeparator)
		if !named {
			out = append(out, Field{Value: head})
			continue
		}
		if index, seen := positions[name]; seen {
			out[index].Value = head
			continue
		}
		positions[name] = len(out)
		out = append(out, Field{Name: name, Value: head})
	}
	return out
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name != "" && field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Map returns the named entries. Positional entries are skipped.
func (f Fields) Map() map[string]string {
	out := make(map[string]string, len(f))
	for _, field := range f {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	return out
}

// Positional returns the unnamed values in order.
func (f Fields) Positional() []string {
	out := []string{}
	for _, field := range f {
		if field.Name == "" {
			out = append(out, field.Value)
		}
	}
	return out
}

func isIndexName(name string) bool {
	if name == "" {
		return true
	}
	if name != "0" && strings.HasPrefix(name, "0") {
		return false
	}
	index, err := strconv.Atoi(name)
	return err == nil && index >= 0 && strconv.Itoa(index) == name
}
