package feedback

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownField is returned when an edit names a field records do not have.
var ErrUnknownField = errors.New("unknown feedback field")

// fieldSetters maps editable answer keys to their record fields.
var fieldSetters = map[string]func(r *Record, v string){
	"satisfaction":       func(r *Record, v string) { r.Satisfaction = v },
	"quality":            func(r *Record, v string) { r.Quality = v },
	"value":              func(r *Record, v string) { r.Value = v },
	"recommend":          func(r *Record, v string) { r.Recommend = v },
	"improvements":       func(r *Record, v string) { r.Improvements = v },
	"usage":              func(r *Record, v string) { r.Usage = v },
	"likes":              func(r *Record, v string) { r.Likes = v },
	"additionalComments": func(r *Record, v string) { r.AdditionalComments = v },
}

// fieldGetters mirrors fieldSetters for reads.
var fieldGetters = map[string]func(r Record) string{
	"satisfaction":       func(r Record) string { return r.Satisfaction },
	"quality":            func(r Record) string { return r.Quality },
	"value":              func(r Record) string { return r.Value },
	"recommend":          func(r Record) string { return r.Recommend },
	"improvements":       func(r Record) string { return r.Improvements },
	"usage":              func(r Record) string { return r.Usage },
	"likes":              func(r Record) string { return r.Likes },
	"additionalComments": func(r Record) string { return r.AdditionalComments },
}

// Field returns the answer stored under key, or "" for unknown keys.
func (r Record) Field(key string) string {
	if get, ok := fieldGetters[key]; ok {
		return get(r)
	}
	return ""
}

// Fields lists the editable answer keys in sorted order.
func Fields() []string {
	keys := make([]string, 0, len(fieldSetters))
	for k := range fieldSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applyChanges sets answer fields on r. An empty value clears the field.
func applyChanges(r *Record, changes map[string]string) error {
	for key, value := range changes {
		set, ok := fieldSetters[key]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
		set(r, value)
	}
	return nil
}
