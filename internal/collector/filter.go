package collector

import "strings"

// Filter excludes routine commits by case-insensitive subject markers
type Filter struct {
	markers []string
}

func NewFilter(markers []string) *Filter {
	f := &Filter{markers: make([]string, 0, len(markers))}
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			f.markers = append(f.markers, m)
		}
	}
	return f
}

// Skip returns the first marker found in the subject
func (f *Filter) Skip(subject string) (string, bool) {
	subject = strings.ToLower(subject)
	for _, m := range f.markers {
		if strings.Contains(subject, m) {
			return m, true
		}
	}
	return "", false
}
