package resolver

// AdminSet is an insertion-ordered set of unique logins. Insertion order
// determines report order: logins first seen via direct collaborators precede
// logins first seen via team expansion.
type AdminSet struct {
	logins []string
	seen   map[string]struct{}
}

// NewAdminSet creates an empty admin set
func NewAdminSet() *AdminSet {
	return &AdminSet{seen: make(map[string]struct{})}
}

// Add appends login unless it is already present. It reports whether the
// login was newly added.
func (s *AdminSet) Add(login string) bool {
	if _, ok := s.seen[login]; ok {
		return false
	}
	s.seen[login] = struct{}{}
	s.logins = append(s.logins, login)
	return true
}

// Contains reports whether login is in the set
func (s *AdminSet) Contains(login string) bool {
	_, ok := s.seen[login]
	return ok
}

// Len returns the number of unique logins
func (s *AdminSet) Len() int {
	return len(s.logins)
}

// Logins returns the logins in insertion order
func (s *AdminSet) Logins() []string {
	return append([]string(nil), s.logins...)
}
