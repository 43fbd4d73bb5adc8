package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles. The ordering is total:
// reader < author < admin, and a higher role satisfies every
// requirement a lower one does.
type Role int

const (
	RoleReader Role = iota
	RoleAuthor
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleReader: "reader",
	RoleAuthor: "author",
	RoleAdmin:  "admin",
}

var rolesByName = map[string]Role{
	"reader": RoleReader,
	"author": RoleAuthor,
	"admin":  RoleAdmin,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast reports whether r satisfies the given capability requirement.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && required.Valid() && r >= required
}

// ParseRole maps a role name onto the closed set. Unknown values are
// rejected rather than admitted as a zero role.
func ParseRole(raw string) (Role, error) {
	role, ok := rolesByName[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return RoleReader, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
	}
	return role, nil
}

// SelfSelectableRole constrains the role a user may pick at
// registration. Anything other than "author" registers as a reader;
// admin can never be self-granted.
func SelfSelectableRole(raw string) Role {
	if strings.ToLower(strings.TrimSpace(raw)) == "author" {
		return RoleAuthor
	}
	return RoleReader
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
