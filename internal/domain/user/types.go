package user

type AccessLevel string

const (
	LevelUser  AccessLevel = "user"
	LevelAdmin AccessLevel = "admin"
)

func (l AccessLevel) String() string {
	return string(l)
}

func (l AccessLevel) IsValid() bool {
	switch l {
	case LevelUser, LevelAdmin:
		return true
	default:
		return false
	}
}

func (l AccessLevel) IsAdmin() bool {
	return l == LevelAdmin
}

func NewAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(s)
	if !level.IsValid() {
		return "", ErrInvalidAccessLevel
	}
	return level, nil
}
