package pkg

import (
	"errors"
	"regexp"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

const MaxNicknameLength = 10

var (
	ErrBadNickname = errors.New("nickname must be 1-10 letters, digits, '-' or '_'")

	nicknameRe = regexp.MustCompile(`^[\p{L}\p{N}_-]{1,10}$`)
)

type Player struct {
	Name string
}

// NewPlayer returns a player with the given nickname, or a generated one when
// name is empty.
func NewPlayer(name string) (*Player, error) {
	if name == "" {
		return &Player{Name: RandomNickname()}, nil
	}

	if !ValidNickname(name) {
		return nil, ErrBadNickname
	}

	return &Player{Name: name}, nil
}

func ValidNickname(name string) bool {
	return nicknameRe.MatchString(name)
}

// SanitizeNickname strips what ValidNickname rejects and truncates the rest.
// It falls back to a generated name when nothing is left.
func SanitizeNickname(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == MaxNicknameLength {
			break
		}
		if nicknameRe.MatchString(string(r)) {
			b.WriteRune(r)
			n++
		}
	}

	if b.Len() == 0 {
		return RandomNickname()
	}
	return b.String()
}

// RandomNickname returns an adjective-animal pair that fits the nickname rules.
func RandomNickname() string {
	for i := 0; i < 20; i++ {
		name := petname.Generate(2, "-")
		if ValidNickname(name) {
			return name
		}
	}

	name := petname.Name()
	if len(name) > MaxNicknameLength {
		name = name[:MaxNicknameLength]
	}
	return name
}
