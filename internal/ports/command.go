package ports

import (
	"errors"
	"strings"
)

var ErrEmptyCommand = errors.New("empty command")

// Command is an executable plus its arguments.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits s on whitespace: the first field is the executable and
// the rest are its arguments. There is no quoting or escaping.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: fields[0], Args: fields[1:]}, nil
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
