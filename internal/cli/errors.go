package cli

import (
	"errors"
	"fmt"
)

// ErrUsage matches every error caused by invalid command-line input. The
// entrypoint exits with status 2 for these instead of 1.
var ErrUsage = errors.New("cli usage error")

// usageError reports a command invoked with bad flags, arguments or config
// before any source was scanned.
type usageError struct {
	command string
	msg     string
}

func usagef(command, format string, args ...any) error {
	return usageError{command: command, msg: fmt.Sprintf(format, args...)}
}

func (e usageError) Error() string {
	if e.command == "" {
		return e.msg
	}

	return e.command + ": " + e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
