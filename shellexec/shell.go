package shellexec

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Shell ties the builtin registry, background-job reaper and the
// process's own streams together to execute Commands.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	builtins *BuiltinRegistry
	reaper   *ChildReaper
	log      *logrus.Entry
}

// New builds a Shell. A nil log defaults to the standard logger.
func New(stdin io.Reader, stdout, stderr io.Writer, log *logrus.Entry) *Shell {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "shellexec")

	return &Shell{
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		builtins: NewBuiltinRegistry(),
		reaper:   NewChildReaper(log),
		log:      log,
	}
}

// Builtins exposes the registry so a caller can add extra built-ins
// before the shell starts reading commands.
func (s *Shell) Builtins() *BuiltinRegistry {
	return s.builtins
}

// PendingBackground reports how many background commands are still
// running.
func (s *Shell) PendingBackground() int {
	return s.reaper.Pending()
}

// Exec runs cmd. A foreground command blocks until its chain
// completes and returns its exit code; a background command (IsBg)
// is launched asynchronously and its (synthetic, non-blocking) job id
// is returned immediately instead of an exit code.
func (s *Shell) Exec(cmd Command) int {
	if cmd.IsBg {
		return s.reaper.Launch(func() int { return s.runChain(cmd) })
	}
	return s.runChain(cmd)
}
