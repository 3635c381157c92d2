package shellexec

import (
	"io"
	"os"

	"github.com/sabouaram/sysprog/ioutils/nopwritecloser"
)

type chainStep struct {
	kind ChainKind
	p    Pipeline
}

// runChain evaluates cmd's first pipeline followed by its chained
// &&/|| links, short-circuiting exactly the way a real shell does:
// each link's gate looks at the exit code of the most recently
// EXECUTED pipeline, not necessarily the one immediately before it in
// the chain, since a skipped link leaves that value unchanged. This is
// what makes the common "cmd1 && cmd2 || cmd3" error-handling idiom
// work.
//
// Redirection is attached to the command as a whole but only ever
// takes effect on the pipeline that is both syntactically last in the
// chain and the one actually executed; a chain that short-circuits
// before reaching the end performs no redirection at all.
func (s *Shell) runChain(cmd Command) int {
	steps := make([]chainStep, 0, 1+len(cmd.Chained))
	steps = append(steps, chainStep{p: cmd.First})
	for _, c := range cmd.Chained {
		steps = append(steps, chainStep{kind: c.Kind, p: c.Pipeline})
	}

	finalIdx := len(steps) - 1
	exitCode := 0

	for i, st := range steps {
		if i > 0 {
			run := (st.kind == KindAnd && exitCode == 0) || (st.kind == KindOr && exitCode != 0)
			if !run {
				continue
			}
		}

		out, err := s.redirectFor(cmd, i, finalIdx)
		if err != nil {
			s.log.WithField("err", err).Error("redirect open failed")
			exitCode = 1
			continue
		}

		exitCode = s.runPipeline(st.p, s.Stdin, out)
		out.Close()
	}

	return exitCode
}

// redirectFor returns the io.WriteCloser the pipeline at index i should
// write to: the shell's own stdout wrapped in a no-op Closer for every
// pipeline but the chain's last, or the truncated/appended redirect
// target file when one is given and i is that last pipeline.
func (s *Shell) redirectFor(cmd Command, i, finalIdx int) (io.WriteCloser, error) {
	if i != finalIdx || cmd.Redirect == "" {
		return nopwritecloser.New(s.Stdout), nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if cmd.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, oerr := os.OpenFile(cmd.Redirect, flags, 0o644)
	if oerr != nil {
		return nil, oerr
	}
	return f, nil
}
