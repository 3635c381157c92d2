package shellexec

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// runPipeline starts every stage of p up front (relying on the OS
// pipe's own buffering for backpressure between them, the same way a
// real shell avoids a pipeline deadlock), then waits for all of them.
// The returned exit code is always that of the final stage.
func (s *Shell) runPipeline(p Pipeline, stdin io.Reader, stdout io.Writer) int {
	stages := p.stages()
	n := len(stages)
	finalIdx := n - 1

	var cmds []*exec.Cmd
	var curStdin io.Reader = stdin
	var prevReadEnd *os.File

	builtinRan := false
	builtinExit := 0

	for i, exe := range stages {
		isFinal := i == finalIdx

		if isFinal {
			if fn, ok := s.builtins.Lookup(exe.Name); ok {
				builtinExit = fn(curStdin, stdout, s.Stderr, exe.Args, s)
				builtinRan = true
				if prevReadEnd != nil {
					_ = prevReadEnd.Close()
				}
				break
			}
		}

		cmd := exec.Command(exe.Name, exe.Args...)
		cmd.Stdin = curStdin
		cmd.Stderr = s.Stderr

		var pw *os.File
		if isFinal {
			cmd.Stdout = stdout
		} else {
			pr, w, err := os.Pipe()
			if err != nil {
				s.log.WithField("err", err).Error("pipe creation failed")
				return 1
			}
			cmd.Stdout = w
			pw = w
			curStdin = pr
		}

		if err := cmd.Start(); err != nil {
			s.log.WithField("exe", exe.Name).WithField("err", err).Error("exec failed")
			if pw != nil {
				_ = pw.Close()
			}
			return 1
		}

		if prevReadEnd != nil {
			_ = prevReadEnd.Close()
		}
		if pw != nil {
			_ = pw.Close()
			if pr, ok := curStdin.(*os.File); ok {
				prevReadEnd = pr
			}
		} else {
			prevReadEnd = nil
		}

		cmds = append(cmds, cmd)
	}

	exitCode := 0
	for i, cmd := range cmds {
		err := cmd.Wait()
		isFinal := !builtinRan && i == len(cmds)-1
		code := exitCodeOf(err)
		if err != nil {
			s.log.WithField("exe", cmd.Path).WithField("err", err).Warn("child exited abnormally")
		}
		if isFinal {
			exitCode = code
		}
	}

	if builtinRan {
		exitCode = builtinExit
	}

	return exitCode
}

// exitCodeOf translates a (*exec.Cmd).Wait error into the exit code
// surfaced to chaining. Abnormal termination (a signal, or a failure
// to even start) surfaces as 1.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ee.ProcessState.Exited() {
			return ee.ExitCode()
		}
	}
	return 1
}
