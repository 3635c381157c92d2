// Command shell is a small REPL over the shellexec package. Real
// command-line lexing/parsing is treated as an external collaborator
// by the coursework this module implements, so this binary only
// provides a minimal line parser (pipes, &&/||, trailing &, > / >>)
// just deep enough to drive shellexec.Shell interactively; the
// pipeline/chaining/redirection/background semantics themselves all
// live in the shellexec package.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sabouaram/sysprog/ioutils/delim"
	"github.com/sabouaram/sysprog/shellexec"
)

const prompt = "$> "

func main() {
	log := logrus.New()
	entry := log.WithField("component", "cmd.shell")

	sh := shellexec.New(os.Stdin, os.Stdout, os.Stderr, entry)

	reader := delim.New(os.Stdin, '\n', 0)
	defer reader.Close()

	fmt.Print(prompt)
	for {
		raw, err := reader.ReadBytes()
		line := strings.TrimRight(string(raw), "\n")
		if strings.TrimSpace(line) != "" {
			if cmd, ok := parseLine(line); ok {
				sh.Exec(cmd)
			} else {
				fmt.Fprintln(os.Stderr, "shell: could not parse command")
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				entry.WithField("err", err).Error("reading command")
			}
			break
		}
		fmt.Print(prompt)
	}
}

func parseLine(line string) (shellexec.Command, bool) {
	var cmd shellexec.Command

	rest := strings.TrimSpace(line)
	if rest == "" {
		return cmd, false
	}

	if idx := strings.LastIndex(rest, "&"); idx == len(rest)-1 {
		cmd.IsBg = true
		rest = strings.TrimSpace(rest[:idx])
	}

	if i := strings.LastIndex(rest, ">>"); i >= 0 {
		cmd.Append = true
		cmd.Redirect = strings.TrimSpace(rest[i+2:])
		rest = strings.TrimSpace(rest[:i])
	} else if i := strings.LastIndex(rest, ">"); i >= 0 {
		cmd.Redirect = strings.TrimSpace(rest[i+1:])
		rest = strings.TrimSpace(rest[:i])
	}

	links := splitChain(rest)
	if len(links) == 0 {
		return cmd, false
	}

	first, ok := parsePipeline(links[0].text)
	if !ok {
		return cmd, false
	}
	cmd.First = first

	for _, link := range links[1:] {
		p, ok := parsePipeline(link.text)
		if !ok {
			return cmd, false
		}
		cmd.Chained = append(cmd.Chained, shellexec.PipelineCondition{Kind: link.kind, Pipeline: p})
	}

	return cmd, true
}

type chainLink struct {
	kind shellexec.ChainKind
	text string
}

func splitChain(s string) []chainLink {
	var links []chainLink
	kind := shellexec.KindAnd
	for {
		andIdx := strings.Index(s, "&&")
		orIdx := strings.Index(s, "||")
		idx, nextKind := -1, shellexec.KindAnd
		switch {
		case andIdx == -1 && orIdx == -1:
			links = append(links, chainLink{kind: kind, text: strings.TrimSpace(s)})
			return links
		case andIdx == -1:
			idx, nextKind = orIdx, shellexec.KindOr
		case orIdx == -1:
			idx, nextKind = andIdx, shellexec.KindAnd
		case andIdx < orIdx:
			idx, nextKind = andIdx, shellexec.KindAnd
		default:
			idx, nextKind = orIdx, shellexec.KindOr
		}
		links = append(links, chainLink{kind: kind, text: strings.TrimSpace(s[:idx])})
		s = s[idx+2:]
		kind = nextKind
	}
}

func parsePipeline(s string) (shellexec.Pipeline, bool) {
	var p shellexec.Pipeline
	stages := strings.Split(s, "|")
	exes := make([]shellexec.Exe, 0, len(stages))
	for _, stage := range stages {
		fields := strings.Fields(stage)
		if len(fields) == 0 {
			return p, false
		}
		exes = append(exes, shellexec.Exe{Name: fields[0], Args: fields[1:]})
	}
	p.Piped = exes[:len(exes)-1]
	p.Last = exes[len(exes)-1]
	return p, true
}
