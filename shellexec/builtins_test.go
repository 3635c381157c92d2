package shellexec_test

import (
	"bytes"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysprog/shellexec"
)

var _ = Describe("Built-ins", func() {
	It("cd changes the process's working directory", func() {
		start, err := os.Getwd()
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = os.Chdir(start) }()

		dir, err := os.MkdirTemp("", "shellexec-cd-*")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		out := &bytes.Buffer{}
		sh := shellexec.New(strings.NewReader(""), out, out, nil)

		code := sh.Exec(shellexec.Command{
			First: shellexec.Pipeline{Last: shellexec.Exe{Name: "cd", Args: []string{dir}}},
		})
		Expect(code).To(Equal(0))

		code = sh.Exec(shellexec.Command{
			First: shellexec.Pipeline{Last: shellexec.Exe{Name: "pwd"}},
		})
		Expect(code).To(Equal(0))

		resolvedDir, err := os.Getwd()
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(out.String())).To(Equal(resolvedDir))
	})

	It("cd reports an error and a non-zero exit on an unknown directory", func() {
		out := &bytes.Buffer{}
		sh := shellexec.New(strings.NewReader(""), out, out, nil)

		code := sh.Exec(shellexec.Command{
			First: shellexec.Pipeline{Last: shellexec.Exe{Name: "cd", Args: []string{"/no/such/dir"}}},
		})
		Expect(code).To(Equal(1))
		Expect(out.String()).To(ContainSubstring("cd:"))
	})
})
