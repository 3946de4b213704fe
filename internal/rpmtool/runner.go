package rpmtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/sirupsen/logrus"
)

// Runner executes external commands and returns their standard output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	Logger logrus.FieldLogger
}

// NewExecRunner creates a runner logging through the given logger
func NewExecRunner(logger logrus.FieldLogger) *ExecRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExecRunner{Logger: logger}
}

// Run executes name with args. The process is killed when ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	commandLine := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.Logger.Debugf("Executing command %s", commandLine)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = errors.New(missingExecutableMessage(name))
		}
		return stdout.String(), models.Wrap(models.ErrToolInvocation, "",
			fmt.Errorf("error executing command (%s):\n%v\n%s", commandLine, err, stderr.String()))
	}

	return stdout.String(), nil
}

// missingExecutableMessage suggests how to install the package that ships
// the missing rpm tool on the current system
func missingExecutableMessage(name string) string {
	if name != RPMBuildProgram {
		return fmt.Sprintf("executable %q not found in PATH", name)
	}

	installer := "apt"
	pkg := "rpm"
	switch {
	case runtime.GOOS == "darwin":
		installer = "brew"
	case hasExecutable("dnf"):
		installer = "dnf"
		pkg = "rpm-build"
	}

	return fmt.Sprintf("Your system is missing the %s package. Try, e.g. '%s install %s'", pkg, installer, pkg)
}

func hasExecutable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
