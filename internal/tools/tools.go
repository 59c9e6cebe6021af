// Package tools wraps the external analysis binaries (solc, slither).
// Each wrapper runs one blocking subprocess per call and folds exit code,
// captured streams, and launch errors into the wire record for that tool.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Binary names resolved through PATH.
const (
	SolcBin    = "solc"
	SlitherBin = "slither"
)

// run executes one tool invocation with separated stdout/stderr capture.
// The returned error is nil on exit 0, an *exec.ExitError on a nonzero
// exit, and any other error when the process could not run to completion.
// A timeout of 0 means the call blocks until the tool finishes.
func run(ctx context.Context, timeout time.Duration, bin string, args ...string) (stdout, stderr string, err error) {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, bin, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		err = fmt.Errorf("%s: timed out after %s", bin, timeout)
	}
	return outBuf.String(), errBuf.String(), err
}

// exited reports whether err means the tool launched and returned a
// nonzero exit code, as opposed to not running at all.
func exited(err error) bool {
	var ee *exec.ExitError
	return errors.As(err, &ee)
}

// Version returns the first line a binary prints for --version. Used by
// environment checks, never by the batch itself.
func Version(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", err
	}
	line := string(out)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line), nil
}
