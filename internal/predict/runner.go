// Package predict shells out to the handwritten-math recognizer. The model
// is an opaque external process: it takes an image path as its only argument
// and prints a single JSON object to stdout.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds one recognizer run.
const DefaultTimeout = 30 * time.Second

// ErrorKind classifies recognizer failures so callers can map them to
// distinct responses.
type ErrorKind int

const (
	// KindInterpreterMissing means no usable Python interpreter was found.
	KindInterpreterMissing ErrorKind = iota
	// KindScriptMissing means the recognizer entry point does not exist.
	KindScriptMissing
	// KindTimeout means the process exceeded its deadline and was killed.
	KindTimeout
	// KindExecution means the process exited nonzero or failed to start.
	KindExecution
	// KindBadOutput means stdout was empty or not valid JSON.
	KindBadOutput
	// KindScriptError means the script itself reported an error object.
	KindScriptError
)

// Error is a classified recognizer failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Runner executes the recognizer subprocess with a bounded wait.
type Runner struct {
	interpreter string
	script      string
	timeout     time.Duration
	log         zerolog.Logger
}

// NewRunner builds a runner. An empty interpreter is resolved lazily on the
// first call (PYTHON_PATH env, project venv, then PATH lookup). A zero
// timeout falls back to DefaultTimeout.
func NewRunner(interpreter, script string, timeout time.Duration, logger *zerolog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Runner{
		interpreter: interpreter,
		script:      script,
		timeout:     timeout,
		log:         l,
	}
}

// Predict runs the recognizer on the image at imagePath and returns its
// decoded JSON output. Every failure is an *Error with a classified Kind;
// the error is scoped to this call and never fatal to the server.
func (r *Runner) Predict(ctx context.Context, imagePath string) (map[string]any, error) {
	if _, err := os.Stat(r.script); err != nil {
		return nil, &Error{Kind: KindScriptMissing, Message: fmt.Sprintf("recognizer script not found: %s", r.script), Err: err}
	}

	interpreter := r.interpreter
	if interpreter == "" {
		resolved, err := ResolveInterpreter(r.script)
		if err != nil {
			return nil, &Error{Kind: KindInterpreterMissing, Message: "python interpreter not found", Err: err}
		}
		interpreter = resolved
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, interpreter, r.script, imagePath)
	// The deadline kill reaches only the direct child; grandchildren can
	// keep the output pipes open and stall Wait. WaitDelay bounds that.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug().Str("interpreter", interpreter).Str("image", imagePath).Msg("running recognizer")

	err := cmd.Run()
	// stderr is diagnostic only; the script logs progress there.
	if stderr.Len() > 0 {
		r.log.Debug().Str("stderr", truncate(stderr.String(), 512)).Msg("recognizer stderr")
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("python process timed out after %s", r.timeout),
			Err:     ctx.Err(),
		}
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Kind: KindInterpreterMissing, Message: fmt.Sprintf("python interpreter not found: %s", interpreter), Err: err}
		}
		return nil, &Error{
			Kind:    KindExecution,
			Message: "python execution error: " + truncate(strings.TrimSpace(stderr.String()), 256),
			Err:     err,
		}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, &Error{Kind: KindBadOutput, Message: "empty output from recognizer"}
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return nil, &Error{Kind: KindBadOutput, Message: "invalid recognizer output", Err: err}
	}

	if msg, ok := result["error"]; ok {
		return nil, &Error{Kind: KindScriptError, Message: fmt.Sprint(msg)}
	}

	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
