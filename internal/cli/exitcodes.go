package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// Exit codes for mdcheck.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFindings indicates --strict was set and findings were reported.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 65

	// ExitUnavailable indicates the model server could not be reached.
	ExitUnavailable = 69

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFindingsReported is returned in strict mode when findings were reported.
	ErrFindingsReported = errors.New("findings reported")

	// ErrUsage is returned for invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig wraps every failure to load or apply configuration.
	ErrConfig = errors.New("configuration error")

	// ErrOutputExists is returned when init would overwrite a file without --force.
	ErrOutputExists = errors.New("file already exists")
)

// usageError marks an error as a command-line usage problem.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() []error { return []error{ErrUsage, e.err} }

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var (
		validationErr *configloader.ValidationError
		configErr     *advisory.ConfigError
		fileErr       *runner.FileError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFindingsReported):
		return ExitFindings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr), errors.As(err, &configErr):
		return ExitConfigError
	case errors.Is(err, advisory.ErrUnavailable):
		return ExitUnavailable
	case errors.Is(err, runner.ErrNotFound), errors.Is(err, runner.ErrNotRegular), errors.As(err, &fileErr),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, ErrOutputExists):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
