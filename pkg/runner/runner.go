// Package runner launches the emulator subprocess against a prepared
// volume.
package runner

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/paths"
)

// Options configure a single emulator run.
type Options struct {
	Runner     string // path to the emulator executable
	ROM        string // path to the machine ROM image
	SystemFile string // system file to boot
	VolumeRoot string // directory holding the volume directories
	Debug      bool
	// MaxInstructions caps execution when > 0.
	MaxInstructions int64
}

// Run executes the emulator and waits for it to exit. Stdout/stderr are
// passed through. A non-zero exit is an error.
func Run(opts Options) error {
	logger := logging.GetLogger("runner")

	for _, check := range []struct{ value, name string }{
		{opts.Runner, "--runner"},
		{opts.ROM, "--rom"},
		{opts.SystemFile, "system file"},
		{opts.VolumeRoot, "--volume-root"},
	} {
		if err := paths.ValidateSafePath(check.value, check.name); err != nil {
			return err
		}
	}

	args := []string{"--volume-root", opts.VolumeRoot}
	if opts.Debug {
		args = append(args, "--debug")
	}
	if opts.MaxInstructions > 0 {
		args = append(args, "--max-instructions", strconv.FormatInt(opts.MaxInstructions, 10))
	}
	args = append(args, opts.ROM, opts.SystemFile)

	logging.LogCommand(opts.Runner, args)
	logger.Info().Str("systemFile", opts.SystemFile).Msg("starting emulator")

	cmd := exec.Command(opts.Runner, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return errors.Newf(errors.ErrEmulatorFailed,
				"emulator exited with code %d", exitErr.ExitCode()).
				WithDetail("systemFile", opts.SystemFile)
		}
		return errors.Wrap(err, errors.ErrEmulatorFailed, "starting emulator")
	}
	return nil
}
