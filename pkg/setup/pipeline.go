// Package setup sequences the full preparation workflow: extract the
// disk image, convert cadius metadata to tags, rearrange the tree,
// import host text files, discover the bootable system file, and run
// the emulator.
package setup

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/p8prep/pkg/cadius"
	"github.com/arthur-debert/p8prep/pkg/config"
	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/rearrange"
	"github.com/arthur-debert/p8prep/pkg/runner"
	"github.com/arthur-debert/p8prep/pkg/system"
	"github.com/arthur-debert/p8prep/pkg/textconv"
)

// Options configure one pipeline run.
type Options struct {
	WorkDir    string
	VolumeRoot string // default: <WorkDir>/volumes
	VolumeName string

	DiskImage   string
	SkipExtract bool
	Cadius      string
	ExtractCmd  string

	RearrangeConfig string

	TextMappings []string
	LossyText    bool
	Access       string

	SystemFile string // explicit path relative to the volume; discovered when empty

	NoRun           bool
	Runner          string
	ROM             string
	Debug           bool
	MaxInstructions int64
}

// Result reports what a pipeline run produced.
type Result struct {
	VolumeDir  string
	SystemFile string
}

// Run executes the pipeline. Each stage either completes or aborts the
// run with a typed error naming the failing path or pattern.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("setup")

	if !opts.SkipExtract {
		if opts.DiskImage == "" {
			return nil, errors.New(errors.ErrInvalidInput,
				"--disk-image required unless --skip-extract specified")
		}
		if err := system.ValidateImagePath(opts.DiskImage); err != nil {
			return nil, err
		}
		resolved, err := cadius.Resolve(opts.Cadius)
		if err != nil {
			return nil, err
		}
		opts.Cadius = resolved
	}

	volumeRoot := opts.VolumeRoot
	if volumeRoot == "" {
		volumeRoot = filepath.Join(opts.WorkDir, "volumes")
	}
	volumeDir := filepath.Join(volumeRoot, opts.VolumeName)

	if err := os.MkdirAll(volumeRoot, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "creating volume root %s", volumeRoot)
	}

	tg := prodosmeta.Detect(volumeRoot)

	if !opts.SkipExtract {
		logger.Info().Str("image", opts.DiskImage).Str("volumeDir", volumeDir).Msg("extracting disk image")
		if err := cadius.Extract(opts.Cadius, opts.DiskImage, volumeDir, opts.ExtractCmd); err != nil {
			return nil, err
		}

		logger.Info().Msg("converting cadius metadata to tags")
		if err := cadius.ConvertToXattrs(volumeDir, tg, false); err != nil {
			return nil, err
		}

		// Rearrangement runs against converted metadata, before any
		// text import.
		if opts.RearrangeConfig != "" {
			logger.Info().Str("config", opts.RearrangeConfig).Msg("rearranging files")
			mappings, err := config.LoadRearrangeConfig(opts.RearrangeConfig)
			if err != nil {
				return nil, err
			}
			moves, err := rearrange.Expand(volumeDir, mappings)
			if err != nil {
				return nil, err
			}
			if err := rearrange.Rearrange(volumeDir, moves); err != nil {
				return nil, err
			}
		}
	}

	if len(opts.TextMappings) > 0 {
		logger.Info().Int("count", len(opts.TextMappings)).Msg("importing text files")
		mappings := make([]TextMapping, 0, len(opts.TextMappings))
		for _, spec := range opts.TextMappings {
			m, err := ParseTextMapping(spec)
			if err != nil {
				return nil, err
			}
			mappings = append(mappings, m)
		}

		mode := textconv.Strict
		if opts.LossyText {
			mode = textconv.Lossy
		}
		if err := ImportTextFiles(mappings, volumeDir, mode, opts.Access, tg); err != nil {
			return nil, err
		}
	}

	var systemFile string
	if opts.SystemFile != "" {
		systemFile = filepath.Join(volumeDir, opts.SystemFile)
		ok, err := system.ValidateSystemFile(systemFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSystemNotFound,
				"system file not found: %s", systemFile)
		}
		if !ok {
			return nil, errors.Newf(errors.ErrSystemNotFound,
				"invalid system file (empty): %s", systemFile)
		}
	} else {
		logger.Info().Msg("discovering system file")
		found, err := system.Discover(volumeDir, tg)
		if err != nil {
			return nil, err
		}
		systemFile = found
	}

	result := &Result{VolumeDir: volumeDir, SystemFile: systemFile}

	if opts.NoRun {
		logger.Info().Msg("setup complete, emulator run skipped")
		return result, nil
	}

	err := runner.Run(runner.Options{
		Runner:          opts.Runner,
		ROM:             opts.ROM,
		SystemFile:      systemFile,
		VolumeRoot:      volumeRoot,
		Debug:           opts.Debug,
		MaxInstructions: opts.MaxInstructions,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
