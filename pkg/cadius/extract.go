package cadius

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/paths"
)

// Resolve validates the cadius executable: an explicit path (anything
// containing a separator) must be an executable file, a bare name is
// looked up on PATH.
func Resolve(pathOrName string) (string, error) {
	if err := paths.ValidateSafePath(pathOrName, "--cadius"); err != nil {
		return "", err
	}

	if strings.ContainsRune(pathOrName, os.PathSeparator) {
		info, err := os.Stat(pathOrName)
		if err != nil || info.IsDir() || info.Mode().Perm()&0111 == 0 {
			return "", errors.Newf(errors.ErrCadiusNotFound,
				"cadius executable not found or not executable: %s", pathOrName).
				WithDetail("path", pathOrName)
		}
		return pathOrName, nil
	}

	resolved, err := exec.LookPath(pathOrName)
	if err != nil {
		return "", errors.Newf(errors.ErrCadiusNotFound,
			"cadius command not found: %s; install cadius or pass --cadius with the executable path",
			pathOrName).WithDetail("command", pathOrName)
	}
	return resolved, nil
}

// Extract unpacks a disk image into outDir using cadius. With a
// template, the template is split into argv tokens and each token has
// its {cadius}, {image}, and {out} placeholders substituted. Without
// one, the known cadius invocations are tried in order and extraction
// counts as successful once the output directory is non-empty.
func Extract(cadiusPath, image, outDir, template string) error {
	logger := logging.GetLogger("cadius")

	if err := paths.ValidateSafePath(image, "--disk-image"); err != nil {
		return err
	}
	if err := paths.ValidateSafePath(outDir, "work directory"); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "creating output directory %s", outDir)
	}

	if template != "" {
		replacer := strings.NewReplacer("{cadius}", cadiusPath, "{image}", image, "{out}", outDir)
		tokens := strings.Fields(template)
		args := make([]string, len(tokens))
		for i, token := range tokens {
			args[i] = replacer.Replace(token)
		}
		if len(args) == 0 {
			return errors.New(errors.ErrExtractFailed, "extraction command template is empty")
		}

		logging.LogCommand(args[0], args[1:])
		var stderr bytes.Buffer
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed,
				"disk image extraction failed: %s: %s",
				strings.Join(args, " "), strings.TrimSpace(stderr.String())).
				WithDetail("image", image)
		}
		return nil
	}

	invocations := [][]string{
		{cadiusPath, "EXTRACTVOLUME", image, outDir},
		{cadiusPath, "EXTRACT", image, "/", outDir},
	}

	var lastErr string
	for _, argv := range invocations {
		logging.LogCommand(argv[0], argv[1:])
		var stderr bytes.Buffer
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stderr = &stderr
		runErr := cmd.Run()
		if runErr == nil {
			entries, err := os.ReadDir(outDir)
			if err != nil {
				return errors.Wrapf(err, errors.ErrExtractFailed,
					"output directory %s exists but is not readable", outDir)
			}
			if len(entries) > 0 {
				logger.Info().Str("image", image).Str("out", outDir).Msg("disk image extracted")
				return nil
			}
		}
		lastErr = strings.TrimSpace(stderr.String())
		if lastErr == "" && runErr != nil {
			lastErr = runErr.Error()
		}
	}

	return errors.Newf(errors.ErrExtractFailed,
		"failed to extract disk image with any known cadius command pattern; "+
			"last error: %s; try --extract-cmd with a custom template", lastErr).
		WithDetail("image", image)
}
