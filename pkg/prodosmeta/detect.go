package prodosmeta

import "github.com/arthur-debert/p8prep/pkg/logging"

// Detect selects the metadata store for a volume root: the native
// xattr store when the root's filesystem supports user attributes,
// otherwise the sidecar-file store.
func Detect(root string) Tagger {
	logger := logging.GetLogger("prodosmeta")

	x := NewXattrTagger()
	if x.Supported(root) {
		logger.Debug().Str("root", root).Msg("using xattr metadata store")
		return x
	}

	logger.Info().Str("root", root).Msg("xattrs unavailable, using sidecar metadata store")
	return NewSidecarTagger()
}
