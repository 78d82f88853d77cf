package materializer

import (
	"errors"
	"fmt"
)

// ManifestError means the playlist manifest could not be fetched or parsed.
type ManifestError struct {
	Ref string
	Err error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("get playlist info for %s: %v", e.Ref, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// DownloadError is a failure scoped to a single playlist item.
type DownloadError struct {
	ItemID string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download video %s: %v", e.ItemID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

func IsManifestError(err error) bool {
	var target *ManifestError
	return errors.As(err, &target)
}

func IsDownloadError(err error) bool {
	var target *DownloadError
	return errors.As(err, &target)
}
