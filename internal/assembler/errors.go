package assembler

import (
	"errors"
	"fmt"
)

// MissingArtifactError means an item looked transcribed but one of its
// transcript files is gone.
type MissingArtifactError struct {
	Path string
	Err  error
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("transcript set is incomplete, missing %s", e.Path)
}

func (e *MissingArtifactError) Unwrap() error {
	return e.Err
}

func IsMissingArtifactError(err error) bool {
	var target *MissingArtifactError
	return errors.As(err, &target)
}
