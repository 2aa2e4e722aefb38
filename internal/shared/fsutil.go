package shared

import (
	"fmt"
	"os"
)

// ReplaceFileVerified swaps original for replacement. The replacement must
// already exist and be non-empty before the original is touched; a failure at
// any point leaves the original in place. This is the atomicity boundary for
// the metadata rewrite: a crash leaves either the original or the verified
// replacement, never neither.
func ReplaceFileVerified(original, replacement string) error {
	info, err := os.Stat(replacement)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReplacementMissing, err)
	}
	if info.Size() == 0 {
		_ = os.Remove(replacement)
		return fmt.Errorf("%w: replacement is empty", ErrReplacementMissing)
	}

	if err := os.Remove(original); err != nil {
		return fmt.Errorf("failed to remove original: %w", err)
	}
	if err := os.Rename(replacement, original); err != nil {
		return fmt.Errorf("failed to move replacement into place: %w", err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
