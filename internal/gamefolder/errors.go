package gamefolder

import (
	"errors"
	"fmt"
)

// ErrSameFile is returned when a save would be copied onto itself.
var ErrSameFile = errors.New("source and destination are the same file")

// FolderScanError reports a subfolder that could not be listed.
// The matching collection is left empty.
type FolderScanError struct {
	Dir string
	Err error
}

func (e *FolderScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Dir, e.Err)
}

func (e *FolderScanError) Unwrap() error { return e.Err }

// FileCopyError reports a failed apply-save copy
type FileCopyError struct {
	Src string
	Dst string
	Err error
}

func (e *FileCopyError) Error() string {
	return fmt.Sprintf("copy %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *FileCopyError) Unwrap() error { return e.Err }

// SelectionError reports a file or scenario index outside the loaded collection
type SelectionError struct {
	Kind      Kind
	FileIndex int
	Slot      int
	Reason    string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select %s file %d slot %d: %s", e.Kind, e.FileIndex, e.Slot, e.Reason)
}
