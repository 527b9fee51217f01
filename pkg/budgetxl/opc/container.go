// Package opc gives raw access to the zip container wrapping a
// document's internal XML parts. It knows nothing about spreadsheet
// semantics: entries are opaque byte streams addressed by name.
package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound indicates the container file does not exist.
var ErrNotFound = errors.New("opc: file not found")

// ErrNotContainer indicates the file is not a valid zip container.
var ErrNotContainer = errors.New("opc: not a zip container")

// ErrEntryMissing indicates a named internal entry is absent.
var ErrEntryMissing = errors.New("opc: entry missing")

// Container is an opened document container. It is not safe for
// concurrent use, and two containers must not operate on the same path
// at once; serializing access to a given file is the caller's job.
type Container struct {
	path string
	r    *zip.ReadCloser
}

// Open opens the container at path.
func Open(path string) (*Container, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, path)
	}
	return &Container{path: path, r: r}, nil
}

// Path returns the on-disk location the container was opened from.
func (c *Container) Path() string {
	return c.path
}

// Entries lists the internal entry names in archive order.
func (c *Container) Entries() []string {
	names := make([]string, len(c.r.File))
	for i, f := range c.r.File {
		names[i] = f.Name
	}
	return names
}

// ReadEntry returns the decompressed bytes of a named entry.
func (c *Container) ReadEntry(name string) ([]byte, error) {
	f := c.find(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryMissing, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ReplaceEntry rewrites one existing entry and swaps the container on
// disk: every other entry is copied raw into a sibling temp file
// (compressed bytes untouched), the replacement is written, and the
// temp is renamed over the original. A failure mid-write removes the
// temp and leaves the original as it was.
func (c *Container) ReplaceEntry(name string, data []byte) error {
	if c.find(name) == nil {
		return fmt.Errorf("%w: %s", ErrEntryMissing, name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".budgetxl-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := c.writeReplaced(tmp, name, data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// The reader holds the original open; release it before the swap.
	c.r.Close()
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		if r, rerr := zip.OpenReader(c.path); rerr == nil {
			c.r = r
		}
		return err
	}
	r, err := zip.OpenReader(c.path)
	if err != nil {
		return err
	}
	c.r = r
	return nil
}

// Close releases the underlying reader.
func (c *Container) Close() error {
	return c.r.Close()
}

func (c *Container) find(name string) *zip.File {
	for _, f := range c.r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (c *Container) writeReplaced(w io.Writer, name string, data []byte) error {
	zw := zip.NewWriter(w)
	for _, f := range c.r.File {
		if f.Name == name {
			ew, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
			if err != nil {
				return err
			}
			if _, err := ew.Write(data); err != nil {
				return err
			}
			continue
		}
		if err := zw.Copy(f); err != nil {
			return err
		}
	}
	return zw.Close()
}
