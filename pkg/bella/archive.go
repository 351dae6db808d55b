package bella

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

// WriteBSA writes the scene as .bsa text to path, atomically.
func WriteBSA(path string, s *Scene) error {
	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteScene(s); err != nil {
		return fmt.Errorf("serialize scene: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// WriteBSZ writes the scene as a .bsz archive: a zip holding one deflated
// .bsa entry named after the output stem.
func WriteBSZ(path string, s *Scene) error {
	var scene bytes.Buffer
	if err := NewWriter(&scene).WriteScene(s); err != nil {
		return fmt.Errorf("serialize scene: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	entry, err := zw.Create(stem + ".bsa")
	if err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	if _, err := entry.Write(scene.Bytes()); err != nil {
		return fmt.Errorf("write archive entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic writes data to a temp file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
