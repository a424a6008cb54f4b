// Package bundle encodes archive file lists as deterministic TAR streams.
//
// The same file list always produces the same bytes: entries keep their
// input order and every header is normalized (mode 0644, uid/gid 0, no
// owner names, mtime at the Unix epoch).
package bundle

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/willief/AntTP-tutorial/model"
)

var epoch0 = time.Unix(0, 0).UTC()

var ErrInvalidPath = errors.New("bundle: invalid entry path")

// Export writes files to w as a TAR stream.
func Export(w io.Writer, files []model.ArchiveFile) error {
	tw := tar.NewWriter(w)
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		name := cleanTarPath(f.Path)
		if name == "" {
			_ = tw.Close()
			return fmt.Errorf("%w: %q", ErrInvalidPath, f.Path)
		}
		if _, dup := seen[name]; dup {
			_ = tw.Close()
			return fmt.Errorf("bundle: duplicate entry: %s", name)
		}
		seen[name] = struct{}{}
		if err := writeFile(tw, name, f.Content); err != nil {
			_ = tw.Close()
			return err
		}
	}
	return tw.Close()
}

// Marshal is Export into a byte slice.
func Marshal(files []model.ArchiveFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, files); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown skips non-regular entries such as directories and links.
	//
	// Default (false) is fail-closed: such entries cause Import to return an error.
	IgnoreUnknown bool
}

// Import reads a TAR stream back into a file list, in stream order.
func Import(r io.Reader) ([]model.ArchiveFile, error) {
	return ImportWithOptions(r, ImportOptions{})
}

func ImportWithOptions(r io.Reader, opts ImportOptions) ([]model.ArchiveFile, error) {
	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var files []model.ArchiveFile

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return nil, err
		}
		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return nil, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, h.Name)
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, h.Name)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("bundle: duplicate entry: %s", name)
		}
		seen[name] = struct{}{}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		files = append(files, model.ArchiveFile{Path: name, Content: payload})
	}
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		Uid:      0,
		Gid:      0,
		Uname:    "",
		Gname:    "",
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}

	parts := strings.Split(name, "/")
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return strings.Join(parts, "/")
}
