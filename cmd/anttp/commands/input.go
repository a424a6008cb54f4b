package commands

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/willief/AntTP-tutorial/model"
)

// readInput reads a local file, or stdin for "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.in)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapError(model.ErrCodeInvalidRequest, "read input", err)
	}
	return b, nil
}

// readArchiveFiles turns --file values into archive entries. A value is either
// "stored/path=local/path" or a local path stored under its slash form.
func (a *app) readArchiveFiles(specs []string) ([]model.ArchiveFile, error) {
	files := make([]model.ArchiveFile, 0, len(specs))
	for _, spec := range specs {
		stored, local, ok := strings.Cut(spec, "=")
		if !ok {
			local = spec
			stored = filepath.ToSlash(spec)
		}
		b, err := a.readInput(local)
		if err != nil {
			return nil, err
		}
		files = append(files, model.ArchiveFile{Path: stored, Content: b})
	}
	return files, nil
}

// parseRecords parses --record values of the form key=address,type,ttl.
func parseRecords(specs []string) (model.PNRRecords, error) {
	records := make(model.PNRRecords, len(specs))
	for _, spec := range specs {
		key, rest, ok := strings.Cut(spec, "=")
		if !ok || key == "" {
			return nil, model.Errorf(model.ErrCodeInvalidRequest, "record %q: want key=address,type,ttl", spec)
		}
		parts := strings.Split(rest, ",")
		if len(parts) != 3 {
			return nil, model.Errorf(model.ErrCodeInvalidRequest, "record %q: want key=address,type,ttl", spec)
		}
		ttl, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			return nil, model.Errorf(model.ErrCodeInvalidRequest, "record %q: bad ttl: %v", spec, err)
		}
		records[key] = model.PNRRecord{Address: parts[0], RecordType: parts[1], TTL: uint32(ttl)}
	}
	return records, nil
}
