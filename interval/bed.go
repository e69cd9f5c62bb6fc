package interval

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Entry is one candidate interval, with 0-based half-open coordinates.
type Entry struct {
	Chrom string
	Start int
	End   int
}

// ReadBED reads the first three columns of a BED file, transparently
// decompressing .gz/.bgz inputs.  Header, comment, and blank lines are
// skipped; a row with fewer than three columns or non-numeric coordinates is
// an error.
func ReadBED(path string) (entries []Entry, err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	return readBED(reader, path)
}

func readBED(reader io.Reader, path string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(reader)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) < 3 {
			return nil, errors.Errorf("%s:%d: BED row needs at least 3 columns, got %d", path, lineno, len(cols))
		}
		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad start position", path, lineno)
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad end position", path, lineno)
		}
		if start < 0 || end < start {
			return nil, errors.Errorf("%s:%d: invalid interval [%d, %d)", path, lineno, start, end)
		}
		entries = append(entries, Entry{Chrom: cols[0], Start: start, End: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return entries, nil
}
