// Package dataset opens AS2ORG input sources: local files or http(s)
// URLs, plain or gzip-compressed, in UTF-8 or a legacy single-byte
// charset.
package dataset

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/TDiblik/as2org/as2org"
)

const (
	CharsetUTF8        = "utf-8"
	CharsetLatin1      = "latin1"
	CharsetWindows1252 = "windows-1252"
)

var charsets = map[string]encoding.Encoding{
	"":                 nil,
	CharsetUTF8:        nil,
	"utf8":             nil,
	CharsetLatin1:      charmap.ISO8859_1,
	"iso-8859-1":       charmap.ISO8859_1,
	CharsetWindows1252: charmap.Windows1252,
	"cp1252":           charmap.Windows1252,
}

// LookupCharset returns the decoder for name. A nil encoding means the
// input is read as is; the empty name selects UTF-8.
func LookupCharset(name string) (encoding.Encoding, error) {
	enc, ok := charsets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return enc, nil
}

// Options controls how Open acquires and decodes a source.
type Options struct {
	DownloadDir string
	Charset     string
	Logger      *log.Logger
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Open returns a reader over the decoded contents of src. Remote sources
// are downloaded into opts.DownloadDir first. Every failure matches
// as2org.ErrIO. Closing the reader releases all underlying handles.
func Open(ctx context.Context, src string, opts Options) (io.ReadCloser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	enc, err := LookupCharset(opts.Charset)
	if err != nil {
		return nil, as2org.IOError("unable to decode "+src, err)
	}

	path := src
	if IsRemote(src) {
		path, err = Download(ctx, src, opts.DownloadDir, logger)
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, as2org.IOError("unable to open file "+path, err)
	}
	rc := &stack{closers: []io.Closer{file}}

	buffered := bufio.NewReader(file)
	var r io.Reader = buffered
	if compressed, err := isGzip(buffered); err != nil {
		rc.Close()
		return nil, as2org.IOError("unable to read "+path, err)
	} else if compressed {
		logger.Printf("[INFO] Starting to unzip %s", path)
		gzipReader, err := gzip.NewReader(buffered)
		if err != nil {
			rc.Close()
			return nil, as2org.IOError("error creating gzip reader for "+path, err)
		}
		rc.closers = append(rc.closers, gzipReader)
		r = gzipReader
	}

	if enc != nil {
		logger.Printf("[DEBUG] Decoding %s as %s", path, opts.Charset)
		r = enc.NewDecoder().Reader(r)
	}
	rc.Reader = &ioErrReader{r: r}
	return rc, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

func isGzip(r *bufio.Reader) (bool, error) {
	head, err := r.Peek(len(gzipMagic))
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return head[0] == gzipMagic[0] && head[1] == gzipMagic[1], nil
}

// stack closes its closers in reverse order.
type stack struct {
	io.Reader
	closers []io.Closer
}

func (s *stack) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ioErrReader tags read failures (corrupt gzip streams, truncated
// downloads) as as2org.ErrIO.
type ioErrReader struct {
	r io.Reader
}

func (e *ioErrReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF {
		return n, as2org.IOError("unable to read input", err)
	}
	return n, err
}
