// Package fileio reads and writes documents, keeping their line ending and
// text encoding stable across a load and save.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"tedit/buffer"
	"tedit/log"
)

// MaxSize is the largest file Read accepts.
var MaxSize int64 = 100 * 1024 * 1024

// binaryProbe is how much of a file is checked for NUL bytes.
const binaryProbe = 8192

type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

func (l LineEnding) String() string {
	if l == CRLF {
		return "CRLF"
	}
	return "LF"
}

func (l LineEnding) eol() string {
	if l == CRLF {
		return "\r\n"
	}
	return "\n"
}

type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
	Latin1
)

var encodingNames = [...]string{"UTF-8", "UTF-8 BOM", "UTF-16 LE", "UTF-16 BE", "Latin-1"}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Latin1:
		return charmap.ISO8859_1
	default:
		return unicode.UTF8
	}
}

// Document is decoded file content. Content always uses "\n" line breaks.
type Document struct {
	Content    string
	LineEnding LineEnding
	Encoding   Encoding
	// Binary is set when the file holds NUL bytes. Such documents are shown
	// but not saved.
	Binary bool
}

type SaveOptions struct {
	TrimTrailingWhitespace bool
	InsertFinalNewline     bool
}

var errTooLarge = errors.New("file too large")

// Read loads and decodes the file at path. A missing file is reported with
// an error that matches both buffer.ErrIO and fs.ErrNotExist.
func Read(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, ioError("stat", path, err)
	}
	if info.Size() > MaxSize {
		return Document{}, ioError("read", path,
			fmt.Errorf("%w (%d MB, max %d MB)", errTooLarge, info.Size()>>20, MaxSize>>20))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, ioError("read", path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return Document{}, ioError("decode", path, err)
	}
	log.Debug(log.CatFile, "read", "path", path, "bytes", len(data),
		"encoding", doc.Encoding, "eol", doc.LineEnding, "binary", doc.Binary)
	return doc, nil
}

// Decode detects the encoding and line ending of raw file bytes.
func Decode(data []byte) (Document, error) {
	var doc Document
	doc.Encoding = detectEncoding(data)
	if doc.Encoding == UTF8 || doc.Encoding == Latin1 {
		doc.Binary = bytes.IndexByte(data[:min(len(data), binaryProbe)], 0) >= 0
	}

	text, err := doc.Encoding.codec().NewDecoder().Bytes(data)
	if err != nil {
		return Document{}, err
	}

	content := string(text)
	if strings.Contains(content, "\r\n") {
		doc.LineEnding = CRLF
	}
	doc.Content = buffer.NormalizeNewlines(content)
	return doc, nil
}

func detectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	case utf8.Valid(data):
		return UTF8
	default:
		return Latin1
	}
}

// Encode serializes doc with its line ending and encoding.
func Encode(doc Document, opts SaveOptions) ([]byte, error) {
	content := Prepare(doc.Content, opts)
	if doc.LineEnding == CRLF {
		content = strings.ReplaceAll(content, "\n", doc.LineEnding.eol())
	}
	return doc.Encoding.codec().NewEncoder().Bytes([]byte(content))
}

// Prepare applies the save options to content. The result is what the
// buffer should hold once the file is written.
func Prepare(content string, opts SaveOptions) string {
	if opts.TrimTrailingWhitespace {
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		content = strings.Join(lines, "\n")
	}
	if opts.InsertFinalNewline && content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content
}

// Write stores doc at path through a temporary file and a rename, then reads
// the file back and compares it with what was meant to be written.
func Write(path string, doc Document, opts SaveOptions) error {
	if doc.Binary {
		return ioError("write", path, errors.New("refusing to save a binary file"))
	}
	data, err := Encode(doc, opts)
	if err != nil {
		return ioError("encode", path, err)
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return ioError("write", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return ioError("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return ioError("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return ioError("write", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return ioError("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return ioError("rename", path, err)
	}

	back, err := os.ReadFile(path)
	if err != nil {
		return ioError("verify", path, err)
	}
	if !bytes.Equal(back, data) {
		log.Error(log.CatFile, "save verification failed", "path", path, "want", len(data), "got", len(back))
		return ioError("verify", path, fmt.Errorf("file on disk differs from buffer (%d != %d bytes)", len(back), len(data)))
	}
	log.Info(log.CatFile, "saved", "path", path, "bytes", len(data))
	return nil
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", buffer.ErrIO, op, path, err)
}
