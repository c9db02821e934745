// Package grf reads Ragnarok Online GRF archives.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/midgard-world/pkg/encoding"
)

// GRF errors.
var (
	ErrInvalidMagic       = errors.New("invalid GRF magic")
	ErrUnsupportedVersion = errors.New("unsupported GRF version")
	ErrCorruptTable       = errors.New("corrupt GRF file table")
	ErrNotFound           = errors.New("file not found in GRF")
	ErrEncrypted          = errors.New("encrypted GRF entries are not supported")
)

const (
	grfMagic   = "Master of Magic"
	headerSize = 46
	version200 = 0x200

	flagFile      = 0x01
	flagEncrypted = 0x02 | 0x04
)

// Archive is an opened GRF archive. Reads are safe for concurrent use.
type Archive struct {
	file    *os.File
	header  Header
	entries map[string]*Entry
}

// Header is the fixed GRF file header.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry describes one file in the archive.
type Entry struct {
	Name             string // UTF-8, normalized
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Open opens a GRF archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	a := &Archive{file: file, entries: make(map[string]*Entry)}
	if err := a.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := a.readFileTable(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading file table: %w", err)
	}
	return a, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

func (a *Archive) readHeader() error {
	r := io.NewSectionReader(a.file, 0, headerSize)
	if err := binary.Read(r, binary.LittleEndian, &a.header); err != nil {
		return err
	}
	if string(a.header.Magic[:]) != grfMagic {
		return ErrInvalidMagic
	}
	if a.header.Version != version200 {
		return fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readFileTable() error {
	offset := int64(a.header.TableOffset) + headerSize
	var sizes [2]uint32 // compressed, uncompressed
	if err := binary.Read(io.NewSectionReader(a.file, offset, 8), binary.LittleEndian, &sizes); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}

	zr, err := zlib.NewReader(io.NewSectionReader(a.file, offset+8, int64(sizes[0])))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	defer zr.Close()

	table := make([]byte, sizes[1])
	if _, err := io.ReadFull(zr, table); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}

	count := a.header.FileCount - a.header.Seed - 7
	pos := 0
	for i := uint32(0); i < count; i++ {
		end := bytes.IndexByte(table[pos:], 0)
		if end < 0 || pos+end+1+17 > len(table) {
			return fmt.Errorf("%w: entry %d", ErrCorruptTable, i)
		}
		name := encoding.EUCKRToUTF8(table[pos : pos+end])
		pos += end + 1

		e := &Entry{
			Name:             encoding.NormalizePath(name),
			CompressedSize:   binary.LittleEndian.Uint32(table[pos:]),
			AlignedSize:      binary.LittleEndian.Uint32(table[pos+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(table[pos+8:]),
			Flags:            table[pos+12],
			Offset:           binary.LittleEndian.Uint32(table[pos+13:]),
		}
		pos += 17

		// directories and other non-file entries are skipped
		if e.Flags&flagFile != 0 {
			a.entries[e.Name] = e
		}
	}
	return nil
}

// List returns all file paths in the archive, sorted.
func (a *Archive) List() []string {
	names := make([]string, 0, len(a.entries))
	for name := range a.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether path names a file in the archive.
func (a *Archive) Contains(path string) bool {
	_, ok := a.entries[encoding.NormalizePath(path)]
	return ok
}

// Read returns the uncompressed contents of a file.
func (a *Archive) Read(path string) ([]byte, error) {
	e, ok := a.entries[encoding.NormalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if e.Flags&flagEncrypted != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}

	data := io.NewSectionReader(a.file, int64(e.Offset)+headerSize, int64(e.CompressedSize))
	if e.CompressedSize == e.UncompressedSize {
		buf := make([]byte, e.UncompressedSize)
		if _, err := io.ReadFull(data, buf); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return buf, nil
	}

	zr, err := zlib.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer zr.Close()

	buf := make([]byte, e.UncompressedSize)
	if _, err := io.ReadFull(zr, buf); err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return buf, nil
}
