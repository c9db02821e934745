package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testFile struct {
	name    string
	content []byte
	flags   uint8
}

// writeTestGRF writes a GRF 0x200 archive holding files and returns its path.
func writeTestGRF(t *testing.T, files []testFile) string {
	t.Helper()

	var body, table bytes.Buffer
	for _, f := range files {
		var compressed bytes.Buffer
		w := zlib.NewWriter(&compressed)
		w.Write(f.content)
		w.Close()

		aligned := compressed.Len()
		if aligned%8 != 0 {
			aligned += 8 - aligned%8
		}
		offset := uint32(body.Len())
		body.Write(compressed.Bytes())
		body.Write(make([]byte, aligned-compressed.Len()))

		table.WriteString(f.name)
		table.WriteByte(0)
		binary.Write(&table, binary.LittleEndian, uint32(compressed.Len()))
		binary.Write(&table, binary.LittleEndian, uint32(aligned))
		binary.Write(&table, binary.LittleEndian, uint32(len(f.content)))
		flags := f.flags
		if flags == 0 {
			flags = flagFile
		}
		table.WriteByte(flags)
		binary.Write(&table, binary.LittleEndian, offset)
	}

	var compressedTable bytes.Buffer
	w := zlib.NewWriter(&compressedTable)
	w.Write(table.Bytes())
	w.Close()

	var out bytes.Buffer
	header := Header{
		TableOffset: uint32(body.Len()),
		FileCount:   uint32(len(files)) + 7,
		Version:     version200,
	}
	copy(header.Magic[:], grfMagic)
	binary.Write(&out, binary.LittleEndian, header)
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, uint32(compressedTable.Len()))
	binary.Write(&out, binary.LittleEndian, uint32(table.Len()))
	out.Write(compressedTable.Bytes())

	path := filepath.Join(t.TempDir(), "test.grf")
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test GRF: %v", err)
	}
	return path
}

func openTestGRF(t *testing.T) *Archive {
	t.Helper()
	path := writeTestGRF(t, []testFile{
		{name: "data\\test.txt", content: []byte("Hello, GRF!")},
		{name: "data\\Prontera.GND", content: bytes.Repeat([]byte("GRGN"), 64)},
		{name: "data\\texture\\\xbf\xf6\xc5\xcd\\water000.jpg", content: []byte("jpeg")},
		{name: "data\\texture", flags: 0x02},
	})
	archive, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestList(t *testing.T) {
	archive := openTestGRF(t)

	want := []string{"data/prontera.gnd", "data/test.txt", "data/texture/워터/water000.jpg"}
	got := archive.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestContains(t *testing.T) {
	archive := openTestGRF(t)

	tests := []struct {
		path string
		want bool
	}{
		{"data/test.txt", true},
		{"DATA\\TEST.TXT", true},
		{"data/texture/워터/water000.jpg", true},
		{"data/texture", false},
		{"data/missing.txt", false},
	}
	for _, tt := range tests {
		if got := archive.Contains(tt.path); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRead(t *testing.T) {
	archive := openTestGRF(t)

	data, err := archive.Read("data/test.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "Hello, GRF!" {
		t.Errorf("unexpected content %q", data)
	}

	data, err = archive.Read("data/prontera.gnd")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(data) != 256 || string(data[:4]) != "GRGN" {
		t.Errorf("unexpected GND content (%d bytes)", len(data))
	}

	if _, err := archive.Read("data/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.grf")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.grf")
	os.WriteFile(bad, make([]byte, 64), 0o644)
	if _, err := Open(bad); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}
