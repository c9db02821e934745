package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/midgard-world/pkg/encoding"
)

// reader reads little-endian values and keeps the first failure, so a parse
// step can issue several reads and check once.
type reader struct {
	r         *bytes.Reader
	truncated error
	err       error
}

func newReader(data []byte, truncated error) *reader {
	return &reader{r: bytes.NewReader(data), truncated: truncated}
}

// read decodes into v unless an earlier read failed.
func (r *reader) read(what string, v any) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r.r, binary.LittleEndian, v); err != nil {
		r.err = fmt.Errorf("%w: reading %s", r.truncated, what)
	}
}

// bytes reads exactly n raw bytes.
func (r *reader) bytes(what string, n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > r.r.Len() {
		r.err = fmt.Errorf("%w: reading %s", r.truncated, what)
		return nil
	}
	buf := make([]byte, n)
	_, _ = r.r.Read(buf)
	return buf
}

// fits reports whether count records of size bytes each remain. A
// zero-sized record still counts as one byte so corrupt counts stay bounded.
func (r *reader) fits(what string, count, size uint64) bool {
	if r.err != nil {
		return false
	}
	if size == 0 {
		size = 1
	}
	if remaining := uint64(r.r.Len()); count > remaining/size {
		r.err = fmt.Errorf("%w: %d %s exceed the remaining %d bytes", r.truncated, count, what, remaining)
		return false
	}
	return true
}

// cstring reads a fixed-size, NUL-padded EUC-KR string.
func (r *reader) cstring(what string, n int) string {
	return encoding.FixedString(r.bytes(what, n))
}
