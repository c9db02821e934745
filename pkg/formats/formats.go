// Package formats provides parsers for the Ragnarok Online map files that
// describe the ground (GND) and the world settings (RSW). Multi-byte values
// are little-endian; names are fixed-size NUL-padded EUC-KR strings.
package formats
