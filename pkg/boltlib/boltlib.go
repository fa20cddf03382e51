// Package boltlib reads BLT resource containers, the asset archives
// used by Funhouse-engine titles such as Merlin's Apprentice and
// Labyrinth of Crete.
//
// A BLT file is a flat directory table; each directory owns a table of
// typed, identified resources located by absolute file offset. Image
// resources carry a small header followed by CLUT7 (raw indexed) or
// RL7 (run-length) pixel data.
//
// Example usage:
//
//	ct, err := boltlib.OpenFile("BOLTLIB.BLT")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, data, err := ct.LoadResource(0x0118)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hdr, pix, err := boltlib.DecodeImage(data)
package boltlib

import (
	"bytes"
	"io"
	"os"
)

// Open parses a BLT container from a random-access source. The size
// parameter is the total byte length of the source; it is exposed via
// FileSize and used by callers for platform detection.
//
// The source must support concurrent ReadAt calls for the container to
// be usable from multiple goroutines.
func Open(src io.ReaderAt, size int64) (*Container, error) {
	return parseContainer(src, size)
}

// OpenFile reads the named file fully into memory and parses it as a
// BLT container. The returned container holds no open file handle.
func OpenFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Open(bytes.NewReader(data), int64(len(data)))
}
