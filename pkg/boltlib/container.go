package boltlib

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/beholdnec/bltview/internal/cursor"
)

// On-disk layout. All integers are big-endian.
//
//	file header (16 bytes):
//	  magic "BOLT" u32, version u16, directory count u16,
//	  recorded file size u32, reserved u32
//	directory entry (16 bytes, table starts at offset 16):
//	  tag name [4]byte, resource count u32, resource table offset u32,
//	  decompression buffer size u32
//	resource entry (36 bytes):
//	  id u16, type u16, payload offset u32, payload size u32,
//	  reserved u32, name [20]byte NUL-padded
const (
	magicBOLT = 0x424F4C54

	fileHeaderSize = 16
	dirEntrySize   = 16
	resEntrySize   = 36

	dirTagLen  = 4
	resNameLen = 20
)

// Resource describes one entry of a directory's resource table. The id
// is unique across the whole container and is the external lookup key;
// the name is a display label with no uniqueness guarantee.
type Resource struct {
	ID     uint16
	Name   string
	Type   uint16
	Offset uint32
	Size   uint32
}

// Directory is a named group of resources in file order.
type Directory struct {
	Name string

	// CompBufSize is the engine's decompression scratch-buffer size for
	// this directory. It is surfaced for display and not interpreted.
	CompBufSize uint32

	Resources []Resource
}

// Container is a parsed BLT file. Directory and resource descriptors
// are built once at open time and never mutated; payloads are re-read
// from the source on every load. Independent loads may run
// concurrently when the source supports concurrent ReadAt.
type Container struct {
	src     io.ReaderAt
	size    int64
	version uint16
	dirs    []Directory
	index   map[uint16]Resource
}

// Resource names predate Unicode; the era's tooling wrote them in
// Windows-1252.
var nameDecoder = charmap.Windows1252.NewDecoder()

func decodeName(raw []byte) string {
	trimmed := strings.TrimRight(string(raw), "\x00 ")
	decoded, err := nameDecoder.String(trimmed)
	if err != nil {
		return trimmed
	}
	return decoded
}

// readAt reads exactly n bytes at off, mapping short reads to
// ErrTruncatedInput.
func (ct *Container) readAt(off int64, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := ct.src.ReadAt(buf, off); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTruncatedInput, n, off)
		}
		return nil, err
	}
	return buf, nil
}

func parseContainer(src io.ReaderAt, size int64) (*Container, error) {
	ct := &Container{
		src:   src,
		size:  size,
		index: make(map[uint16]Resource),
	}

	hdr, err := ct.readAt(0, fileHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("read file header: %w", err)
	}

	c := cursor.New(hdr)
	magic, _ := c.ReadU32()
	version, _ := c.ReadU16()
	dirCount, _ := c.ReadU16()
	recordedSize, err := c.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("parse file header: %w", err)
	}

	if magic != magicBOLT {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", ErrMalformedContainer, magic)
	}
	if int64(recordedSize) != size {
		return nil, fmt.Errorf("%w: recorded size %d, actual %d",
			ErrMalformedContainer, recordedSize, size)
	}
	ct.version = version

	dirTable, err := ct.readAt(fileHeaderSize, int(dirCount)*dirEntrySize)
	if err != nil {
		return nil, fmt.Errorf("read directory table: %w", err)
	}

	dc := cursor.New(dirTable)
	ct.dirs = make([]Directory, 0, dirCount)
	for i := 0; i < int(dirCount); i++ {
		tag, _ := dc.Slice(dirTagLen)
		resCount, _ := dc.ReadU32()
		tableOffset, _ := dc.ReadU32()
		compBufSize, err := dc.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("parse directory entry %d: %w", i, err)
		}

		dir := Directory{
			Name:        decodeName(tag),
			CompBufSize: compBufSize,
		}

		tableLen := int64(resCount) * resEntrySize
		if int64(tableOffset)+tableLen > size {
			return nil, fmt.Errorf("%w: directory %q resource table [%d, %d) past end of file (%d bytes)",
				ErrMalformedContainer, dir.Name, tableOffset, int64(tableOffset)+tableLen, size)
		}

		resTable, err := ct.readAt(int64(tableOffset), int(tableLen))
		if err != nil {
			return nil, fmt.Errorf("read resource table of %q: %w", dir.Name, err)
		}

		rc := cursor.New(resTable)
		dir.Resources = make([]Resource, 0, resCount)
		for j := 0; j < int(resCount); j++ {
			id, _ := rc.ReadU16()
			typ, _ := rc.ReadU16()
			offset, _ := rc.ReadU32()
			resSize, _ := rc.ReadU32()
			rc.ReadU32() // reserved
			name, err := rc.Slice(resNameLen)
			if err != nil {
				return nil, fmt.Errorf("parse resource entry %d of %q: %w", j, dir.Name, err)
			}

			res := Resource{
				ID:     id,
				Name:   decodeName(name),
				Type:   typ,
				Offset: offset,
				Size:   resSize,
			}

			if int64(res.Offset)+int64(res.Size) > size {
				return nil, fmt.Errorf("%w: resource %04X payload [%d, %d) past end of file (%d bytes)",
					ErrMalformedContainer, res.ID, res.Offset, int64(res.Offset)+int64(res.Size), size)
			}
			if _, dup := ct.index[res.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate resource id %04X", ErrMalformedContainer, res.ID)
			}

			ct.index[res.ID] = res
			dir.Resources = append(dir.Resources, res)
		}

		ct.dirs = append(ct.dirs, dir)
	}

	return ct, nil
}

// FileSize returns the total byte length of the opened source. Platform
// detection (DetectGame) is keyed on this value.
func (ct *Container) FileSize() int64 { return ct.size }

// Version returns the container format version from the file header.
func (ct *Container) Version() uint16 { return ct.version }

// Directories returns the container's directories in file order. The
// returned slice is shared and must not be modified.
func (ct *Container) Directories() []Directory { return ct.dirs }

// NumResources returns the total resource count across all directories.
func (ct *Container) NumResources() int { return len(ct.index) }

// FindResource returns the descriptor for id without loading its
// payload.
func (ct *Container) FindResource(id uint16) (Resource, error) {
	res, ok := ct.index[id]
	if !ok {
		return Resource{}, fmt.Errorf("%w: id %04X", ErrNotFound, id)
	}
	return res, nil
}

// LoadResource reads the payload of the resource with the given id.
// The payload is read fresh from the source on every call; callers may
// cache the returned bytes if needed.
func (ct *Container) LoadResource(id uint16) (Resource, []byte, error) {
	res, err := ct.FindResource(id)
	if err != nil {
		return Resource{}, nil, err
	}
	data, err := ct.readAt(int64(res.Offset), int(res.Size))
	if err != nil {
		return Resource{}, nil, fmt.Errorf("load resource %04X: %w", id, err)
	}
	return res, data, nil
}
