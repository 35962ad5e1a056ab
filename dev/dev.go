// dev wraps a raw block disk in the device contract the file system
// engine consumes: a fixed array of 4096-byte blocks with a
// single-holder mount flag.
package dev

import (
	"fmt"

	"github.com/tchajed/goose/machine/disk"
)

// Device is a bounds-checked view of a disk. Mounting is a one-way,
// single-holder flag; format and mount both require an unmounted
// device. Reads and writes are counted.
type Device struct {
	d       disk.Disk
	blocks  uint64
	mounted bool
	reads   uint64
	writes  uint64
}

// Open binds a device to d. Opening the same disk twice yields two
// devices with independent mount flags; the caller is responsible for
// not using both at once.
func Open(d disk.Disk) *Device {
	return &Device{d: d, blocks: d.Size()}
}

// NewMem opens a device over a fresh in-memory disk of blocks blocks.
func NewMem(blocks uint64) *Device {
	return Open(disk.NewMemDisk(blocks))
}

// NewFile opens a device over a file-backed disk, creating or
// truncating the file to the requested size as needed.
func NewFile(path string, blocks uint64) (*Device, error) {
	d, err := newFileDisk(path, blocks)
	if err != nil {
		return nil, err
	}
	return Open(d), nil
}

// Size reports the total block count.
func (d *Device) Size() uint64 {
	return d.blocks
}

func (d *Device) Mounted() bool {
	return d.mounted
}

// Mount marks the device as held by a file system.
func (d *Device) Mount() {
	d.mounted = true
}

func (d *Device) Read(a uint64) disk.Block {
	if a >= d.blocks {
		panic(fmt.Errorf("dev: out-of-bounds read at %v", a))
	}
	d.reads++
	return d.d.Read(a)
}

func (d *Device) Write(a uint64, v disk.Block) {
	if uint64(len(v)) != disk.BlockSize {
		panic(fmt.Errorf("dev: write of %d bytes is not block-sized", len(v)))
	}
	if a >= d.blocks {
		panic(fmt.Errorf("dev: out-of-bounds write at %v", a))
	}
	d.writes++
	d.d.Write(a, v)
}

func (d *Device) Reads() uint64 {
	return d.reads
}

func (d *Device) Writes() uint64 {
	return d.writes
}
