// fs is an inode-based file system engine over a block device: a
// superblock, an inode table covering a tenth of the device, and data
// blocks reached through five direct pointers plus one single-indirect
// pointer block per inode. Files are anonymous and addressed by
// inumber.
package fs

import (
	"errors"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/dev"
	"github.com/mit-pdos/simplefs/util"
)

var (
	ErrMounted   = errors.New("fs: device is already mounted")
	ErrBadSuper  = errors.New("fs: superblock is not well-formed")
	ErrBadInum   = errors.New("fs: no such inode")
	ErrFreeInode = errors.New("fs: inode is not allocated")
	ErrNoInodes  = errors.New("fs: out of inodes")
	ErrBadOffset = errors.New("fs: offset past end of file")
	ErrHole      = errors.New("fs: file has a hole")
)

// FileSystem is a mounted engine. It holds the device for the lifetime
// of the mount and exclusively owns the free map.
type FileSystem struct {
	d           *dev.Device
	blocks      uint64
	inodeBlocks uint64
	ninodes     uint64
	bitmap      []bool // true = free
}

// Mount validates the superblock, takes the device, and rebuilds the
// free map by scanning every valid inode. On failure the device is
// left unmounted.
func Mount(d *dev.Device) (*FileSystem, error) {
	if d.Mounted() {
		return nil, ErrMounted
	}
	sp := decodeSuper(d.Read(common.SUPERBLOCK))
	if !sp.wellFormed() {
		return nil, ErrBadSuper
	}
	d.Mount()
	fs := &FileSystem{
		d:           d,
		blocks:      uint64(sp.Blocks),
		inodeBlocks: uint64(sp.InodeBlocks),
		ninodes:     uint64(sp.Inodes),
		bitmap:      make([]bool, sp.Blocks),
	}
	fs.buildBitmap()
	util.DPrintf(1, "Mount: %d blocks, %d inodes, %d free\n",
		fs.blocks, fs.ninodes, fs.NumFree())
	return fs, nil
}

// NInode reports the size of the inode table.
func (fs *FileSystem) NInode() uint64 {
	return fs.ninodes
}

// Create claims the lowest free inode slot and returns its inumber.
// No data blocks are allocated; the new file is empty.
func (fs *FileSystem) Create() (common.Inum, error) {
	for bn := uint64(1); bn <= fs.inodeBlocks; bn++ {
		blk := fs.d.Read(bn)
		for slot := uint64(0); slot < common.INODEBLK; slot++ {
			if decodeInode(blk, slot).valid != 0 {
				continue
			}
			encodeInode(mkInode(), blk, slot)
			fs.d.Write(bn, blk)
			inum := (bn-1)*common.INODEBLK + slot
			util.DPrintf(1, "Create: inum %d\n", inum)
			return inum, nil
		}
	}
	return 0, ErrNoInodes
}

// Remove releases every block the inode references, then zeroes and
// persists the inode slot.
func (fs *FileSystem) Remove(inum common.Inum) error {
	ino, err := fs.loadInode(inum)
	if err != nil {
		return err
	}
	if ino.valid == 0 {
		return ErrFreeInode
	}
	for i, ptr := range ino.direct {
		if ptr != 0 {
			fs.freeBlock(common.Bnum(ptr))
		}
		ino.direct[i] = 0
	}
	if ino.indirect != 0 {
		fs.freeBlock(common.Bnum(ino.indirect))
		ptrs := fs.d.Read(uint64(ino.indirect))
		for i := uint64(0); i < common.NINDIRECT; i++ {
			if ptr := ptrGet(ptrs, i); ptr != 0 {
				fs.freeBlock(common.Bnum(ptr))
			}
		}
	}
	ino.valid = 0
	ino.size = 0
	ino.indirect = 0
	util.DPrintf(1, "Remove: inum %d\n", inum)
	return fs.saveInode(inum, ino)
}

// Stat reports the logical size of the file at inum.
func (fs *FileSystem) Stat(inum common.Inum) (uint64, error) {
	ino, err := fs.loadInode(inum)
	if err != nil {
		return 0, err
	}
	if ino.valid == 0 {
		return 0, ErrFreeInode
	}
	return uint64(ino.size), nil
}
