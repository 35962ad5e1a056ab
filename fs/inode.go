package fs

import (
	"github.com/tchajed/goose/machine"
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
)

// inode is one 32-byte slot of the inode table: validity, byte size,
// five direct block pointers, one indirect pointer. A zero pointer
// means "no block".
type inode struct {
	valid    uint32
	size     uint32
	direct   []uint32
	indirect uint32
}

func mkInode() inode {
	return inode{valid: 1, direct: make([]uint32, common.NDIRECT)}
}

func decodeInode(blk disk.Block, slot uint64) inode {
	b := blk[slot*common.INODESZ:]
	ino := inode{}
	ino.valid = machine.UInt32Get(b[0:])
	ino.size = machine.UInt32Get(b[4:])
	ino.direct = make([]uint32, common.NDIRECT)
	for i := range ino.direct {
		ino.direct[i] = machine.UInt32Get(b[8+uint64(i)*4:])
	}
	ino.indirect = machine.UInt32Get(b[8+common.NDIRECT*4:])
	return ino
}

func encodeInode(ino inode, blk disk.Block, slot uint64) {
	b := blk[slot*common.INODESZ:]
	machine.UInt32Put(b[0:], ino.valid)
	machine.UInt32Put(b[4:], ino.size)
	for i, bn := range ino.direct {
		machine.UInt32Put(b[8+uint64(i)*4:], bn)
	}
	machine.UInt32Put(b[8+common.NDIRECT*4:], ino.indirect)
}

// inodeBnum maps an inumber to the block of the inode table holding
// its slot. The table starts right after the superblock.
func inodeBnum(inum common.Inum) common.Bnum {
	return inum/common.INODEBLK + 1
}

func (fs *FileSystem) loadInode(inum common.Inum) (inode, error) {
	if inum >= fs.ninodes {
		return inode{}, ErrBadInum
	}
	blk := fs.d.Read(inodeBnum(inum))
	return decodeInode(blk, inum%common.INODEBLK), nil
}

func (fs *FileSystem) saveInode(inum common.Inum, ino inode) error {
	if inum >= fs.ninodes {
		return ErrBadInum
	}
	bn := inodeBnum(inum)
	blk := fs.d.Read(bn)
	encodeInode(ino, blk, inum%common.INODEBLK)
	fs.d.Write(bn, blk)
	return nil
}

// ptrGet and ptrPut access one u32 slot of a pointer block in place.

func ptrGet(blk disk.Block, slot uint64) uint32 {
	return machine.UInt32Get(blk[slot*4:])
}

func ptrPut(blk disk.Block, slot uint64, bn uint32) {
	machine.UInt32Put(blk[slot*4:], bn)
}
