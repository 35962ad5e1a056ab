package fs

import (
	"github.com/tchajed/goose/machine"
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/dev"
	"github.com/mit-pdos/simplefs/util"
)

// Super is the on-disk superblock: four u32s at the start of block 0,
// zero padding to the end of the block.
type Super struct {
	Magic       uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
}

func encodeSuper(sp Super) disk.Block {
	blk := make(disk.Block, disk.BlockSize)
	machine.UInt32Put(blk[0:], sp.Magic)
	machine.UInt32Put(blk[4:], sp.Blocks)
	machine.UInt32Put(blk[8:], sp.InodeBlocks)
	machine.UInt32Put(blk[12:], sp.Inodes)
	return blk
}

func decodeSuper(b disk.Block) Super {
	sp := Super{}
	sp.Magic = machine.UInt32Get(b[0:])
	sp.Blocks = machine.UInt32Get(b[4:])
	sp.InodeBlocks = machine.UInt32Get(b[8:])
	sp.Inodes = machine.UInt32Get(b[12:])
	return sp
}

func (sp Super) wellFormed() bool {
	if sp.Magic != common.MAGIC {
		return false
	}
	if uint64(sp.Inodes) != uint64(sp.InodeBlocks)*common.INODEBLK {
		return false
	}
	if uint64(sp.InodeBlocks) != util.RoundUp(uint64(sp.Blocks), 10) {
		return false
	}
	return true
}

// Format writes a fresh, empty file system to d: a superblock
// reserving a tenth of the device for the inode table, and zeroes
// everywhere else. The device stays unmounted.
func Format(d *dev.Device) error {
	if d.Mounted() {
		return ErrMounted
	}
	inodeBlocks := util.RoundUp(d.Size(), 10)
	sp := Super{
		Magic:       common.MAGIC,
		Blocks:      uint32(d.Size()),
		InodeBlocks: uint32(inodeBlocks),
		Inodes:      uint32(inodeBlocks * common.INODEBLK),
	}
	d.Write(common.SUPERBLOCK, encodeSuper(sp))
	zero := make(disk.Block, disk.BlockSize)
	for i := uint64(1); i < d.Size(); i++ {
		d.Write(i, zero)
	}
	util.DPrintf(1, "Format: %d blocks, %d inode blocks\n", sp.Blocks, sp.InodeBlocks)
	return nil
}
