package fs

import (
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/util"
)

// The free map is never persisted. Every mount rederives it from the
// inode table, so it is authoritative only in memory.
func (fs *FileSystem) buildBitmap() {
	for i := range fs.bitmap {
		fs.bitmap[i] = true
	}
	fs.bitmap[common.SUPERBLOCK] = false
	for i := uint64(1); i <= fs.inodeBlocks; i++ {
		fs.bitmap[i] = false
	}
	for bn := uint64(1); bn <= fs.inodeBlocks; bn++ {
		blk := fs.d.Read(bn)
		for slot := uint64(0); slot < common.INODEBLK; slot++ {
			ino := decodeInode(blk, slot)
			if ino.valid == 0 {
				continue
			}
			for _, ptr := range ino.direct {
				if ptr != 0 {
					fs.bitmap[ptr] = false
				}
			}
			if ino.indirect == 0 {
				continue
			}
			fs.bitmap[ino.indirect] = false
			ptrs := fs.d.Read(uint64(ino.indirect))
			for i := uint64(0); i < common.NINDIRECT; i++ {
				if ptr := ptrGet(ptrs, i); ptr != 0 {
					fs.bitmap[ptr] = false
				}
			}
		}
	}
}

// allocBlock claims the first free block, zero-fills it on disk, and
// returns its number, or NULLBNUM when the device is full. First-fit
// from block 0 makes the allocation order deterministic, and the
// zero-fill means a fresh pointer block decodes as all holes.
func (fs *FileSystem) allocBlock() common.Bnum {
	for i, free := range fs.bitmap {
		if !free {
			continue
		}
		fs.bitmap[i] = false
		fs.d.Write(uint64(i), make(disk.Block, disk.BlockSize))
		util.DPrintf(5, "allocBlock: %d\n", i)
		return common.Bnum(i)
	}
	return common.NULLBNUM
}

func (fs *FileSystem) freeBlock(bn common.Bnum) {
	if bn == common.NULLBNUM {
		return
	}
	fs.bitmap[bn] = true
}

// NumFree reports how many blocks the allocator could still hand out.
func (fs *FileSystem) NumFree() uint64 {
	n := uint64(0)
	for _, free := range fs.bitmap {
		if free {
			n++
		}
	}
	return n
}
