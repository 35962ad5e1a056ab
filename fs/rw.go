package fs

import (
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/util"
)

// Read copies up to len(p) bytes of the file at inum into p, starting
// at byte off, and reports how many bytes were copied. Reads clamp at
// end of file; an offset past it is an error. Hitting an unallocated
// block on the walk returns ErrHole with the bytes copied so far.
func (fs *FileSystem) Read(inum common.Inum, p []byte, off uint64) (uint64, error) {
	ino, err := fs.loadInode(inum)
	if err != nil {
		return 0, err
	}
	if ino.valid == 0 {
		return 0, ErrFreeInode
	}
	if off > uint64(ino.size) {
		return 0, ErrBadOffset
	}
	length := util.Min(uint64(len(p)), uint64(ino.size)-off)

	var ptrs disk.Block
	n := uint64(0)
	for blkIdx := off / disk.BlockSize; n < length; blkIdx++ {
		var bn uint32
		if blkIdx < common.NDIRECT {
			bn = ino.direct[blkIdx]
		} else {
			if ptrs == nil {
				if ino.indirect == 0 {
					return n, ErrHole
				}
				ptrs = fs.d.Read(uint64(ino.indirect))
			}
			bn = ptrGet(ptrs, blkIdx-common.NDIRECT)
		}
		if bn == 0 {
			return n, ErrHole
		}
		blk := fs.d.Read(uint64(bn))
		pos := uint64(0)
		if n == 0 {
			pos = off % disk.BlockSize
		}
		cnt := util.Min(disk.BlockSize-pos, length-n)
		copy(p[n:n+cnt], blk[pos:pos+cnt])
		n += cnt
	}
	util.DPrintf(5, "Read: inum %d off %d -> %d bytes\n", inum, off, n)
	return n, nil
}

// Write copies p into the file at inum starting at byte off,
// allocating data blocks and the indirect pointer block lazily, and
// reports how many bytes landed. Running out of space is not an
// error: the write stops short and whatever was written stays
// written. Data blocks are persisted as the walk goes; the inode and
// a dirty pointer block are persisted once at the end.
func (fs *FileSystem) Write(inum common.Inum, p []byte, off uint64) (uint64, error) {
	ino, err := fs.loadInode(inum)
	if err != nil {
		return 0, err
	}
	if off > uint64(ino.size) {
		return 0, ErrBadOffset
	}
	length := util.Min(uint64(len(p)), common.MAXFILESZ-off)

	var (
		ptrs      disk.Block
		ptrsDirty bool
		inoDirty  bool
	)
	n := uint64(0)
	for blkIdx := off / disk.BlockSize; blkIdx < common.NDIRECT+common.NINDIRECT && n < length; blkIdx++ {
		var bn uint32
		if blkIdx < common.NDIRECT {
			if ino.direct[blkIdx] == 0 {
				newbn := fs.allocBlock()
				if newbn == common.NULLBNUM {
					break
				}
				ino.direct[blkIdx] = uint32(newbn)
				inoDirty = true
			}
			bn = ino.direct[blkIdx]
		} else {
			if ino.indirect == 0 {
				newbn := fs.allocBlock()
				if newbn == common.NULLBNUM {
					break
				}
				ino.indirect = uint32(newbn)
				inoDirty = true
				// freshly allocated, so all-zero on disk: start from
				// an empty pointer block without reading it back
				ptrs = make(disk.Block, disk.BlockSize)
				ptrsDirty = true
			}
			if ptrs == nil {
				ptrs = fs.d.Read(uint64(ino.indirect))
			}
			slot := blkIdx - common.NDIRECT
			if ptrGet(ptrs, slot) == 0 {
				newbn := fs.allocBlock()
				if newbn == common.NULLBNUM {
					break
				}
				ptrPut(ptrs, slot, uint32(newbn))
				ptrsDirty = true
			}
			bn = ptrGet(ptrs, slot)
		}

		pos := uint64(0)
		if n == 0 {
			pos = off % disk.BlockSize
		}
		cnt := util.Min(disk.BlockSize-pos, length-n)
		var blk disk.Block
		if cnt < disk.BlockSize {
			blk = fs.d.Read(uint64(bn))
		} else {
			blk = make(disk.Block, disk.BlockSize)
		}
		copy(blk[pos:pos+cnt], p[n:n+cnt])
		fs.d.Write(uint64(bn), blk)
		n += cnt
	}

	if off+n > uint64(ino.size) {
		ino.size = uint32(off + n)
		inoDirty = true
	}
	if inoDirty {
		fs.saveInode(inum, ino)
	}
	if ptrsDirty {
		fs.d.Write(uint64(ino.indirect), ptrs)
	}
	util.DPrintf(5, "Write: inum %d off %d -> %d bytes\n", inum, off, n)
	return n, nil
}
