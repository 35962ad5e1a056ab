package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/dev"
)

// Debug dumps the superblock and every allocated inode to standard
// output. It reads the device directly and works whether or not the
// file system is mounted.
func Debug(d *dev.Device) {
	Fdebug(os.Stdout, d)
}

func Fdebug(w io.Writer, d *dev.Device) {
	sp := decodeSuper(d.Read(common.SUPERBLOCK))
	fmt.Fprintf(w, "SuperBlock:\n")
	if sp.Magic == common.MAGIC {
		fmt.Fprintf(w, "    magic number is valid\n")
	} else {
		fmt.Fprintf(w, "    magic number is invalid\n")
	}
	fmt.Fprintf(w, "    %d blocks\n", sp.Blocks)
	fmt.Fprintf(w, "    %d inode blocks\n", sp.InodeBlocks)
	fmt.Fprintf(w, "    %d inodes\n", sp.Inodes)

	for bn := uint64(1); bn <= uint64(sp.InodeBlocks) && bn < uint64(sp.Blocks); bn++ {
		blk := d.Read(bn)
		for slot := uint64(0); slot < common.INODEBLK; slot++ {
			ino := decodeInode(blk, slot)
			if ino.valid == 0 {
				continue
			}
			inum := (bn-1)*common.INODEBLK + slot
			fmt.Fprintf(w, "Inode %d:\n", inum)
			fmt.Fprintf(w, "    size: %d bytes\n", ino.size)
			fmt.Fprintf(w, "    direct blocks:")
			for _, ptr := range ino.direct {
				if ptr != 0 {
					fmt.Fprintf(w, " %d", ptr)
				}
			}
			fmt.Fprintf(w, "\n")
			if ino.indirect == 0 {
				continue
			}
			fmt.Fprintf(w, "    indirect block: %d\n", ino.indirect)
			fmt.Fprintf(w, "    indirect data blocks:")
			ptrs := d.Read(uint64(ino.indirect))
			for i := uint64(0); i < common.NINDIRECT; i++ {
				if ptr := ptrGet(ptrs, i); ptr != 0 {
					fmt.Fprintf(w, " %d", ptr)
				}
			}
			fmt.Fprintf(w, "\n")
		}
	}
}
