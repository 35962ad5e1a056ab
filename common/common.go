package common

import (
	"github.com/tchajed/goose/machine/disk"
)

const (
	// MAGIC identifies a formatted device in the superblock.
	MAGIC uint32 = 0xf0f03410

	INODESZ  uint64 = 32 // on-disk size
	INODEBLK uint64 = disk.BlockSize / INODESZ

	NDIRECT   uint64 = 5
	NINDIRECT uint64 = disk.BlockSize / 4

	MAXFILESZ uint64 = (NDIRECT + NINDIRECT) * disk.BlockSize
)

type Inum = uint64
type Bnum = uint64

const (
	SUPERBLOCK Bnum = 0
	NULLBNUM   Bnum = 0
)
