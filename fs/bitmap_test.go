package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/dev"
)

func mountFresh(t *testing.T, blocks uint64) *FileSystem {
	t.Helper()
	d := dev.NewMem(blocks)
	assert.NoError(t, Format(d))
	fs, err := Mount(d)
	assert.NoError(t, err)
	return fs
}

func TestAllocFirstFit(t *testing.T) {
	assert := assert.New(t)
	fs := mountFresh(t, 20)

	assert.Equal(uint64(17), fs.NumFree())
	assert.Equal(common.Bnum(3), fs.allocBlock(),
		"first free block comes right after the inode table")
	assert.Equal(common.Bnum(4), fs.allocBlock())
	fs.freeBlock(3)
	assert.Equal(common.Bnum(3), fs.allocBlock(), "freed block wins again")
	assert.Equal(uint64(15), fs.NumFree())
}

func TestAllocZeroes(t *testing.T) {
	assert := assert.New(t)
	fs := mountFresh(t, 20)

	junk := make(disk.Block, disk.BlockSize)
	for i := range junk {
		junk[i] = 0x55
	}
	fs.d.Write(3, junk)

	bn := fs.allocBlock()
	assert.Equal(common.Bnum(3), bn)
	assert.Equal(make(disk.Block, disk.BlockSize), fs.d.Read(uint64(bn)),
		"allocated blocks come back zeroed")
}

func TestAllocExhaustion(t *testing.T) {
	assert := assert.New(t)
	fs := mountFresh(t, 20)

	for i := uint64(0); i < 17; i++ {
		assert.NotEqual(common.NULLBNUM, fs.allocBlock())
	}
	assert.Equal(common.NULLBNUM, fs.allocBlock())
	assert.Equal(uint64(0), fs.NumFree())
}

func TestFreeNull(t *testing.T) {
	fs := mountFresh(t, 20)
	fs.freeBlock(common.NULLBNUM)
	assert.False(t, fs.bitmap[0], "the superblock never becomes free")
}
