package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/simplefs/common"
	"github.com/mit-pdos/simplefs/dev"
)

func TestFormatGeometry(t *testing.T) {
	assert := assert.New(t)
	d := dev.NewMem(20)
	assert.NoError(Format(d))
	assert.False(d.Mounted(), "format leaves the device unmounted")

	sp := decodeSuper(d.Read(common.SUPERBLOCK))
	assert.Equal(common.MAGIC, sp.Magic)
	assert.Equal(uint32(20), sp.Blocks)
	assert.Equal(uint32(2), sp.InodeBlocks)
	assert.Equal(uint32(256), sp.Inodes)
}

func TestFormatZeroes(t *testing.T) {
	assert := assert.New(t)
	m := disk.NewMemDisk(8)
	junk := make(disk.Block, disk.BlockSize)
	for i := range junk {
		junk[i] = 0xaa
	}
	for i := uint64(0); i < 8; i++ {
		m.Write(i, junk)
	}

	d := dev.Open(m)
	assert.NoError(Format(d))
	zero := make(disk.Block, disk.BlockSize)
	for i := uint64(1); i < 8; i++ {
		assert.Equal(zero, d.Read(i), "block %d", i)
	}
}

func TestFormatMounted(t *testing.T) {
	d := dev.NewMem(20)
	d.Mount()
	assert.Equal(t, ErrMounted, Format(d))
}

func TestMountTwice(t *testing.T) {
	d := dev.NewMem(20)
	assert.NoError(t, Format(d))
	_, err := Mount(d)
	assert.NoError(t, err)
	_, err = Mount(d)
	assert.Equal(t, ErrMounted, err)
}

func TestMountBadMagic(t *testing.T) {
	assert := assert.New(t)
	d := dev.NewMem(20)
	assert.NoError(Format(d))

	blk := d.Read(common.SUPERBLOCK)
	blk[0] ^= 0xff
	d.Write(common.SUPERBLOCK, blk)

	_, err := Mount(d)
	assert.Equal(ErrBadSuper, err)
	assert.False(d.Mounted(), "a rejected mount does not hold the device")
}

func TestMountBadGeometry(t *testing.T) {
	assert := assert.New(t)

	write := func(sp Super) *dev.Device {
		d := dev.NewMem(20)
		assert.NoError(Format(d))
		d.Write(common.SUPERBLOCK, encodeSuper(sp))
		return d
	}

	// inode count disagrees with inode blocks
	d := write(Super{Magic: common.MAGIC, Blocks: 20, InodeBlocks: 2, Inodes: 255})
	_, err := Mount(d)
	assert.Equal(ErrBadSuper, err)

	// inode table is not a tenth of the device
	d = write(Super{Magic: common.MAGIC, Blocks: 20, InodeBlocks: 3, Inodes: 384})
	_, err = Mount(d)
	assert.Equal(ErrBadSuper, err)
}

func TestMountOddSize(t *testing.T) {
	// 25 blocks rounds up to 3 inode blocks
	assert := assert.New(t)
	d := dev.NewMem(25)
	assert.NoError(Format(d))
	sp := decodeSuper(d.Read(common.SUPERBLOCK))
	assert.Equal(uint32(3), sp.InodeBlocks)
	assert.Equal(uint32(384), sp.Inodes)

	fs, err := Mount(d)
	assert.NoError(err)
	assert.Equal(uint64(25-1-3), fs.NumFree())
}
