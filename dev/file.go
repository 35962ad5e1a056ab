package dev

import (
	"fmt"

	"github.com/tchajed/goose/machine/disk"
	"golang.org/x/sys/unix"
)

type fileDisk struct {
	fd        int
	numBlocks uint64
}

func newFileDisk(path string, numBlocks uint64) (fileDisk, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT, 0666)
	if err != nil {
		return fileDisk{}, err
	}
	var stat unix.Stat_t
	err = unix.Fstat(fd, &stat)
	if err != nil {
		return fileDisk{}, err
	}
	if (stat.Mode&unix.S_IFREG) != 0 && uint64(stat.Size) != numBlocks*disk.BlockSize {
		err = unix.Ftruncate(fd, int64(numBlocks*disk.BlockSize))
		if err != nil {
			return fileDisk{}, err
		}
	}
	return fileDisk{fd, numBlocks}, nil
}

func (d fileDisk) Read(a uint64) disk.Block {
	if a >= d.numBlocks {
		panic(fmt.Errorf("dev: out-of-bounds read at %v", a))
	}
	buf := make([]byte, disk.BlockSize)
	_, err := unix.Pread(d.fd, buf, int64(a*disk.BlockSize))
	if err != nil {
		panic("dev: read failed: " + err.Error())
	}
	return buf
}

func (d fileDisk) Write(a uint64, v disk.Block) {
	if uint64(len(v)) != disk.BlockSize {
		panic(fmt.Errorf("dev: v is not block sized (%d bytes)", len(v)))
	}
	if a >= d.numBlocks {
		panic(fmt.Errorf("dev: out-of-bounds write at %v", a))
	}
	_, err := unix.Pwrite(d.fd, v, int64(a*disk.BlockSize))
	if err != nil {
		panic("dev: write failed: " + err.Error())
	}
}

func (d fileDisk) Size() uint64 {
	return d.numBlocks
}

func (d fileDisk) Barrier() {
	err := unix.Fsync(d.fd)
	if err != nil {
		panic("dev: file sync failed: " + err.Error())
	}
}

func (d fileDisk) Close() {
	err := unix.Close(d.fd)
	if err != nil {
		panic(err)
	}
}
