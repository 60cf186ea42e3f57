package fat16

import "encoding/binary"

// Geometry for the synthetic test volumes built by newTestImage: one MBR
// sector, a FAT16 partition of type 0x06 starting at LBA 1, 512-byte
// sectors, one sector per cluster, a single FAT, and a 16-entry root
// directory (one sector) — small enough to author by hand in code instead
// of a literal hex dump, unlike the teacher's hand-crafted FAT32 fixture in
// fat_test.go. dataClusters is parameterized so S1/S2-style scenarios (a
// 180000-byte file) and S5/S6-style scenarios (a handful of clusters) can
// each use an image just big enough for their needs.
const (
	testSectorSize      = 512
	testReservedSectors = 1
	testNumFATs         = 1
	testRootEntries     = 16

	testBSAddr = testSectorSize // partition starts at LBA 1
)

type testImage struct {
	dev          *memDevice
	vol          *Volume
	fatAddr      uint32
	rootAddr     uint32
	dataAddr     uint32
	fatSizeSecs  uint16
}

func fatSizeSectorsFor(dataClusters int) uint16 {
	entries := dataClusters + 2
	bytes := entries * 2
	return uint16((bytes + testSectorSize - 1) / testSectorSize)
}

// newTestImage builds a blank, validly-formatted FAT16 volume image with
// room for dataClusters usable data clusters: a valid MBR + BPB + an
// all-free FAT + an all-NONE root directory + an unused data region.
func newTestImage(dataClusters int) *testImage {
	fatSizeSecs := fatSizeSectorsFor(dataClusters)
	fatAddr := uint32(testBSAddr + testReservedSectors*testSectorSize)
	rootAddr := fatAddr + uint32(testNumFATs)*uint32(fatSizeSecs)*testSectorSize
	dataAddr := rootAddr + uint32(testRootEntries)*sizeDirEntry
	imageLen := int(dataAddr) + dataClusters*testSectorSize

	dev := newMemDevice(imageLen)

	// MBR partition table entry 0 at 0x1BE: type 0x06 (FAT16B), LBA start 1.
	const pteOff = 0x1BE
	dev.data[pteOff+4] = 0x06
	binary.LittleEndian.PutUint32(dev.data[pteOff+8:], 1)
	binary.LittleEndian.PutUint16(dev.data[510:], bootSignature)

	bs := make([]byte, testSectorSize)
	binary.LittleEndian.PutUint16(bs[bpbBytsPerSecOff:], testSectorSize)
	bs[bpbSecPerClusOff] = 1
	binary.LittleEndian.PutUint16(bs[bpbRsvdSecCntOff:], testReservedSectors)
	bs[bpbNumFATsOff] = testNumFATs
	binary.LittleEndian.PutUint16(bs[bpbRootEntCntOff:], testRootEntries)
	binary.LittleEndian.PutUint16(bs[bpbFATSz16Off:], fatSizeSecs)
	totalSectors := testReservedSectors + testNumFATs*int(fatSizeSecs) +
		(testRootEntries*sizeDirEntry)/testSectorSize + dataClusters
	binary.LittleEndian.PutUint16(bs[bpbTotSec16Off:], uint16(totalSectors))
	copy(bs[bsVolLabOff:bsVolLabOff+bsVolLabLen], "TESTVOL    ")
	binary.LittleEndian.PutUint16(bs[bootSigOff:], bootSignature)
	copy(dev.data[testBSAddr:testBSAddr+testSectorSize], bs)

	vol, err := Mount(dev)
	if err != nil {
		panic(err) // test fixture construction, not a tested code path
	}
	return &testImage{dev: dev, vol: vol, fatAddr: fatAddr, rootAddr: rootAddr, dataAddr: dataAddr, fatSizeSecs: fatSizeSecs}
}

// putRootEntry writes a single already-formed 32-byte directory entry at
// the given index of the root directory, for pre-seeding read-path
// fixtures without going through CreateFile.
func (img *testImage) putRootEntry(index int, name string, firstCluster uint16, size uint32) {
	short := undisplayName(name)
	e := encodeNewEntry(short, firstCluster)
	e.SetSize(size)
	addr := img.rootAddr + uint32(index)*sizeDirEntry
	copy(img.dev.data[addr:addr+sizeDirEntry], e.raw[:])
}

// writeChain writes content across a cluster chain starting at
// firstCluster, allocating and chaining clusters sequentially (2, 3, 4...)
// in the FAT and terminating with EOC. firstCluster must not already be
// linked by another chain in the fixture.
func (img *testImage) writeChain(firstCluster uint16, content []byte) {
	remaining := content
	cluster := firstCluster
	for {
		start := img.dataAddr + uint32(cluster-2)*testSectorSize
		n := len(remaining)
		if n > testSectorSize {
			n = testSectorSize
		}
		copy(img.dev.data[start:start+uint32(n)], remaining[:n])
		remaining = remaining[n:]

		if len(remaining) == 0 {
			binary.LittleEndian.PutUint16(img.dev.data[img.fatAddr+2*uint32(cluster):], clusterEOC)
			return
		}
		next := cluster + 1
		binary.LittleEndian.PutUint16(img.dev.data[img.fatAddr+2*uint32(cluster):], next)
		cluster = next
	}
}

// clustersNeeded returns how many whole clusters a file of size n bytes
// occupies, given 1 sector (testSectorSize bytes) per cluster.
func clustersNeeded(n int) uint16 {
	return uint16((n + testSectorSize - 1) / testSectorSize)
}
