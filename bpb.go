package fat16

import (
	"encoding/binary"
	"fmt"

	"github.com/nanofs/fat16/internal/mbr"
)

// Boot sector field offsets, FAT16 BPB subset (spec §3/§4.B). Offsets match
// the standard Microsoft BPB layout; fields specific to FAT32/exFAT (FSInfo
// sector, 32-bit root cluster, extended boot signature) are not read here,
// since this driver is FAT16-only.
const (
	bsJumpLen        = 3
	bsOEMNameOff     = 3
	bsOEMNameLen     = 8
	bpbBytsPerSecOff = 11
	bpbSecPerClusOff = 13
	bpbRsvdSecCntOff = 14
	bpbNumFATsOff    = 16
	bpbRootEntCntOff = 17
	bpbTotSec16Off   = 19
	bpbMediaOff      = 21
	bpbFATSz16Off    = 22
	bpbSecPerTrkOff  = 24
	bpbNumHeadsOff   = 26
	bpbHiddSecOff    = 28
	bpbTotSec32Off   = 32
	bsVolLabOff      = 43
	bsVolLabLen      = 11
	bootSectorSize   = 512
	bootSigOff       = 510
	bootSignature    = 0xAA55
)

// bootSector wraps the 512-byte boot sector window and exposes the BPB
// fields the driver retains, following the teacher's pattern of typed
// accessor methods over a raw byte window rather than a parsed struct.
type bootSector struct {
	data [bootSectorSize]byte
}

func (b *bootSector) BytesPerSector() uint16    { return binary.LittleEndian.Uint16(b.data[bpbBytsPerSecOff:]) }
func (b *bootSector) SectorsPerCluster() uint8   { return b.data[bpbSecPerClusOff] }
func (b *bootSector) ReservedSectors() uint16   { return binary.LittleEndian.Uint16(b.data[bpbRsvdSecCntOff:]) }
func (b *bootSector) NumberOfFATs() uint8       { return b.data[bpbNumFATsOff] }
func (b *bootSector) RootEntryCount() uint16    { return binary.LittleEndian.Uint16(b.data[bpbRootEntCntOff:]) }
func (b *bootSector) FATSizeSectors() uint16    { return binary.LittleEndian.Uint16(b.data[bpbFATSz16Off:]) }

// TotalSectors returns the 16-bit short field, falling back to the 32-bit
// long field when the short one is zero (spec §4.B: "If 'short sector
// count' is zero, take the 32-bit 'long sector count' instead").
func (b *bootSector) TotalSectors() uint32 {
	if short := binary.LittleEndian.Uint16(b.data[bpbTotSec16Off:]); short != 0 {
		return uint32(short)
	}
	return binary.LittleEndian.Uint32(b.data[bpbTotSec32Off:])
}

func (b *bootSector) VolumeLabel() [bsVolLabLen]byte {
	var label [bsVolLabLen]byte
	copy(label[:], b.data[bsVolLabOff:bsVolLabOff+bsVolLabLen])
	return label
}

func (b *bootSector) signatureValid() bool {
	return binary.LittleEndian.Uint16(b.data[bootSigOff:]) == bootSignature
}

// findBootSector scans the MBR's four partition table entries for a
// FAT16-family type byte and returns the absolute byte address of its boot
// sector, per spec §4.B. Returns ErrNoFAT16Partition if no entry validates.
func findBootSector(dev BlockDevice) (uint32, error) {
	var mbrBuf [bootSectorSize]byte
	if err := dev.ReadAt(mbrBuf[:], 0); err != nil {
		return 0, fmt.Errorf("fat16: reading MBR: %w", err)
	}
	sector, err := mbr.ToBootSector(mbrBuf[:])
	if err != nil {
		return 0, fmt.Errorf("fat16: parsing MBR: %w", err)
	}

	for i := 0; i < 4; i++ {
		pte := sector.PartitionTable(i)
		if !pte.PartitionType().IsFAT16() {
			continue
		}
		addr := pte.StartLBA() * bootSectorSize

		var candidate bootSector
		if err := dev.ReadAt(candidate.data[:], addr); err != nil {
			continue
		}
		if !candidate.signatureValid() {
			continue
		}
		return addr, nil
	}
	return 0, ErrNoFAT16Partition
}

// readBootSector reads and returns the boot sector at the given address,
// without re-validating the partition table (the caller, findBootSector,
// already did).
func readBootSector(dev BlockDevice, addr uint32) (*bootSector, error) {
	bs := &bootSector{}
	if err := dev.ReadAt(bs.data[:], addr); err != nil {
		return nil, fmt.Errorf("fat16: reading boot sector: %w", err)
	}
	if !bs.signatureValid() {
		return nil, ErrNoFAT16Partition
	}
	return bs, nil
}
