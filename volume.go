package fat16

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
)

// levelTrace sits below slog.LevelDebug, mirroring the teacher's
// slogLevelTrace: a dedicated level for the per-call address/cluster
// tracing that is too noisy for Debug but still useful when diagnosing a
// misbehaving volume.
const levelTrace = slog.LevelDebug - 2

// Volume is the mounted, read-only-after-init handle onto a FAT16 volume:
// the block device, the derived region addresses (spec §3), and geometry.
// It owns the block device for its lifetime; file and directory handles
// hold a non-owning reference back to it.
type Volume struct {
	dev BlockDevice
	log *slog.Logger

	bytesPerSector  uint16
	sectorsPerClust uint8
	bytesPerCluster uint32
	numFATs         uint8
	rootEntryCount  uint16
	fatSizeSectors  uint16
	totalClusters   uint32

	fatAddr  uint32
	rootAddr uint32
	dataAddr uint32

	volumeLabel [bsVolLabLen]byte
}

// Option configures a Volume at Mount time.
type Option func(*Volume)

// WithLogger attaches a structured logger. A nil logger (the default)
// disables all tracing; every logging call site checks for nil first so
// the cost of an unconfigured volume is a single pointer comparison.
func WithLogger(log *slog.Logger) Option {
	return func(v *Volume) { v.log = log }
}

// Mount locates the FAT16 partition on dev, parses its BPB, derives the
// three region addresses (FAT / root directory / data, spec §3), and
// validates the boot sector. It never writes to dev.
func Mount(dev BlockDevice, opts ...Option) (*Volume, error) {
	if dev == nil {
		return nil, fmt.Errorf("fat16: mount: %w", ErrInvalidForOperation)
	}

	bsAddr, err := findBootSector(dev)
	if err != nil {
		return nil, err
	}
	bs, err := readBootSector(dev, bsAddr)
	if err != nil {
		return nil, err
	}

	vol := &Volume{dev: dev}
	for _, opt := range opts {
		opt(vol)
	}

	if err := validateBPB(bs); err != nil {
		return nil, err
	}

	vol.bytesPerSector = bs.BytesPerSector()
	vol.sectorsPerClust = bs.SectorsPerCluster()
	vol.bytesPerCluster = uint32(vol.sectorsPerClust) * uint32(vol.bytesPerSector)
	vol.numFATs = bs.NumberOfFATs()
	vol.rootEntryCount = bs.RootEntryCount()
	vol.fatSizeSectors = bs.FATSizeSectors()
	vol.volumeLabel = bs.VolumeLabel()

	reserved := uint32(bs.ReservedSectors())
	vol.fatAddr = bsAddr + reserved*uint32(vol.bytesPerSector)
	vol.rootAddr = vol.fatAddr + uint32(vol.numFATs)*uint32(vol.fatSizeSectors)*uint32(vol.bytesPerSector)
	vol.dataAddr = vol.rootAddr + uint32(vol.rootEntryCount)*sizeDirEntry

	dataSectors := bs.TotalSectors() - reserved - uint32(vol.numFATs)*uint32(vol.fatSizeSectors) -
		(uint32(vol.rootEntryCount)*sizeDirEntry+uint32(vol.bytesPerSector)-1)/uint32(vol.bytesPerSector)
	vol.totalClusters = dataSectors / uint32(vol.sectorsPerClust)

	// Width of the cluster index (spec §9): FAT16 caps clusters at 16 bits;
	// reject volumes that would need more.
	if vol.totalClusters+2 > 0xFFEF {
		return nil, fmt.Errorf("fat16: mount: volume has %d clusters, exceeds FAT16 16-bit range", vol.totalClusters)
	}

	vol.trace("mounted volume", "fatAddr", vol.fatAddr, "rootAddr", vol.rootAddr,
		"dataAddr", vol.dataAddr, "bytesPerCluster", vol.bytesPerCluster, "totalClusters", vol.totalClusters)

	return vol, nil
}

// validateBPB aggregates every field-level BPB violation instead of
// stopping at the first, the way dargueta-disko's mount validation does.
func validateBPB(bs *bootSector) error {
	var errs *multierror.Error

	if bs.BytesPerSector() == 0 || bs.BytesPerSector()%512 != 0 {
		errs = multierror.Append(errs, fmt.Errorf("bytes per sector %d is not a positive multiple of 512", bs.BytesPerSector()))
	}
	if bs.SectorsPerCluster() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("sectors per cluster is zero"))
	}
	if bs.NumberOfFATs() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("number of FATs is zero"))
	}
	if bs.FATSizeSectors() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("FAT size in sectors is zero"))
	}
	if bs.RootEntryCount() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("root entry count is zero"))
	}
	if bs.TotalSectors() == 0 {
		errs = multierror.Append(errs, fmt.Errorf("total sector count is zero"))
	}

	if errs != nil {
		return fmt.Errorf("fat16: invalid boot sector: %w", errs.ErrorOrNil())
	}
	return nil
}

// VolumeLabel returns the volume's label: the root directory's LABEL entry
// display name if one exists, else the BPB volume-label field trimmed of
// trailing spaces (original fat16_volume_label; supplemented feature, see
// SPEC_FULL.md §4).
func (v *Volume) VolumeLabel() (string, error) {
	root, err := v.OpenRoot()
	if err != nil {
		return "", err
	}
	if root.entry.Type() == typeLabel {
		return root.entry.DisplayName(), nil
	}

	end := len(v.volumeLabel)
	for end > 0 && v.volumeLabel[end-1] == ' ' {
		end--
	}
	return string(v.volumeLabel[:end]), nil
}

func (v *Volume) trace(msg string, args ...any) {
	if v.log != nil {
		v.log.Log(context.Background(), levelTrace, msg, args...)
	}
}

func (v *Volume) warn(msg string, args ...any) {
	if v.log != nil {
		v.log.Warn(msg, args...)
	}
}
