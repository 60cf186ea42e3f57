package fat16

// allocCluster performs a linear scan from cluster index 2 for the first
// free (0x0000) FAT cell, marks it end-of-chain, and zero-fills every
// 32-byte boundary within it (component D, ground: spec §4.D; the teacher
// has no equivalent stand-alone allocator, so the scanning shape follows
// its general FAT-table-walking idiom in fat.go instead of a ported
// routine — write/allocate is a spec-level addition over the original).
//
// Zeroing policy: only the 32-byte boundaries are zeroed, not the whole
// cluster — sufficient to mark every possible directory-entry slot as
// NONE, which is the only correctness requirement (spec §4.D). Regular
// file data clusters do not need full zeroing since reads are bounded by
// file size.
func (v *Volume) allocCluster() (uint16, error) {
	limit := uint16(v.fatSizeSectors) * (uint16(v.bytesPerSector) / 2)
	if limit == 0 || uint32(limit) > v.totalClusters+2 {
		limit = uint16(v.totalClusters + 2)
	}

	for c := clusterMinNext; c < limit; c++ {
		entry, err := v.nextCluster(c)
		if err != nil {
			return 0, err
		}
		if entry != clusterFree {
			continue
		}

		if err := v.setNextCluster(c, clusterEOC); err != nil {
			return 0, err
		}
		if err := v.zeroClusterBoundaries(c); err != nil {
			return 0, err
		}
		v.trace("allocated cluster", "cluster", c)
		return c, nil
	}

	v.warn("allocation failed: FAT exhausted")
	return 0, ErrAllocFailed
}

// zeroClusterBoundaries writes a zero byte at every 32-byte offset within
// cluster c, per the §4.D zeroing policy.
func (v *Volume) zeroClusterBoundaries(c uint16) error {
	start := v.clusterStart(c)
	var zero [1]byte
	for off := uint32(0); off < v.bytesPerCluster; off += sizeDirEntry {
		if err := v.dev.WriteAt(zero[:], start+off); err != nil {
			return err
		}
	}
	return nil
}

// zeroClusterRange writes n zero bytes starting at absolute address addr,
// in chunks of at most 512 bytes. (Write's sparse-hole fill in file.go
// uses Handle.writeZeros instead, which advances the file cursor.)
func (v *Volume) zeroClusterRange(addr uint32, n uint32) error {
	const chunkSize = 512
	var zero [chunkSize]byte
	for n > 0 {
		chunk := n
		if chunk > chunkSize {
			chunk = chunkSize
		}
		if err := v.dev.WriteAt(zero[:chunk], addr); err != nil {
			return err
		}
		addr += chunk
		n -= chunk
	}
	return nil
}

// appendCluster allocates a new cluster and links it to the end of the
// chain whose current last member is c, overwriting c's end-of-chain
// marker. Returns the new cluster, or ErrAllocFailed on exhaustion.
func (v *Volume) appendCluster(c uint16) (uint16, error) {
	next, err := v.allocCluster()
	if err != nil {
		return 0, err
	}
	if err := v.setNextCluster(c, next); err != nil {
		return 0, err
	}
	return next, nil
}
