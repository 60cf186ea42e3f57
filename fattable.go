package fat16

import "encoding/binary"

// FAT16 cluster-entry sentinels (spec §3).
const (
	clusterFree    uint16 = 0x0000
	clusterMinNext uint16 = 0x0002
	clusterMaxNext uint16 = 0xFFEF
	clusterEOCMin  uint16 = 0xFFF8
	clusterEOC     uint16 = 0xFFFF
)

func isEndOfChain(c uint16) bool {
	return c >= clusterEOCMin || c == 0x0001 || (c >= 0xFFF0 && c < clusterEOCMin)
}

// nextCluster reads the FAT entry for cluster c: the next cluster in its
// chain, or an end-of-chain sentinel (component C, ground: original
// _fat16_next_clu). No caching, no secondary-FAT mirroring — the primary
// FAT table is authoritative and secondaries are never consulted or
// updated (spec §4.C documented limitation).
func (v *Volume) nextCluster(c uint16) (uint16, error) {
	var buf [2]byte
	if err := v.dev.ReadAt(buf[:], v.fatAddr+2*uint32(c)); err != nil {
		return 0, err
	}
	next := binary.LittleEndian.Uint16(buf[:])
	v.trace("fat read", "cluster", c, "next", next)
	return next, nil
}

// setNextCluster writes the FAT entry for cluster c.
func (v *Volume) setNextCluster(c, next uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], next)
	if err := v.dev.WriteAt(buf[:], v.fatAddr+2*uint32(c)); err != nil {
		return err
	}
	v.trace("fat write", "cluster", c, "next", next)
	return nil
}
