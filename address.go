package fat16

// clusterStart returns the absolute byte address where cluster c begins
// (component E, ground: original _fat16_clu_start). Cluster values 0 or 1
// denote the root directory in any API context and resolve to rootAddr.
func (v *Volume) clusterStart(c uint16) uint32 {
	if c < 2 {
		return v.rootAddr
	}
	return v.dataAddr + uint32(c-2)*v.bytesPerCluster
}

// resolve walks the chain rooted at start for floor(rel/bytesPerCluster)
// steps and returns the absolute address of byte offset rel within it
// (component E, ground: original _fat16_clu_add). Returns ErrChainExhausted
// if any step lands on an end-of-chain marker before rel is reached.
func (v *Volume) resolve(start uint16, rel uint32) (uint32, error) {
	cluster := start
	for rel >= v.bytesPerCluster {
		next, err := v.nextCluster(cluster)
		if err != nil {
			return 0, err
		}
		if isEndOfChain(next) {
			return 0, ErrChainExhausted
		}
		cluster = next
		rel -= v.bytesPerCluster
	}
	return v.clusterStart(cluster) + rel, nil
}

// resolveCluster is like resolve but stops at the cluster boundary,
// returning the cluster number and the offset within it rather than an
// absolute address — the cur_clu/cur_ofs pair of the cursor state
// (spec §3 invariants 2-4). The cursor code in file.go (seekTo) walks the
// chain itself and does not call this function.
func (v *Volume) resolveCluster(start uint16, rel uint32) (cluster uint16, ofs uint32, err error) {
	cluster = start
	for rel >= v.bytesPerCluster {
		next, nerr := v.nextCluster(cluster)
		if nerr != nil {
			return 0, 0, nerr
		}
		if isEndOfChain(next) {
			return 0, 0, ErrChainExhausted
		}
		cluster = next
		rel -= v.bytesPerCluster
	}
	return cluster, rel, nil
}
