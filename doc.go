// Package fat16 implements a FAT16 filesystem driver over an abstract
// byte-addressable block device: MBR partition location, BPB parsing,
// FAT cluster-chain navigation, directory entry enumeration, file read and
// write with a cursor state machine, cluster allocation and chain
// extension with sparse-hole zero-fill, and file creation.
//
// The driver assumes exclusive, single-threaded ownership of the block
// device for its lifetime; see BlockDevice for the capability boundary and
// DESIGN.md for how this module's pieces are grounded in prior art.
package fat16
