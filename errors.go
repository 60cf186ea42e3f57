package fat16

import "errors"

// Sentinel errors surfaced by this package's operations. Callers compare
// with errors.Is; no error carries payload beyond what the wrapping message
// provides, since the taxonomy the driver needs is flat.
var (
	// ErrNoFAT16Partition means the MBR scan found no partition table entry
	// tagged as FAT16 whose boot sector carries a valid 0xAA55 signature.
	ErrNoFAT16Partition = errors.New("fat16: no FAT16 partition found")

	// ErrChainExhausted means a cluster chain translation ran past its
	// end-of-chain marker in a context that does not auto-extend.
	ErrChainExhausted = errors.New("fat16: cluster chain exhausted")

	// ErrAllocFailed means the FAT has no free cluster left to allocate.
	ErrAllocFailed = errors.New("fat16: no free cluster available")

	// ErrRootFull means the root directory, which has a fixed entry count,
	// cannot accept any more entries.
	ErrRootFull = errors.New("fat16: root directory is full")

	// ErrOutOfRange means a read or seek addressed bytes past the file's
	// recorded size in a context that does not auto-extend.
	ErrOutOfRange = errors.New("fat16: address out of range")

	// ErrAlreadyExists means file creation found an existing directory
	// entry with the same 8.3 short name.
	ErrAlreadyExists = errors.New("fat16: entry already exists")

	// ErrInvalidForOperation means the target handle's type or state
	// forbids the requested operation (prev() at index 0, Mount with a nil
	// block device). OpenDir reports its own failure as ErrNotADirectory.
	ErrInvalidForOperation = errors.New("fat16: invalid for operation")

	// ErrNotADirectory means OpenDir was called on a handle whose
	// attributes do not mark it as a directory, or on the "." (SELF) entry.
	ErrNotADirectory = errors.New("fat16: not a directory")
)
