// Package alloc hands out stable addresses over a linear address space.
//
// Picture a long strip of land cut into blocks. A run of blocks handed to one
// owner is an estate; the owner receives an address and must present it to
// give the estate back. Given-back estates are never merged with their
// neighbours; they are only reused whole.
//
// Residential estates all have the same size, so an address maps directly to
// a location (address * size). Farming estates are sized on demand, so the
// allocator keeps the boundary of every estate it has handed out and reuses a
// retained estate only for a request of exactly the same size.
//
// Both allocators can be rebuilt from existing data with Register, which
// replays estates in the order they lie in the address space, followed by
// Retain for the ones that turn out to be free.
//
// Misuse (retaining twice, retaining an address never handed out, running
// out of address space) panics: it means the caller's bookkeeping is corrupt.
package alloc
