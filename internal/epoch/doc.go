// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package epoch implements process-wide epoch-based memory reclamation
// for lock-free linked structures.
//
// The contract: never hand memory back for reuse while any in-flight
// operation could still observe it. An operation brackets every shared
// dereference and CAS attempt in a guard ([Pin] .. [Guard.Unpin]).
// A node detached from a structure is registered with [Guard.Defer]
// instead of being reused synchronously; it is released only once every
// guard opened before its detachment has since closed.
//
// The collector is a singleton: initialized once, alive for the process,
// never torn down. Guards are cheap (one CAS to claim a participation
// slot, one release store to vacate it) and must be short-lived - a
// guard held open stalls reclamation for the whole process.
package epoch
