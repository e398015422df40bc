// Package manager provides lifecycle, admission, and generation coordination
// for model instances. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (State, Instance).
//   - errors.go: error types and helpers (IsInvalidRequest, IsModelNotFound, ...).
//   - helpers.go: small utilities (checkpoint lookup, memory estimation).
//   - admission.go: per-instance queueing and generation admission.
//   - ensure.go: EnsureInstance lifecycle and checkpoint loading.
//   - evict.go: eviction logic to fit within the memory budget.
//   - generate.go: the render entry point (route, ensure, sample, transform).
//   - unload.go: graceful drain and removal of an instance.
//   - status_report.go: Status reporting for the HTTP layer.
//   - events.go / eventpub_memory.go: lifecycle event publishing.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New/NewWithConfig, Ready, ListCheckpoints, Genres,
// Status, Generate, Unload). Internal types are subject to change.
package manager
