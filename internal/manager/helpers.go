package manager

import (
	"os"

	"melodyd/pkg/types"
)

// Helper: find a checkpoint in the resolved registry by name.
func (m *Manager) getCheckpointByName(name string) (types.Checkpoint, bool) {
	for _, ck := range m.registry {
		if ck.Name == name {
			return ck, true
		}
	}
	return types.Checkpoint{}, false
}

// Helper: estimate resident memory based on checkpoint file size (MB).
func (m *Manager) estimateMemMB(ck types.Checkpoint) int {
	fi, err := os.Stat(ck.Path)
	if err != nil {
		// If we cannot stat the file, return a conservative minimum of 1MB
		// to avoid bypassing budget checks due to an unknown size.
		return 1
	}
	mb := int(fi.Size() / (1024 * 1024))
	if mb <= 0 {
		mb = 1
	}
	return mb
}
