package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"melodyd/internal/common/fsutil"
	"melodyd/pkg/types"
)

// LoadDir scans a directory for checkpoint files (*.ckpt, *.tar) and resolves
// the catalog against it. Every catalog entry is returned; entries whose file
// was found carry an absolute Path, the rest have Path left empty so
// /checkpoints can report them as not downloaded.
func LoadDir(dir string) ([]types.Checkpoint, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	paths := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".ckpt", ".tar":
		default:
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if _, known := paths[stem]; !known {
			paths[stem] = filepath.Join(abs, name)
		}
	}

	out := make([]types.Checkpoint, 0, len(catalog))
	for name, cfg := range catalog {
		out = append(out, types.Checkpoint{
			Name:        name,
			Description: cfg.Description,
			Path:        paths[name],
			Drums:       cfg.Drums,
			Bars:        cfg.Bars,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
