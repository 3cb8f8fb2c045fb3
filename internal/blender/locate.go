package blender

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"blendmcp/internal/logging"
)

// candidatePaths returns the well-known Blender install locations for the
// current platform, in probe order. Newest Windows versions first so a machine
// with several installs picks the most recent.
func candidatePaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\Blender Foundation\Blender 4.5\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 4.4\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 4.3\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 4.2\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 4.1\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 4.0\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender 3.6\blender.exe`,
			`C:\Program Files\Blender Foundation\Blender\blender.exe`,
		}
	case "darwin":
		return []string{
			"/Applications/Blender.app/Contents/MacOS/Blender",
		}
	default:
		return []string{
			"/usr/bin/blender",
			"/usr/local/bin/blender",
			"/snap/bin/blender",
		}
	}
}

// Locate resolves the Blender executable. An explicit path wins when it
// exists; otherwise the platform's well-known install locations are probed,
// then PATH. Returns ErrBlenderNotFound when nothing resolves.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			logging.Boot("Blender resolved from explicit path: %s", explicit)
			return explicit, nil
		}
		return "", fmt.Errorf("configured blender path %q: %w", explicit, ErrBlenderNotFound)
	}

	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			logging.Boot("Blender resolved from known location: %s", p)
			return p, nil
		}
	}

	if p, err := exec.LookPath("blender"); err == nil {
		logging.Boot("Blender resolved from PATH: %s", p)
		return p, nil
	}

	return "", ErrBlenderNotFound
}
