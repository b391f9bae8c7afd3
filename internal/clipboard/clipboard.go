// Package clipboard copies styled prompts to the system clipboard through
// the platform's clipboard command.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// linuxTools lists clipboard commands in preference order; X11 first,
// Wayland fallback
var linuxTools = [][]string{
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
}

// Copy copies text to the system clipboard
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "windows":
		return pipeTo(text, "clip")
	case "linux":
		for _, tool := range linuxTools {
			if _, err := exec.LookPath(tool[0]); err != nil {
				continue
			}
			return pipeTo(text, tool[0], tool[1:]...)
		}
		return fmt.Errorf("no clipboard utility found; install xclip, xsel, or wl-clipboard")
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
