package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens the default system browser to the specified URL.
//
// The login flow hands control to the user's browser and resumes at the
// callback server, so this is the point where control leaves the terminal.
// The ENUNANOTA_BROWSER environment variable overrides the platform
// launcher with an explicit command.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	if browser := os.Getenv("ENUNANOTA_BROWSER"); browser != "" {
		cmd = exec.Command(browser, url)
	} else {
		switch rt := getRuntime(); rt {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", url)
		default:
			return fmt.Errorf("unsupported platform: %s", rt)
		}
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
