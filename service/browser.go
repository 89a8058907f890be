package service

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
)

// linuxOpeners are tried in order
var linuxOpeners = []string{"xdg-open", "gnome-open", "kde-open"}

// OpenFileInBrowser opens a local report in the default browser
func OpenFileInBrowser(path string) error {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return OpenBrowser(u.String())
}

// OpenBrowser hands target to the platform's URL opener without waiting for it
func OpenBrowser(target string) error {
	name, args, err := browserCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func browserCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	case "linux", "freebsd", "openbsd":
		for _, name := range linuxOpeners {
			if _, err := exec.LookPath(name); err == nil {
				return name, []string{target}, nil
			}
		}
		return "", nil, fmt.Errorf("no browser opener found (tried %v)", linuxOpeners)
	}
	return "", nil, fmt.Errorf("unsupported platform: %s", goos)
}
