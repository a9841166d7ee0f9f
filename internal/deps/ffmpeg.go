package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const ffmpegName = "ffmpeg"

// ResolveFFmpeg picks the ffmpeg binary used for audio extraction: the
// configured value, then an ffmpeg next to the running executable, then
// ffmpeg on PATH.
func ResolveFFmpeg(configured string) Status {
	host, _ := os.Executable()
	return resolveFFmpeg(configured, host)
}

// ResolveFFmpegPath returns the command ResolveFFmpeg settles on, available or not.
func ResolveFFmpegPath(configured string) string {
	return ResolveFFmpeg(configured).Command
}

func resolveFFmpeg(configured, hostExecutable string) Status {
	found := func(command string) Status {
		return Status{Name: "FFmpeg", Description: "Extracts audio from video files", Command: command, Available: true}
	}
	missing := func(command, detail string) Status {
		return Status{Name: "FFmpeg", Description: "Extracts audio from video files", Command: command, Detail: detail}
	}

	if configured = strings.TrimSpace(configured); configured != "" {
		if resolved, err := exec.LookPath(configured); err == nil {
			return found(resolved)
		}
		if strings.ContainsRune(configured, filepath.Separator) {
			return missing(configured, fmt.Sprintf("configured binary %q not found", configured))
		}
	}
	if hostExecutable != "" {
		sidecar := filepath.Join(filepath.Dir(hostExecutable), ffmpegName)
		if isExecutableFile(sidecar) {
			return found(sidecar)
		}
	}
	if resolved, err := exec.LookPath(ffmpegName); err == nil {
		return found(resolved)
	}
	return missing(ffmpegName, fmt.Sprintf("binary %q not found", ffmpegName))
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode().Perm()&0o111 != 0
}
