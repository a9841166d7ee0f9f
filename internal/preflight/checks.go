package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/services/whisperx"
)

// CheckDirectoryAccess passes when path is a directory the process can
// list, read and write.
func CheckDirectoryAccess(name, path string) Result {
	fail := func(reason string) Result {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, reason)}
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fail("does not exist")
	case err != nil:
		return fail("stat: " + err.Error())
	case !info.IsDir():
		return fail("is not a directory")
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fail("insufficient permissions: " + err.Error())
	}
	return Result{Name: name, Passed: true, Detail: path + " (read/write ok)"}
}

// CheckSystemDeps evaluates the external binaries transcription needs. The
// CLI status command and the API /status endpoint share this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return append([]deps.Status{deps.ResolveFFmpeg(cfg.Transcription.FFmpegBinary)}, deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Reports media duration for transcripts",
			Optional:    true,
		},
		{
			Name:        "uvx",
			Command:     whisperx.UVXCommand,
			Description: "Required for WhisperX-driven transcription",
		},
	})...)
}
