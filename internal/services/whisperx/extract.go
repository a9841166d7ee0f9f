package whisperx

import "context"

func buildFFmpegExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// ExtractAudio writes the default audio stream of source to dest as a mono
// 16kHz PCM WAV file suitable for WhisperX.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	return s.run(ctx, "extract audio", s.ffmpeg, buildFFmpegExtractArgs(source, dest)...)
}
