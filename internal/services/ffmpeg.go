package services

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg wraps the prober (ffprobe) and the container metadata rewriter
// (ffmpeg).
type FFmpeg struct {
	FFmpegBinary  string
	FFprobeBinary string
}

// NewFFmpeg returns an FFmpeg client for the given binary names or paths.
func NewFFmpeg(ffmpegBinary, ffprobeBinary string) *FFmpeg {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	return &FFmpeg{FFmpegBinary: ffmpegBinary, FFprobeBinary: ffprobeBinary}
}

// Probe inspects the first stream of the given kind and returns its codec
// and, for video, height, parsed from ffprobe's delimited text output.
func (f *FFmpeg) Probe(ctx context.Context, path string, kind StreamKind) (ProbeInfo, error) {
	selector := "v:0"
	entries := "stream=codec_name,height"
	if kind == StreamAudio {
		selector = "a:0"
		entries = "stream=codec_name"
	}

	cmd := exec.CommandContext(ctx, f.FFprobeBinary,
		"-v", "error",
		"-select_streams", selector,
		"-show_entries", entries,
		"-of", "csv=p=0",
		"--", path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ProbeInfo{}, fmt.Errorf("probe failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return parseProbeOutput(string(output), kind)
}

// parseProbeOutput decodes ffprobe csv output: "h264,1080" for video, "aac"
// for audio. Missing fields yield an error so callers can classify the file
// as unknown.
func parseProbeOutput(output string, kind StreamKind) (ProbeInfo, error) {
	line := strings.TrimSpace(output)
	if line == "" {
		return ProbeInfo{}, fmt.Errorf("no %s stream found", kind)
	}
	// ffprobe may emit multiple lines when a file has several matching
	// streams; the first is the selected one.
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	fields := strings.Split(line, ",")
	info := ProbeInfo{Codec: strings.TrimSpace(fields[0])}
	if info.Codec == "" {
		return ProbeInfo{}, fmt.Errorf("no codec reported for %s stream", kind)
	}
	if kind == StreamVideo {
		if len(fields) < 2 {
			return ProbeInfo{}, fmt.Errorf("no height reported for video stream")
		}
		height, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return ProbeInfo{}, fmt.Errorf("unparseable height %q: %w", fields[1], err)
		}
		info.Height = height
	}
	return info, nil
}

// WriteTags stream-copies input to output, injecting the ordered metadata
// pairs. No re-encode happens; the input file is never modified.
func (f *FFmpeg) WriteTags(ctx context.Context, input, output string, pairs []string) error {
	args := []string{"-y", "-i", input, "-map", "0", "-c", "copy"}
	for _, pair := range pairs {
		args = append(args, "-metadata", pair)
	}
	args = append(args, output)

	cmd := exec.CommandContext(ctx, f.FFmpegBinary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("metadata rewrite failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
