package tasks

import (
	"context"
	"path/filepath"

	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/services"
)

// unknownCodec tags streams the prober could not read. Unknown never passes
// the compliance profile, but a probe failure is never fatal to the pipeline.
const unknownCodec = "unknown"

// validate probes the first video and first audio stream of a materialized
// file and appends non-compliant reports to the violations log. Purely
// observational; the file is never touched.
func (e *Engine) validate(ctx context.Context, path string, violations *audit.Log) models.CompatibilityReport {
	video, err := e.tooling.Probe(ctx, path, services.StreamVideo)
	if err != nil {
		e.logger.Warn("video probe failed", "file", filepath.Base(path), "err", err)
		video = services.ProbeInfo{Codec: unknownCodec}
	}

	audio, err := e.tooling.Probe(ctx, path, services.StreamAudio)
	if err != nil {
		e.logger.Warn("audio probe failed", "file", filepath.Base(path), "err", err)
		audio = services.ProbeInfo{Codec: unknownCodec}
	}

	report := e.policy.Evaluate(video.Codec, video.Height, audio.Codec)
	if !report.Compliant {
		violations.Printf("non-compliant file=%s video=%s height=%d audio=%s",
			filepath.Base(path), report.VideoCodec, report.VideoHeight, report.AudioCodec)
	}
	return report
}
