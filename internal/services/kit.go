package services

// Kit bundles the yt-dlp and ffmpeg clients into one [Tooling] implementation.
type Kit struct {
	*YTDLP
	*FFmpeg
}

var _ Tooling = (*Kit)(nil)

// NewKit builds the production tool kit from configured binary names.
func NewKit(fetcherBinary, ffmpegBinary, ffprobeBinary string) *Kit {
	return &Kit{
		YTDLP:  NewYTDLP(fetcherBinary),
		FFmpeg: NewFFmpeg(ffmpegBinary, ffprobeBinary),
	}
}
