package media

import (
	"context"

	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
)

// Tool harici bir aracın durumunu temsil eder
type Tool struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
}

// CheckDependencies ffmpeg ve ffprobe'un kurulu olup olmadığını kontrol eder.
func CheckDependencies(ctx context.Context, r ffmpeg.Runner) []Tool {
	tools := make([]Tool, 0, 2)
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		tool := Tool{Name: name}
		if path, err := ffmpeg.Locate(name); err == nil {
			tool.Available = true
			tool.Path = path
			tool.Version = ffmpeg.VersionLine(ctx, r, path)
		}
		tools = append(tools, tool)
	}
	return tools
}
