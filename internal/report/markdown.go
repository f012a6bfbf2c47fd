package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mlihgenel/videopartitioner/internal/format"
)

func renderMarkdown(r Report) string {
	var b strings.Builder
	b.WriteString("# " + r.Title + "\n\n")
	b.WriteString(fmt.Sprintf("- **Video:** `%s`\n", r.Video))
	b.WriteString(fmt.Sprintf("- **Duration:** %s\n", format.Duration(r.DurationSecs)))
	b.WriteString(fmt.Sprintf("- **Size:** %s\n", format.FileSize(r.FileSizeBytes)))
	b.WriteString(fmt.Sprintf("- **Target:** %s\n", format.FileSize(r.TargetSizeBytes)))
	b.WriteString(fmt.Sprintf("- **Effective:** %s\n", format.Duration(r.Summary.EffectiveSecs)))
	if r.Summary.HasOverlappingExclude {
		b.WriteString("- **Note:** overlapping exclusions are counted separately\n")
	}
	if r.SessionID != "" {
		b.WriteString(fmt.Sprintf("- **Session:** `%s`\n", r.SessionID))
	}

	if len(r.Exclusions) > 0 {
		b.WriteString("\n## Exclusions\n\n| # | Start | End | Length |\n|---|---|---|---|\n")
		for i, ex := range r.Exclusions {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1,
				format.FFmpegTime(ex.StartSecs), format.FFmpegTime(ex.EndSecs), format.Duration(ex.Len())))
		}
	}

	b.WriteString("\n## Partitions\n\n| # | Start | End | Estimated | Status | Output |\n|---|---|---|---|---|---|\n")
	for _, it := range r.Items {
		out := it.Output
		if it.Error != "" {
			out = strings.ReplaceAll(it.Error, "\n", " ")
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n", it.Index+1,
			format.FFmpegTime(it.StartSecs), format.FFmpegTime(it.EndSecs),
			format.FileSize(it.EstimatedSizeBytes), it.Status, strings.ReplaceAll(out, "|", "\\|")))
	}
	return b.String()
}

func renderHTML(r Report) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Table),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)

	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + r.Title + `</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.6; }
code { background: #f4f4f4; padding: 2px 6px; border-radius: 4px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
th { background: #f8f8f8; }
</style>
</head>
<body>
`)

	if err := md.Convert([]byte(renderMarkdown(r)), &buf); err != nil {
		return nil, fmt.Errorf("markdown dönüşüm hatası: %w", err)
	}

	buf.WriteString("\n</body>\n</html>")
	return buf.Bytes(), nil
}
