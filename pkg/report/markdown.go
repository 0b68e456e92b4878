package report

import (
	"fmt"
	"sort"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Inspection Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("File"), s.Video.Path)
	row(&b, t("Backend"), s.Video.Backend)
	row(&b, t("Codec"), s.Video.Codec)
	row(&b, t("Size"), fmt.Sprintf("%dx%d", s.Video.Width, s.Video.Height))
	row(&b, t("Frame Rate"), fmt.Sprintf("%.2f fps", s.Video.FPS))
	row(&b, t("Frames"), frameCount(s.Video.FrameCount, t))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Analysis"))
	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("Frame"), fmt.Sprintf("%d", s.Frame))
	row(&b, t("Mode"), t(titleCase(s.Mode)))
	row(&b, t("Bins"), fmt.Sprintf("%d", s.Bins))
	if !s.Selected {
		row(&b, t("Region"), t("None"))
		b.WriteString("\n")
	} else {
		row(&b, t("Region"), s.Region.String())
		b.WriteString("\n")

		fmt.Fprintf(&b, "| %s | %s | %s |\n|---|---|---|\n", t("Channel"), t("Non-zero pixels"), t("Mean"))
		fmt.Fprintf(&b, "| B | %d | %d |\n", s.Counts.Blue, s.Means.Blue)
		fmt.Fprintf(&b, "| G | %d | %d |\n", s.Counts.Green, s.Means.Green)
		fmt.Fprintf(&b, "| R | %d | %d |\n", s.Counts.Red, s.Means.Red)
		b.WriteString("\n")
	}

	if len(s.Histogram) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Histogram"))
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Range"), t("Pixels"))
		for _, bin := range s.Histogram {
			fmt.Fprintf(&b, "| %d-%d | %d |\n", bin.Lo, bin.Hi, bin.Count)
		}
		b.WriteString("\n")
	}

	if len(s.Views) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Views"))
		names := make([]string, 0, len(s.Views))
		for name := range s.Views {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: `%s`\n", name, s.Views[name])
		}
		b.WriteString("\n")
	}

	if s.Export != nil {
		fmt.Fprintf(&b, "## %s\n\n", t("Export"))
		b.WriteString("| | |\n|---|---|\n")
		row(&b, t("Output"), s.Export.Output)
		row(&b, t("Codec"), s.Export.Codec)
		row(&b, t("Frames Written"), fmt.Sprintf("%d / %s", s.Export.FramesWritten, frameCount(s.Export.TotalFrames, t)))
		row(&b, t("Status"), t(titleCase(s.Export.Status)))
		b.WriteString("\n")
	}

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func frameCount(n int, t func(string) string) string {
	if n <= 0 {
		return t("Unknown")
	}
	return fmt.Sprintf("%d", n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ Formatter = (*MarkdownFormatter)(nil)
