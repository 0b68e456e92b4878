// Package main provides the CLI entry point for roiscope.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/roiscope/pkg/adapters/chartplot"
	"github.com/user/roiscope/pkg/adapters/ffvideo"
	"github.com/user/roiscope/pkg/adapters/filedisplay"
	"github.com/user/roiscope/pkg/adapters/ggrenderer"
	"github.com/user/roiscope/pkg/adapters/logger"
	"github.com/user/roiscope/pkg/adapters/nulldisplay"
	"github.com/user/roiscope/pkg/adapters/nullprogress"
	"github.com/user/roiscope/pkg/adapters/osfilesystem"
	"github.com/user/roiscope/pkg/adapters/progressbar"
	"github.com/user/roiscope/pkg/adapters/smartvideo"
	"github.com/user/roiscope/pkg/config"
	"github.com/user/roiscope/pkg/display"
	"github.com/user/roiscope/pkg/orchestrator"
	"github.com/user/roiscope/pkg/overlay"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
	"github.com/user/roiscope/pkg/session"
	"github.com/user/roiscope/pkg/stages/analyze"
	"github.com/user/roiscope/pkg/stages/export"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Inspect InspectCmd `cmd:"" help:"Analyze one frame of a video and save the views."`
	Export  ExportCmd  `cmd:"" help:"Write a copy of a video with the region replaced by its average colour."`
	Play    PlayCmd    `cmd:"" help:"Play a video, refreshing the views on every frame."`
	Probe   ProbeCmd   `cmd:"" help:"Show the stream properties of a video."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// CommonFlags are shared by every command that opens a video.
type CommonFlags struct {
	Config     string  `short:"C" type:"existingfile" help:"YAML configuration file."`
	Backend    *string `short:"b" help:"Video backend (auto, opencv, ffmpeg)."`
	FFmpegPath *string `help:"Path to the ffmpeg binary (falls back to FFMPEG_PATH env, then PATH)."`

	// Logging options
	LogLevel *string `short:"l" help:"Log level (debug, info, warn, error)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// AnalysisFlags select the region and how it is analyzed.
type AnalysisFlags struct {
	Rect string  `short:"r" help:"Selected region as x1,y1,x2,y2."`
	Mode *string `short:"m" help:"Display mode (all, blue, green, red)."`
	Bins *int    `short:"n" help:"Histogram bin count (1-256)."`
}

// ViewFlags control where views are written.
type ViewFlags struct {
	ViewDir  *string `short:"V" help:"Directory the views are written to."`
	MaxWidth *int    `help:"Scale views down to at most this width (0 keeps the native size)."`
}

// InspectCmd defines the inspect subcommand.
type InspectCmd struct {
	Video string `arg:"" type:"existingfile" help:"Video file to inspect."`
	Frame int    `short:"f" default:"0" help:"Frame index to analyze."`

	AnalysisFlags `embed:""`
	ViewFlags     `embed:""`
	Report        *string `short:"R" help:"Write an inspection summary to this file (Markdown format)."`
	CommonFlags   `embed:""`
}

// ExportCmd defines the export subcommand.
type ExportCmd struct {
	Video  string  `arg:"" type:"existingfile" help:"Video file to export."`
	Output string  `short:"o" required:"" help:"Output video file path (required)."`
	Rect   string  `short:"r" help:"Selected region as x1,y1,x2,y2."`
	Codec  *string `short:"c" help:"FourCC of the output codec (XVID, MP4V, MJPG, H264)."`
	Report *string `short:"R" help:"Write an export summary to this file (Markdown format)."`

	CommonFlags `embed:""`
}

// PlayCmd defines the play subcommand.
type PlayCmd struct {
	Video  string `arg:"" type:"existingfile" help:"Video file to play."`
	Record string `help:"Save the result frames to this video file while playing."`
	Codec  string `short:"c" help:"FourCC of the recording codec."`
	Loop   bool   `help:"Keep playing from the start after the last frame."`

	AnalysisFlags `embed:""`
	ViewFlags     `embed:""`
	CommonFlags   `embed:""`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Video string `arg:"" type:"existingfile" help:"Video file to probe."`

	CommonFlags `embed:""`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&cli,
		kong.Name("roiscope"),
		kong.Description(l10n.T("Inspect colour channels inside a region of a video.")),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.ValueFormatter(func(value *kong.Value) string {
			v := *value
			v.Help = l10n.T(value.Help)
			return kong.DefaultHelpValueFormatter(&v)
		}),
	)

	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}

// app holds the adapters shared by the commands.
type app struct {
	cfg       config.Config
	log       ports.Logger
	fs        ports.FileSystem
	renderer  ports.Renderer
	annotator *overlay.Annotator
	backend   ports.VideoBackend
}

// load reads the configuration, applies the common flags and creates the
// adapters every command needs.
func (c CommonFlags) load() (*app, error) {
	cfg := config.Defaults()
	if c.Config != "" {
		loaded, err := config.LoadFromFile(c.Config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.Backend != nil {
		cfg.Backend = *c.Backend
	}
	if c.FFmpegPath != nil {
		cfg.FFmpegPath = *c.FFmpegPath
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}

	var log ports.Logger
	if c.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	renderer := ggrenderer.New()
	return &app{
		cfg:       cfg,
		log:       log,
		fs:        osfilesystem.New(),
		renderer:  renderer,
		annotator: overlay.NewAnnotator(renderer, cfg.Overlay.FontPath, cfg.Overlay.FontSize),
	}, nil
}

// openBackend validates the final configuration and selects the video backend.
func (a *app) openBackend() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	backend, err := smartvideo.New(smartvideo.Options{
		Kind:       smartvideo.Kind(a.cfg.Backend),
		FFmpegPath: a.cfg.FFmpegPath,
	})
	if err != nil {
		return err
	}
	a.backend = backend
	a.log.Debug("Using %s video backend", backend.Name())
	return nil
}

func (a *app) analyzeStage() *analyze.Stage {
	return analyze.NewStage(a.annotator, chartplot.New(0, 0), a.log)
}

func (f AnalysisFlags) apply(cfg *config.Config) (*roi.Rect, error) {
	if f.Mode != nil {
		cfg.Mode = *f.Mode
	}
	if f.Bins != nil {
		cfg.Bins = *f.Bins
	}
	return parseSelection(f.Rect)
}

func (f ViewFlags) apply(cfg *config.Config) {
	if f.ViewDir != nil {
		cfg.ViewDir = *f.ViewDir
	}
	if f.MaxWidth != nil {
		cfg.DisplayMaxWidth = *f.MaxWidth
	}
}

func parseSelection(s string) (*roi.Rect, error) {
	if s == "" {
		return nil, nil
	}
	r, err := roi.ParseRect(s)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run(ctx context.Context) error {
	a, err := cmd.CommonFlags.load()
	if err != nil {
		return err
	}
	sel, err := cmd.AnalysisFlags.apply(&a.cfg)
	if err != nil {
		return err
	}
	cmd.ViewFlags.apply(&a.cfg)
	if cmd.Report != nil {
		a.cfg.Report = *cmd.Report
	}
	if err := a.openBackend(); err != nil {
		return err
	}

	disp := filedisplay.New(a.cfg.ViewDir, a.cfg.DisplayMaxWidth, a.fs, a.renderer)
	orch := orchestrator.New(a.backend, a.analyzeStage(), export.NewStage(a.backend, nil, a.log), a.annotator, disp, a.fs, a.log)

	oc := a.cfg.ToOrchestratorConfig()
	oc.VideoPath = cmd.Video
	oc.Frame = cmd.Frame
	oc.Selection = sel

	summary, err := orch.Inspect(ctx, oc)
	if err != nil {
		return err
	}

	mode := display.Lookup(oc.Mode)
	a.log.Info("Mode: %s", mode.LocalizedLabel())
	a.log.Info("Bins: %d", summary.Bins)
	if summary.Selected {
		a.log.Info("B=%d G=%d R=%d", summary.Means.Blue, summary.Means.Green, summary.Means.Red)
	}
	a.log.Info("Views saved to %s", a.cfg.ViewDir)
	return nil
}

// Run executes the export command.
func (cmd *ExportCmd) Run(ctx context.Context) error {
	a, err := cmd.CommonFlags.load()
	if err != nil {
		return err
	}
	if cmd.Codec != nil {
		a.cfg.Codec = *cmd.Codec
	}
	if cmd.Report != nil {
		a.cfg.Report = *cmd.Report
	}
	sel, err := parseSelection(cmd.Rect)
	if err != nil {
		return err
	}
	if err := a.openBackend(); err != nil {
		return err
	}

	var progress ports.Progress
	if cmd.Quiet {
		progress = nullprogress.New()
	} else {
		progress = progressbar.New(l10n.T("Exporting"), os.Stderr)
	}

	exportStage := export.NewStage(a.backend, progress, a.log)
	orch := orchestrator.New(a.backend, a.analyzeStage(), exportStage, a.annotator, nulldisplay.New(), a.fs, a.log)

	oc := a.cfg.ToOrchestratorConfig()
	oc.VideoPath = cmd.Video
	oc.OutputPath = cmd.Output
	oc.Selection = sel

	_, err = orch.Export(ctx, oc)
	return err
}

// Run executes the play command.
func (cmd *PlayCmd) Run(ctx context.Context) error {
	a, err := cmd.CommonFlags.load()
	if err != nil {
		return err
	}
	sel, err := cmd.AnalysisFlags.apply(&a.cfg)
	if err != nil {
		return err
	}
	cmd.ViewFlags.apply(&a.cfg)
	if err := a.openBackend(); err != nil {
		return err
	}

	mode, _ := roi.ParseChannel(a.cfg.Mode)
	disp := filedisplay.New(a.cfg.ViewDir, a.cfg.DisplayMaxWidth, a.fs, a.renderer)
	player := session.New(a.backend, a.analyzeStage(), a.annotator, disp, a.log, session.Options{
		Mode:         mode,
		Bins:         a.cfg.Bins,
		OutlineColor: config.ParseColor(a.cfg.Overlay.OutlineColor),
		OutlineWidth: a.cfg.Overlay.OutlineWidth,
	})
	defer player.Close()

	if err := player.Open(ctx, cmd.Video); err != nil {
		return err
	}
	if sel != nil {
		if err := player.Select(ctx, *sel); err != nil {
			return err
		}
	}
	if cmd.Record != "" {
		codec := cmd.Codec
		if codec == "" {
			codec = a.cfg.Codec
		}
		if err := player.StartRecording(cmd.Record, codec); err != nil {
			return err
		}
	}

	return player.Run(ctx, !cmd.Loop)
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	a, err := cmd.CommonFlags.load()
	if err != nil {
		return err
	}
	if err := a.openBackend(); err != nil {
		return err
	}

	src, err := a.backend.OpenSource(cmd.Video)
	if err != nil {
		return err
	}
	info := src.Info()
	src.Release()

	// The container header is more reliable for MP4/MOV frame counts.
	if probed, err := ffvideo.Probe(cmd.Video); err == nil && probed.FrameCount > 0 {
		info.FrameCount = probed.FrameCount
		if info.Codec == "" {
			info.Codec = probed.Codec
		}
	}

	fmt.Printf("%s: %s\n", l10n.T("File"), cmd.Video)
	fmt.Printf("%s: %s\n", l10n.T("Backend"), a.backend.Name())
	fmt.Printf("%s: %dx%d\n", l10n.T("Size"), info.Width, info.Height)
	fmt.Printf("%s: %.2f fps\n", l10n.T("Frame Rate"), info.FPS)
	if info.FrameCount > 0 {
		fmt.Printf("%s: %d\n", l10n.T("Frames"), info.FrameCount)
	} else {
		fmt.Printf("%s: %s\n", l10n.T("Frames"), l10n.T("Unknown"))
	}
	if info.Codec != "" {
		fmt.Printf("%s: %s\n", l10n.T("Codec"), info.Codec)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("roiscope version %s", version))
	return nil
}
