package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/pixwav/internal/cli"
	"github.com/linuxmatters/pixwav/internal/logger"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	LogLevel string `help:"Log level: debug, info, warn, error or off." default:"warn" env:"PIXWAV_LOG_LEVEL"`
	LogFile  string `help:"Write logs to a file instead of stderr." type:"path" env:"PIXWAV_LOG_FILE"`

	Encode   EncodeCmd   `cmd:"" help:"Encode an image into a WAV file."`
	Decode   DecodeCmd   `cmd:"" help:"Play a WAV file and paint its image as it plays."`
	Inspect  InspectCmd  `cmd:"" help:"Describe a file without decoding it."`
	Waveform WaveformCmd `cmd:"" help:"Render the audio of a WAV file as a waveform PNG."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	cli.PrintVersion(version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pixwav"),
		kong.Description("Turn images into WAV files and paint them back, one sample at a time."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	closeLog, err := setupLogging(CLI.LogLevel, CLI.LogFile)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	err = ctx.Run()
	closeLog()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func setupLogging(level, path string) (func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	if err := logger.Init(level, w); err != nil {
		closeLog()
		return nil, err
	}
	return closeLog, nil
}
