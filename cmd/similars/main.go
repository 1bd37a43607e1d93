// Package main provides the similars command. It reads a file listing on
// standard input and writes one fingerprint line per entry to standard
// output, for finding near-duplicate names.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/config"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/fingerprint"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/listing"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/logging"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/resource"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/sbox"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// environment bundles the process collaborators so tests can replace them.
type environment struct {
	lookupEnv    func(string) (string, bool)
	readFile     func(string) ([]byte, error)
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	capabilities terminal.Capabilities
}

func main() {
	os.Exit(run(os.Args[1:], environment{
		lookupEnv: os.LookupEnv,
		readFile:  os.ReadFile,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		capabilities: terminal.NewCapabilities(terminal.Options{
			Stream: os.Stderr,
		}),
	}))
}

func run(args []string, env environment) int {
	ctx := resource.NewContext(resource.Options{
		Stderr:       env.stderr,
		Capabilities: env.capabilities,
	})
	return ctx.Run(func(ctx *resource.Context) {
		if len(args) > 0 {
			ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeUsage, diagnostics.MessageUsage, nil))
		}

		settings, err := config.NewLoaderWithEnv(env.lookupEnv, env.readFile).Load()
		if err != nil {
			raiseConfig(ctx, err)
		}

		setupLogging(ctx, settings, env)
		logger := ctx.Logger()
		logger.Debug("Configuration loaded",
			"source", settings.Source,
			"marker", settings.Marker,
			"max_line_length", settings.MaxLineLength,
			"fingerprint", settings.Fingerprint,
			"alphabet", settings.Encoding.Alphabet())

		table := sbox.Seed([]byte(settings.Personalization), settings.WarmUpRounds)
		logger.Debug("Permutation table seeded",
			"personalization_bytes", len(settings.Personalization),
			"warmup_rounds", settings.WarmUpRounds)

		fp, err := fingerprint.New(settings.Fingerprint, table, settings.PearsonWidth)
		if err != nil {
			raiseConfig(ctx, err)
		}

		driver, err := listing.NewDriver(ctx, listing.Options{
			Marker:        settings.Marker,
			MaxLineLength: settings.MaxLineLength,
			Fingerprinter: fp,
			Encoding:      settings.Encoding,
		})
		if err != nil {
			ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeInternal, diagnostics.MessageInternal, err))
		}
		driver.Run(env.stdin, env.stdout)
	})
}

// setupLogging installs the logger on ctx. A log file, when configured, is
// registered on the resource stack so that it is closed on every exit path.
func setupLogging(ctx *resource.Context, settings *config.Settings, env environment) {
	opts := logging.Options{
		Level:        settings.LogLevel,
		Console:      env.stderr,
		Capabilities: env.capabilities,
		RunID:        logging.GenerateRunID(),
	}

	if settings.LogFile != "" {
		f, err := logging.OpenLogFile(settings.LogFile)
		if err != nil {
			raiseConfig(ctx, err)
		}
		ctx.Push(logFileCloser(ctx, f, settings.LogFile))
		opts.JSON = f
	}

	logger, err := logging.New(opts)
	if err != nil {
		ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeInternal, diagnostics.MessageInternal, err))
	}
	ctx.SetLogger(logger)
}

// logFileCloser closes the log file on release. Close errors are logged
// and do not change the exit status.
func logFileCloser(ctx *resource.Context, f io.Closer, path string) resource.Releaser {
	return resource.ReleaserFunc(func() {
		if err := f.Close(); err != nil {
			ctx.Logger().Debug("Failed to close log file", "path", path, "error", err)
		}
	})
}

func raiseConfig(ctx *resource.Context, err error) {
	ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeConfig,
		fmt.Sprintf("%s: %v", diagnostics.MessageConfig, err), err))
}
