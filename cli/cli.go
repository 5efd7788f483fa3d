package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glex/cli/cmd"
	"github.com/ardnew/glex/log"
	"github.com/ardnew/glex/pkg"
)

// CLI is the top-level command-line interface for glex.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Defs []string `help:"Argument definition file(s) or '-' for stdin (default: ${defs} if it exists)" name:"defs" short:"d" type:"existingfile"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Lex   cmd.Lex   `cmd:"" help:"Tokenize arguments"`
	Check cmd.Check `cmd:"" help:"Validate definition files"`
	Init  cmd.Init  `cmd:"" help:"Write a sample definitions file"`
	Repl  cmd.Repl  `cmd:"" help:"Tokenize arguments interactively"`
}

// Run executes the glex CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")
	defsFilePath := configPath(baseDefinitions)

	vars := kong.Vars{
		cmd.ConfigIdentifier:      configFilePath,
		cmd.CacheIdentifier:       cacheDir(),
		cmd.DefinitionsIdentifier: defsFilePath,
		"version":                 pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defs := cli.Defs
	if len(defs) == 0 {
		if _, err := os.Stat(defsFilePath); err == nil {
			defs = []string{defsFilePath}
		}
	}

	log.DebugContext(ctx, "definition files", slog.Any("defs", defs))

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDefinitionFiles(ctx, defs)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
