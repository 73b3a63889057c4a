package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/wasmbed/config"
	"github.com/rubiojr/wasmbed/convert"
	"github.com/rubiojr/wasmbed/logging"
	"github.com/rubiojr/wasmbed/snippet"
)

// Execute runs the wasmbed CLI with the given version string.
func Execute(version string) {
	log := logging.New(os.Stderr, logging.ColorEnabled(os.Stderr))
	cmd := newCommand(version, os.Stdout, log)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// newCommand builds the command tree. stdout receives emitted snippets and
// log receives diagnostics.
func newCommand(version string, stdout io.Writer, log *logging.Logger) *cli.Command {
	a := &app{stdout: stdout, log: log}
	return &cli.Command{
		Name:                   "wasmbed",
		Usage:                  "Embed a binary file in a Luau buffer snippet",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Binary file to embed (default " + convert.DefaultInput + ")",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Snippet file to write (default " + convert.DefaultOutput + ")",
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Template file using {{.Literal}} and {{.Length}}",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default $" + config.EnvFile + " or " + config.DefaultFile + ")",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only print errors",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Action: a.convertAction,
		Commands: []*cli.Command{
			{
				Name:   "emit",
				Usage:  "Print the generated snippet instead of writing it",
				Action: a.emitAction,
			},
			{
				Name:      "verify",
				Usage:     "Check that a generated snippet decodes to its declared length (and --input, if given)",
				ArgsUsage: "[file.luau]",
				Action:    a.verifyAction,
			},
		},
	}
}

type app struct {
	stdout io.Writer
	log    *logging.Logger
}

// settings merges defaults, the config file and command-line flags, in
// increasing order of precedence.
func (a *app) settings(cmd *cli.Command) (config.Config, error) {
	if cmd.Bool("no-color") {
		a.log.SetColor(false)
	}
	a.log.SetQuiet(cmd.Bool("quiet"))

	cfg, err := config.Load(config.Path(cmd.String("config")))
	if err != nil {
		return cfg, err
	}
	return cfg.Merge(config.Config{
		Input:    cmd.String("input"),
		Output:   cmd.String("output"),
		Template: cmd.String("template"),
	}), nil
}

func (a *app) converter(cmd *cli.Command) (*convert.Converter, error) {
	cfg, err := a.settings(cmd)
	if err != nil {
		return nil, err
	}
	s, err := snippet.Load(cfg.Template)
	if err != nil {
		return nil, err
	}
	return &convert.Converter{Input: cfg.Input, Output: cfg.Output, Snippet: s, Log: a.log}, nil
}

func (a *app) convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --input and --output)", cmd.Args().First())
	}
	c, err := a.converter(cmd)
	if err != nil {
		return err
	}
	_, err = c.Run()
	return err
}

func (a *app) emitAction(ctx context.Context, cmd *cli.Command) error {
	c, err := a.converter(cmd)
	if err != nil {
		return err
	}
	text, err := c.Emit()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.stdout, text)
	return err
}

func (a *app) verifyAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := a.settings(cmd)
	if err != nil {
		return err
	}
	path := cfg.Output
	if cmd.NArg() > 0 {
		path = cmd.Args().First()
	}
	var input string
	if cmd.IsSet("input") {
		input = cfg.Input
	}
	emb, err := convert.Verify(path, input)
	if err != nil {
		return err
	}
	if input != "" {
		a.log.Infof("%s embeds %s (%d bytes)", a.log.Bold(path), input, emb.Length)
	} else {
		a.log.Infof("%s is consistent (%d bytes)", a.log.Bold(path), emb.Length)
	}
	return nil
}
