package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minidraw/pkg/buildinfo"
	"github.com/matzehuels/minidraw/pkg/cache"
	"github.com/matzehuels/minidraw/pkg/errors"
	pkgio "github.com/matzehuels/minidraw/pkg/io"
	"github.com/matzehuels/minidraw/pkg/render/dot"
	"github.com/matzehuels/minidraw/pkg/render/gocode"
	"github.com/matzehuels/minidraw/pkg/render/python"
	"github.com/matzehuels/minidraw/pkg/scene"
	"github.com/matzehuels/minidraw/pkg/scenefile"

	_ "github.com/matzehuels/minidraw/pkg/render"
)

// stdoutPath as --output writes the result to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	target   string // backend name; inferred from output when empty
	output   string // output path, "-" for stdout
	noCache  bool   // bypass the artifact cache
	graphSVG bool   // lay out dot output with Graphviz and write SVG
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene.{toml,yaml,yml,json}>",
		Short: "Render a scene file with a backend",
		Long: `Render a scene file with one of the registered backends.

The target is taken from --target, or inferred from the extension of
--output, and defaults to svg. Without --output the result is written next
to the scene file with the target's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "backend: svg, python, go, dot (see 'minidraw targets')")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-artifact cache")
	cmd.Flags().BoolVar(&opts.graphSVG, "graph-svg", false, "with target dot, write the Graphviz layout as SVG")
	_ = cmd.RegisterFlagCompletionFunc("target", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return scene.Targets(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, out io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	target, err := resolveTarget(opts)
	if err != nil {
		return err
	}
	if opts.graphSVG && target != dot.Target {
		return errors.New(errors.ErrCodeInvalidInput, "--graph-svg needs target dot, got %s", target)
	}
	output := opts.output
	if output == "" {
		output = defaultOutput(input, target, opts.graphSVG)
	}
	if output != stdoutPath {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	src, err := pkgio.ReadFile(c.FS, input)
	if err != nil {
		return err
	}

	keyTarget := target
	if opts.graphSVG {
		keyTarget += "+svg"
	}
	key := cache.ArtifactKey(keyTarget, src, buildinfo.Current())
	store := c.newCache(out, opts.noCache)
	defer store.Close()

	var spin *Spinner
	if opts.graphSVG && output != stdoutPath {
		spin = newSpinner(ctx, "Laying out graph with Graphviz...")
		spin.Start()
	}

	nodes := 0
	data, hit, err := cache.Fetch(ctx, store, key, cache.DefaultTTL, func() ([]byte, error) {
		d, err := scenefile.Read(ctx, input, src)
		if err != nil {
			return nil, err
		}
		nodes = d.Count()
		out, err := d.RenderContext(ctx, target)
		if err != nil {
			return nil, err
		}
		if opts.graphSVG {
			return dot.RenderSVGContext(ctx, out)
		}
		return []byte(out), nil
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if output == stdoutPath {
		_, err := out.Write(data)
		return err
	}
	if err := pkgio.WriteFileAtomic(c.FS, output, data, 0o644); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(output)))
	printSuccess(out, "Rendered %s as %s", StyleHighlight.Render(input), target)
	printFile(out, output)
	fmt.Fprintln(out, statsLine(nodes, len(data), hit))
	switch target {
	case python.Target:
		printNextStep(out, "Run it", "python3 "+output)
	case gocode.Target:
		printNextStep(out, "Run it", "go run "+output)
	}
	return nil
}

// resolveTarget picks the backend from --target or the output extension.
func resolveTarget(opts renderOpts) (string, error) {
	if opts.target != "" {
		if _, err := scene.Lookup(opts.target); err != nil {
			return "", err
		}
		return opts.target, nil
	}
	if opts.graphSVG {
		return dot.Target, nil
	}
	if opts.output != "" && opts.output != stdoutPath {
		return scene.TargetForPath(opts.output)
	}
	return defaultTarget, nil
}

// defaultOutput replaces the extension of input with the target's first
// advertised extension.
func defaultOutput(input, target string, graphSVG bool) string {
	ext := "." + target
	if graphSVG {
		ext = ".svg"
	} else if b, err := scene.Lookup(target); err == nil {
		if e, ok := b.(scene.Extensioner); ok && len(e.Extensions()) > 0 {
			ext = e.Extensions()[0]
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
