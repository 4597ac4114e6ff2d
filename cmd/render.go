package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhymebook/rhymebook-cli/config"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary/store"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
	"github.com/rhymebook/rhymebook-cli/pkg/render"
)

// Render command flags
var renderRhymes bool

// RenderDeps holds the dependencies for the render command.
type RenderDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	OpenStore  func(context.Context, *config.CLIConfig, logging.Logger) (*storeHandle, error)
}

// DefaultRenderDeps returns the default dependencies for production use.
func DefaultRenderDeps() *RenderDeps {
	return &RenderDeps{
		LoadConfig: config.LoadConfig,
		OpenStore:  openStore,
	}
}

// renderOutput is the machine-readable render result.
type renderOutput struct {
	ExampleID   int64              `json:"example_id" yaml:"example_id"`
	Text        string             `json:"text" yaml:"text"`
	Rendered    string             `json:"rendered" yaml:"rendered"`
	Annotations int                `json:"annotations" yaml:"annotations"`
	Rhymes      [][2]string        `json:"rhymes,omitempty" yaml:"rhymes,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	deps := DefaultRenderDeps()

	cmd := &cobra.Command{
		Use:   "render <example-id>",
		Short: "Render a stored example with its annotations as HTML",
		Long: `Render a stored example's text with its annotation spans spliced in
as HTML markup.

Annotated spans linked to a sense, artist, or place become anchors to that
entity's canonical path (/senses/{id}/, /artists/{id}/, /places/{id}/);
unlinked spans become plain <span> elements.

With --rhymes, the example's rhyme pairs (from the annotations' symmetric
rhymes relation) are listed as well.

Examples:
  # Render example 42
  rhymebook render 42

  # Render with rhyme pairs, as JSON
  rhymebook render 42 --rhymes --output json`,
		Example: `  rhymebook render 42
  rhymebook render 42 --rhymes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().BoolVar(&renderRhymes, "rhymes", false, "Also list the example's rhyme pairs")

	return cmd
}

// runRender executes the render command.
func runRender(ctx context.Context, deps *RenderDeps, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid example id %q", idArg)
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger := newLogger(cfg)

	handle, err := deps.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	example, err := handle.Store.GetExample(ctx, id)
	if err != nil {
		return fmt.Errorf("loading example %d: %w", id, err)
	}
	annotations, err := handle.Store.AnnotationsForExample(ctx, id)
	if err != nil {
		return fmt.Errorf("loading annotations for example %d: %w", id, err)
	}

	out := renderOutput{
		ExampleID:   id,
		Text:        example.Text,
		Rendered:    render.Render(example.Text, annotations),
		Annotations: len(annotations),
	}

	if renderRhymes {
		pairs, err := rhymePairs(ctx, handle.Store, annotations)
		if err != nil {
			return err
		}
		for _, pair := range pairs {
			out.Rhymes = append(out.Rhymes, [2]string{pair.Left.Text, pair.Right.Text})
		}
	}

	return printResult(cfg.OutputFormat, out, func() string {
		var b strings.Builder
		b.WriteString(out.Rendered)
		for _, pair := range out.Rhymes {
			fmt.Fprintf(&b, "\nrhyme: %s / %s", pair[0], pair[1])
		}
		return b.String()
	})
}

// rhymePairs resolves the rhymes relation for each annotation against the
// other annotations of the same example and extracts the distinct pairs.
func rhymePairs(ctx context.Context, s store.Store, annotations []*dictionary.Annotation) ([]render.RhymePair, error) {
	byID := make(map[int64]*dictionary.Annotation, len(annotations))
	for _, a := range annotations {
		byID[a.ID] = a
	}

	related := make(map[int64][]*dictionary.Annotation, len(annotations))
	for _, a := range annotations {
		members, err := s.RelationMembers(ctx, store.AnnotationRef(a.ID), store.RelRhymes)
		if err != nil {
			return nil, fmt.Errorf("loading rhymes for annotation %d: %w", a.ID, err)
		}
		for _, m := range members {
			if other, ok := byID[m.ID]; ok {
				related[a.ID] = append(related[a.ID], other)
			}
		}
	}

	return render.ExtractRhymes(annotations, func(a *dictionary.Annotation) []*dictionary.Annotation {
		return related[a.ID]
	}), nil
}
