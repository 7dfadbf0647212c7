package gen

import (
	"context"
	"log"
	"time"

	"github.com/hanpama/querygen/internal/eventbus"
	"github.com/hanpama/querygen/internal/events"
	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
	"github.com/hanpama/querygen/internal/schema"
)

type Options struct {
	// PackageName of the generated file. Defaults to "generated".
	PackageName string
	// Scalars maps custom scalar names to Go types, e.g. "DateTime": "string".
	Scalars map[string]string
	// Collapse elides the operation wrapper when the return shape is fully
	// described by a single nested field or fragment.
	Collapse bool
	// FuncPrefix is prepended to generated function names. Defaults to "Do".
	FuncPrefix string
}

type Result struct {
	// Source is the gofmt-normalized generated file. Empty when the
	// document set had nothing to generate.
	Source []byte
	// Registry is the read-only snapshot of every named type the documents
	// reference.
	Registry refs.Snapshot
}

// Generate runs the full pipeline: reference collection, per-category
// generation and rendering. One call owns one registry; concurrent calls
// with independent schema/document pairs share nothing.
func Generate(ctx context.Context, s *schema.Schema, doc *language.QueryDocument, opts Options) (*Result, error) {
	if opts.PackageName == "" {
		opts.PackageName = "generated"
	}
	if opts.FuncPrefix == "" {
		opts.FuncPrefix = "Do"
	}

	if len(doc.Operations) == 0 && len(doc.Fragments) == 0 {
		// Soft failure: a pipeline may legitimately produce zero documents
		// for this stage.
		log.Printf("querygen: no operations or fragments found, nothing to generate")
		return &Result{Registry: refs.NewRegistry().Snapshot()}, nil
	}

	b := &builder{schema: s, doc: doc, opts: opts}

	err := runPhase(ctx, "collect", func() error {
		reg, err := refs.Collect(s, doc)
		if err != nil {
			return err
		}
		b.reg = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = runPhase(ctx, "generate", func() error {
		if err := b.buildEnums(); err != nil {
			return err
		}
		if err := b.buildInputs(); err != nil {
			return err
		}
		if err := b.buildFragments(); err != nil {
			return err
		}
		if err := b.buildOperations(); err != nil {
			return err
		}
		return b.buildFuncs()
	})
	if err != nil {
		return nil, err
	}

	var source []byte
	err = runPhase(ctx, "render", func() error {
		var err error
		source, err = b.render()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{Source: source, Registry: b.reg.Snapshot()}, nil
}

type builder struct {
	schema *schema.Schema
	doc    *language.QueryDocument
	reg    *refs.Registry
	opts   Options

	enums     []*enumDecl
	inputs    []*structDecl
	structs   []*structDecl
	documents []*documentConst
	funcs     []*funcDecl
}

func runPhase(ctx context.Context, name string, fn func() error) error {
	eventbus.Publish(ctx, events.PhaseStart{Phase: name})
	start := time.Now()
	err := fn()
	eventbus.Publish(ctx, events.PhaseFinish{Phase: name, Err: err, Duration: time.Since(start)})
	return err
}
