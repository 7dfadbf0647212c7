package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hanpama/querygen/internal/eventbus"
	"github.com/hanpama/querygen/internal/events"
	"github.com/hanpama/querygen/internal/gen"
	"github.com/hanpama/querygen/internal/otel"
	"github.com/hanpama/querygen/internal/refs"
	"github.com/hanpama/querygen/internal/runid"
	"github.com/hanpama/querygen/internal/schema"
)

const rootUsage = `querygen — typed GraphQL client generator

USAGE:
  querygen <command> [flags]

COMMANDS:
  generate         Generate a Go client from a schema and query documents
  refs             Print the named types a document set references
  schema           Print the schema in normalized SDL form
  help             Show help for any command
`

const generateUsage = `generate FLAGS:
  -schema <file>          GraphQL SDL schema file (required)
  -queries <glob>         Query document files. Repeatable; at least one
                          pattern required. Patterns matching no files are
                          allowed and produce no output.
  -out <file>             Write generated Go source to file (default: stdout)
  -package <name>         Package name of the generated file (default: generated)
  -scalar <Name=GoType>   Map a custom scalar to a Go type. Repeatable, e.g.
                            -scalar DateTime=string
  -func-prefix <prefix>   Prefix for generated functions (default: Do)
  -no-collapse            Keep the operation wrapper even for single-field
                          selections
  -otel.endpoint <addr>   OTLP collector endpoint
  -otel.service <name>    OpenTelemetry service name (default: querygen)
`

const refsUsage = `refs FLAGS:
  -schema <file>          GraphQL SDL schema file (required)
  -queries <glob>         Query document files. Repeatable; at least one
                          pattern required.
  (Prints the reference registry as JSON)
`

const schemaUsage = `schema FLAGS:
  -schema <file>          GraphQL SDL schema file (required)
  -out <file>             Write normalized SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("querygen", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs)
	case "refs":
		return cmdRefs(cmdArgs)
	case "schema":
		return cmdSchema(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "generate":
		fmt.Print(generateUsage)
	case "refs":
		fmt.Print(refsUsage)
	case "schema":
		fmt.Print(schemaUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type scalarFlag struct {
	m map[string]string
}

func (s *scalarFlag) String() string { return "" }

func (s *scalarFlag) Set(v string) error {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid scalar mapping %q", v)
	}
	name := strings.TrimSpace(parts[0])
	goType := strings.TrimSpace(parts[1])
	if name == "" || goType == "" {
		return fmt.Errorf("invalid scalar mapping %q", v)
	}
	if s.m == nil {
		s.m = map[string]string{}
	}
	s.m[name] = goType
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.BuildFromSDL(filepath.Base(path), string(data))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}

func cmdGenerate(args []string) error {
	schemaFile := ""
	outFile := ""
	pkgName := "generated"
	funcPrefix := "Do"
	noCollapse := false
	otelEndpoint := ""
	otelService := "querygen"
	var queries stringListFlag
	var scalars scalarFlag

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.Var(&queries, "queries", "Query document files")
	fs.StringVar(&outFile, "out", outFile, "Write generated Go source to file")
	fs.StringVar(&pkgName, "package", pkgName, "Package name of the generated file")
	fs.Var(&scalars, "scalar", "Map a custom scalar to a Go type")
	fs.StringVar(&funcPrefix, "func-prefix", funcPrefix, "Prefix for generated functions")
	fs.BoolVar(&noCollapse, "no-collapse", noCollapse, "Keep the operation wrapper for single-field selections")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, generateUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, generateUsage)
		return fmt.Errorf("-schema is required")
	}
	if len(queries) == 0 {
		fmt.Fprint(os.Stderr, generateUsage)
		return fmt.Errorf("at least one -queries pattern is required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	doc, paths, err := gen.LoadDocuments(queries)
	if err != nil {
		return err
	}

	ctx, rid := runid.NewContext(context.Background())
	eventbus.Publish(ctx, events.GenerateStart{RunID: rid, Schema: schemaFile, Docs: paths})
	start := time.Now()
	result, err := gen.Generate(ctx, s, doc, gen.Options{
		PackageName: pkgName,
		Scalars:     scalars.m,
		Collapse:    !noCollapse,
		FuncPrefix:  funcPrefix,
	})
	eventbus.Publish(ctx, events.GenerateFinish{RunID: rid, Err: err, Duration: time.Since(start)})
	if err != nil {
		return err
	}

	if outFile == "" {
		os.Stdout.Write(result.Source)
		return nil
	}
	return os.WriteFile(outFile, result.Source, 0644)
}

func cmdRefs(args []string) error {
	schemaFile := ""
	var queries stringListFlag

	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.Var(&queries, "queries", "Query document files")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, refsUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, refsUsage)
		return fmt.Errorf("-schema is required")
	}
	if len(queries) == 0 {
		fmt.Fprint(os.Stderr, refsUsage)
		return fmt.Errorf("at least one -queries pattern is required")
	}

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	doc, _, err := gen.LoadDocuments(queries)
	if err != nil {
		return err
	}
	reg, err := refs.Collect(s, doc)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(reg.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func cmdSchema(args []string) error {
	schemaFile := ""
	outFile := ""

	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&outFile, "out", outFile, "Write normalized SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, schemaUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, schemaUsage)
		return fmt.Errorf("-schema is required")
	}

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	sdl := schema.Render(s)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}
