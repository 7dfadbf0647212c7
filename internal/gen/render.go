package gen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"
)

// render assembles the generated file and gofmt-normalizes it. Declaration
// order is deterministic: interfaces, enums, inputs, selection structs,
// document constants, functions. Go resolves names regardless of order, so
// forward references (a collapse pointing at a fragment emitted later) need
// no extra pass.
func (b *builder) render() ([]byte, error) {
	var w strings.Builder
	w.WriteString("// Code generated by querygen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&w, "package %s\n\n", b.opts.PackageName)

	b.renderImports(&w)
	b.renderInterfaces(&w)
	for _, d := range b.enums {
		renderEnum(&w, d)
	}
	for _, d := range b.inputs {
		renderStruct(&w, d)
	}
	for _, d := range b.structs {
		renderStruct(&w, d)
	}
	for _, d := range b.documents {
		renderDocument(&w, d)
	}
	for _, d := range b.funcs {
		renderFunc(&w, d)
	}

	formatted, err := format.Source([]byte(w.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return formatted, nil
}

func (b *builder) hasExecutorFuncs() bool {
	for _, d := range b.funcs {
		if !d.Subscription {
			return true
		}
	}
	return false
}

func (b *builder) hasSubscriberFuncs() bool {
	for _, d := range b.funcs {
		if d.Subscription {
			return true
		}
	}
	return false
}

func (b *builder) renderImports(w *strings.Builder) {
	var imports []string
	if len(b.funcs) > 0 {
		imports = append(imports, "context")
	}
	if b.hasSubscriberFuncs() {
		imports = append(imports, "encoding/json")
	}
	if len(imports) == 0 {
		return
	}
	w.WriteString("import (\n")
	for _, imp := range imports {
		fmt.Fprintf(w, "\t%q\n", imp)
	}
	w.WriteString(")\n\n")
}

func (b *builder) renderInterfaces(w *strings.Builder) {
	if b.hasExecutorFuncs() {
		w.WriteString("// Executor executes a query or mutation document against a GraphQL\n")
		w.WriteString("// server and decodes the response data into out.\n")
		w.WriteString("type Executor interface {\n")
		w.WriteString("\tExecute(ctx context.Context, document string, variables map[string]any, out any) error\n")
		w.WriteString("}\n\n")
	}
	if b.hasSubscriberFuncs() {
		w.WriteString("// Subscriber opens a subscription and streams raw event payloads until\n")
		w.WriteString("// the context is done or the server closes the stream.\n")
		w.WriteString("type Subscriber interface {\n")
		w.WriteString("\tSubscribe(ctx context.Context, document string, variables map[string]any) (<-chan json.RawMessage, error)\n")
		w.WriteString("}\n\n")
	}
}

func renderDoc(w *strings.Builder, indent, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		w.WriteString(indent)
		if line == "" {
			w.WriteString("//\n")
			continue
		}
		w.WriteString("// ")
		w.WriteString(line)
		w.WriteString("\n")
	}
}

func renderEnum(w *strings.Builder, d *enumDecl) {
	renderDoc(w, "", d.Doc)
	fmt.Fprintf(w, "type %s string\n\n", d.Name)
	if len(d.Values) == 0 {
		return
	}
	w.WriteString("const (\n")
	for _, v := range d.Values {
		renderDoc(w, "\t", v.Doc)
		fmt.Fprintf(w, "\t%s %s = %q\n", v.Name, d.Name, v.Raw)
	}
	w.WriteString(")\n\n")
}

func renderStruct(w *strings.Builder, d *structDecl) {
	renderDoc(w, "", d.Doc)
	fmt.Fprintf(w, "type %s struct {\n", d.Name)
	for _, embed := range d.Embeds {
		fmt.Fprintf(w, "\t%s\n", embed)
	}
	for _, f := range d.Fields {
		renderDoc(w, "\t", f.Doc)
		fmt.Fprintf(w, "\t%s %s `json:%q`\n", f.Name, f.Type.String(), f.Tag)
	}
	w.WriteString("}\n\n")
}

func renderDocument(w *strings.Builder, d *documentConst) {
	renderDoc(w, "", d.Doc)
	text := strings.TrimRight(d.Text, "\n")
	if strings.Contains(text, "`") {
		fmt.Fprintf(w, "const %s = %s\n\n", d.Name, strconv.Quote(text))
		return
	}
	fmt.Fprintf(w, "const %s = `%s`\n\n", d.Name, text)
}

func renderFunc(w *strings.Builder, d *funcDecl) {
	renderDoc(w, "", strings.Join(d.Doc, "\n"))
	w.WriteString("func ")
	w.WriteString(d.Name)
	w.WriteString("(ctx context.Context, client ")
	if d.Subscription {
		w.WriteString("Subscriber")
	} else {
		w.WriteString("Executor")
	}
	for _, p := range d.Params {
		fmt.Fprintf(w, ", %s %s", p.Name, p.Type)
	}
	if d.Subscription {
		fmt.Fprintf(w, ", handle func(%s) error) error {\n", d.HandlerType)
	} else {
		fmt.Fprintf(w, ") (%s, error) {\n", d.ReturnType)
	}

	if len(d.Params) == 0 {
		w.WriteString("\tvariables := map[string]any{}\n")
	} else {
		w.WriteString("\tvariables := map[string]any{\n")
		for _, p := range d.Params {
			fmt.Fprintf(w, "\t\t%q: %s,\n", p.GQLName, p.Name)
		}
		w.WriteString("\t}\n")
	}

	if d.Subscription {
		renderSubscriptionBody(w, d)
	} else {
		renderExecuteBody(w, d)
	}
	w.WriteString("}\n\n")
}

func renderExecuteBody(w *strings.Builder, d *funcDecl) {
	fmt.Fprintf(w, "\tvar resp %s\n", d.WrapperName)
	fmt.Fprintf(w, "\tif err := client.Execute(ctx, %s, variables, &resp); err != nil {\n", d.DocumentName)
	if d.Collapse {
		fmt.Fprintf(w, "\t\tvar zero %s\n", d.ReturnType)
		w.WriteString("\t\treturn zero, err\n")
	} else {
		w.WriteString("\t\treturn nil, err\n")
	}
	w.WriteString("\t}\n")
	if d.Collapse {
		fmt.Fprintf(w, "\treturn resp.%s, nil\n", d.ProjectField)
	} else {
		w.WriteString("\treturn &resp, nil\n")
	}
}

func renderSubscriptionBody(w *strings.Builder, d *funcDecl) {
	fmt.Fprintf(w, "\tevents, err := client.Subscribe(ctx, %s, variables)\n", d.DocumentName)
	w.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n")
	w.WriteString("\tfor raw := range events {\n")
	fmt.Fprintf(w, "\t\tvar resp %s\n", d.WrapperName)
	w.WriteString("\t\tif err := json.Unmarshal(raw, &resp); err != nil {\n\t\t\treturn err\n\t\t}\n")
	if d.Collapse {
		fmt.Fprintf(w, "\t\tif err := handle(resp.%s); err != nil {\n\t\t\treturn err\n\t\t}\n", d.ProjectField)
	} else {
		w.WriteString("\t\tif err := handle(&resp); err != nil {\n\t\t\treturn err\n\t\t}\n")
	}
	w.WriteString("\t}\n")
	w.WriteString("\treturn nil\n")
}
