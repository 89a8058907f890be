package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/godscn/internal/source"
)

// JavaFrontend reads top-level classes, interfaces and enums from Java files
type JavaFrontend struct{}

// NewJavaFrontend creates a Java frontend
func NewJavaFrontend() *JavaFrontend { return &JavaFrontend{} }

// Name returns "java"
func (f *JavaFrontend) Name() string { return string(LangJava) }

// Extensions returns [".java"]
func (f *JavaFrontend) Extensions() []string { return []string{".java"} }

// ParseClasses parses a compilation unit
func (f *JavaFrontend) ParseClasses(ctx context.Context, path string, content []byte) ([]*source.Class, error) {
	p, err := New(LangJava)
	if err != nil {
		return nil, err
	}
	result, err := p.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	var pkg string
	var classes []*source.Class
	for _, child := range namedChildren(result.RootNode) {
		switch child.Type() {
		case "package_declaration":
			for _, n := range namedChildren(child) {
				if n.Type() == "identifier" || n.Type() == "scoped_identifier" {
					pkg = nodeText(n, content)
				}
			}
		case "class_declaration", "interface_declaration", "enum_declaration":
			b := &javaClassBuilder{src: content}
			c := b.build(child)
			c.Package = pkg
			c.File = path
			classes = append(classes, c)
		}
	}
	return classes, nil
}

var javaClassKinds = map[string]source.ClassKind{
	"class_declaration":     source.ClassKindClass,
	"interface_declaration": source.ClassKindInterface,
	"enum_declaration":      source.ClassKindEnum,
}

type javaClassBuilder struct {
	src   []byte
	class *source.Class

	// fieldTypes maps field names to their simple declared type
	fieldTypes map[string]string
	// methodKeys maps method names to member names; a method sharing its
	// name with a field is keyed as name()
	methodKeys map[string]string
}

func (b *javaClassBuilder) build(node *sitter.Node) *source.Class {
	b.class = &source.Class{
		Name:      nodeText(node.ChildByFieldName("name"), b.src),
		Kind:      javaClassKinds[node.Type()],
		StartLine: line(node),
		EndLine:   endLine(node),
	}
	b.fieldTypes = make(map[string]string)
	b.methodKeys = make(map[string]string)

	if sc := node.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
		b.class.Superclass = nodeText(sc.NamedChild(0), b.src)
	}
	for _, child := range namedChildren(node) {
		if child.Type() != "super_interfaces" && child.Type() != "extends_interfaces" {
			continue
		}
		for _, list := range namedChildren(child) {
			for _, t := range namedChildren(list) {
				name := nodeText(t, b.src)
				b.class.Interfaces = append(b.class.Interfaces, name)
				if s := simpleType(name); s == "Serializable" || s == "Externalizable" {
					b.class.Serializable = true
				}
			}
		}
	}

	decls := b.declarations(node.ChildByFieldName("body"))

	// First pass: names, so bodies can tell fields from locals.
	for _, d := range decls {
		if d.Type() == "field_declaration" || d.Type() == "constant_declaration" {
			typ := simpleType(nodeText(d.ChildByFieldName("type"), b.src))
			for _, v := range namedChildren(d) {
				if v.Type() == "variable_declarator" {
					b.fieldTypes[nodeText(v.ChildByFieldName("name"), b.src)] = typ
				}
			}
		}
	}
	for _, d := range decls {
		if d.Type() == "method_declaration" {
			name := nodeText(d.ChildByFieldName("name"), b.src)
			key := name
			if _, clash := b.fieldTypes[name]; clash {
				key = name + "()"
			}
			b.methodKeys[name] = key
		}
	}

	table := newMemberTable()
	for _, d := range decls {
		switch d.Type() {
		case "field_declaration", "constant_declaration":
			for _, m := range b.fields(d) {
				table.add(m)
			}
		case "method_declaration", "constructor_declaration":
			table.add(b.method(d))
		}
	}
	for _, m := range table.members {
		m.Accesses = dedupeAccesses(m.Accesses)
	}
	b.class.Members = table.members
	if b.class.Members == nil {
		b.class.Members = []*source.Member{}
	}
	return b.class
}

// declarations returns the member declarations of a class, interface or enum body
func (b *javaClassBuilder) declarations(body *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(body) {
		if child.Type() == "enum_body_declarations" {
			out = append(out, namedChildren(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

type javaModifiers struct {
	static, final, abstract, synchronized, override bool
}

func (b *javaClassBuilder) modifiers(decl *sitter.Node) javaModifiers {
	var mods javaModifiers
	for _, child := range namedChildren(decl) {
		if child.Type() != "modifiers" {
			continue
		}
		count := int(child.ChildCount())
		for i := 0; i < count; i++ {
			m := child.Child(i)
			switch m.Type() {
			case "static":
				mods.static = true
			case "final":
				mods.final = true
			case "abstract":
				mods.abstract = true
			case "synchronized":
				mods.synchronized = true
			case "marker_annotation", "annotation":
				if simpleType(nodeText(m.ChildByFieldName("name"), b.src)) == "Override" {
					mods.override = true
				}
			}
		}
	}
	return mods
}

func (b *javaClassBuilder) fields(decl *sitter.Node) []*source.Member {
	mods := b.modifiers(decl)
	typ := nodeText(decl.ChildByFieldName("type"), b.src)
	if b.class.Kind == source.ClassKindInterface {
		mods.static, mods.final = true, true
	}

	var out []*source.Member
	for _, v := range namedChildren(decl) {
		if v.Type() != "variable_declarator" {
			continue
		}
		out = append(out, &source.Member{
			Name:   nodeText(v.ChildByFieldName("name"), b.src),
			Kind:   source.MemberField,
			Type:   typ,
			Line:   line(v),
			Static: mods.static,
			Final:  mods.final,
		})
	}
	return out
}

func (b *javaClassBuilder) method(decl *sitter.Node) *source.Member {
	mods := b.modifiers(decl)
	name := nodeText(decl.ChildByFieldName("name"), b.src)
	body := decl.ChildByFieldName("body")

	m := &source.Member{
		Name:         name,
		Kind:         source.MemberMethod,
		Line:         line(decl),
		Static:       mods.static,
		Final:        mods.final,
		Abstract:     mods.abstract || (b.class.Kind == source.ClassKindInterface && body == nil && !mods.static),
		Overrides:    mods.override,
		Synchronized: mods.synchronized,
	}
	if decl.Type() == "constructor_declaration" {
		m.Kind = source.MemberConstructor
	} else {
		m.Name = b.methodKeys[name]
		m.Type = nodeText(decl.ChildByFieldName("type"), b.src)
	}

	params := decl.ChildByFieldName("parameters")
	for _, p := range namedChildren(params) {
		if p.Type() == "formal_parameter" || p.Type() == "spread_parameter" {
			m.Parameters = append(m.Parameters, nodeText(p, b.src))
		}
	}

	if body != nil {
		w := &javaBodyWalker{b: b, locals: make(map[string]bool)}
		collectJavaLocals(params, b.src, w.locals)
		collectJavaLocals(body, b.src, w.locals)
		w.visit(body)
		m.Accesses = w.out
	}
	return m
}

// collectJavaLocals records every parameter and local variable name declared under n
func collectJavaLocals(n *sitter.Node, src []byte, locals map[string]bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "formal_parameter", "catch_formal_parameter", "variable_declarator",
		"enhanced_for_statement", "resource":
		if name := n.ChildByFieldName("name"); name != nil {
			locals[nodeText(name, src)] = true
		}
	case "inferred_parameters":
		for _, id := range namedChildren(n) {
			locals[nodeText(id, src)] = true
		}
	case "lambda_expression":
		if p := n.ChildByFieldName("parameters"); p != nil && p.Type() == "identifier" {
			locals[nodeText(p, src)] = true
		}
	}
	for _, child := range namedChildren(n) {
		collectJavaLocals(child, src, locals)
	}
}

// javaBodyWalker collects the member accesses of one method body
type javaBodyWalker struct {
	b      *javaClassBuilder
	locals map[string]bool
	out    []source.Access
}

func (w *javaBodyWalker) add(a source.Access) {
	if a.Target != "" {
		w.out = append(w.out, a)
	}
}

func (w *javaBodyWalker) text(n *sitter.Node) string { return nodeText(n, w.b.src) }

func (w *javaBodyWalker) ownField(name string) bool {
	_, ok := w.b.fieldTypes[name]
	return ok && !w.locals[name]
}

func (w *javaBodyWalker) methodKey(name string) string {
	if key, ok := w.b.methodKeys[name]; ok {
		return key
	}
	return name
}

func (w *javaBodyWalker) visit(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier":
		if name := w.text(n); w.ownField(name) {
			w.add(source.Access{Target: name, Kind: source.AccessRead})
		}
		return
	case "field_access":
		w.fieldAccess(n, source.AccessRead)
		return
	case "method_invocation":
		w.invocation(n)
		return
	case "assignment_expression":
		w.write(n.ChildByFieldName("left"))
		w.visit(n.ChildByFieldName("right"))
		return
	case "update_expression":
		for _, operand := range namedChildren(n) {
			w.write(operand)
		}
		return
	case "variable_declarator":
		w.visit(n.ChildByFieldName("value"))
		return
	case "method_declaration", "constructor_declaration":
		// methods of anonymous classes
		w.visit(n.ChildByFieldName("body"))
		return
	case "modifiers", "formal_parameters", "formal_parameter", "type_identifier",
		"generic_type", "scoped_type_identifier", "array_type", "method_reference":
		return
	}
	for _, child := range namedChildren(n) {
		w.visit(child)
	}
}

func (w *javaBodyWalker) write(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier":
		if name := w.text(n); w.ownField(name) {
			w.add(source.Access{Target: name, Kind: source.AccessWrite})
		}
	case "field_access":
		w.fieldAccess(n, source.AccessWrite)
	case "parenthesized_expression":
		for _, child := range namedChildren(n) {
			w.write(child)
		}
	default:
		w.visit(n)
	}
}

// qualified records an access of kind to member through the expression obj
// and reports whether obj was understood
func (w *javaBodyWalker) qualified(obj *sitter.Node, member string, kind source.AccessKind) bool {
	switch obj.Type() {
	case "this":
		w.add(source.Access{Target: member, Kind: kind})
	case "super":
		w.add(source.Access{Target: member, Kind: kind, Super: true})
	case "identifier":
		name := w.text(obj)
		switch {
		case w.locals[name]:
			// through a parameter or local variable
		case w.ownField(name):
			w.add(source.Access{Target: name, Kind: source.AccessRead})
			w.add(source.Access{Target: member, Kind: kind, Class: w.b.fieldTypes[name], Via: name})
		default:
			// static member of this or another type
			w.add(source.Access{Target: member, Kind: kind, Class: name})
		}
	default:
		return false
	}
	return true
}

func (w *javaBodyWalker) fieldAccess(n *sitter.Node, kind source.AccessKind) {
	obj := n.ChildByFieldName("object")
	if obj == nil {
		return
	}
	if !w.qualified(obj, w.text(n.ChildByFieldName("field")), kind) {
		w.visit(obj)
	}
}

func (w *javaBodyWalker) invocation(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	obj := n.ChildByFieldName("object")
	switch {
	case obj == nil:
		w.add(source.Access{Target: w.methodKey(name), Kind: source.AccessCall})
	case obj.Type() == "identifier" && w.text(obj) == w.b.class.Name:
		w.add(source.Access{Target: w.methodKey(name), Kind: source.AccessCall, Class: w.b.class.Name})
	case obj.Type() == "this":
		w.add(source.Access{Target: w.methodKey(name), Kind: source.AccessCall})
	default:
		if !w.qualified(obj, name, source.AccessCall) {
			w.visit(obj)
		}
	}
	w.visit(n.ChildByFieldName("arguments"))
}
