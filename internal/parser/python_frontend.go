package parser

import (
	"context"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/godscn/internal/source"
)

// PythonFrontend reads module-level classes from Python files
type PythonFrontend struct{}

// NewPythonFrontend creates a Python frontend
func NewPythonFrontend() *PythonFrontend { return &PythonFrontend{} }

// Name returns "python"
func (f *PythonFrontend) Name() string { return string(LangPython) }

// Extensions returns [".py"]
func (f *PythonFrontend) Extensions() []string { return []string{".py"} }

// ParseClasses parses a module
func (f *PythonFrontend) ParseClasses(ctx context.Context, path string, content []byte) ([]*source.Class, error) {
	p, err := New(LangPython)
	if err != nil {
		return nil, err
	}
	result, err := p.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	var classes []*source.Class
	for _, child := range namedChildren(result.RootNode) {
		def := child
		if def.Type() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
		}
		if def == nil || def.Type() != "class_definition" {
			continue
		}
		b := &pythonClassBuilder{src: content}
		c := b.build(def)
		c.File = path
		c.StartLine = line(child)
		classes = append(classes, c)
	}
	return classes, nil
}

type pythonMethod struct {
	node       *sitter.Node
	decorators []string
	static     bool
	classMeth  bool
	self       string
}

type pythonClassBuilder struct {
	src   []byte
	class *source.Class

	fieldTypes map[string]string
	methodKeys map[string]string
}

func (b *pythonClassBuilder) text(n *sitter.Node) string { return nodeText(n, b.src) }

func (b *pythonClassBuilder) build(node *sitter.Node) *source.Class {
	b.class = &source.Class{
		Name:    b.text(node.ChildByFieldName("name")),
		Kind:    source.ClassKindClass,
		EndLine: endLine(node),
	}
	b.fieldTypes = make(map[string]string)
	b.methodKeys = make(map[string]string)

	for _, arg := range namedChildren(node.ChildByFieldName("superclasses")) {
		if arg.Type() == "keyword_argument" {
			continue
		}
		base := b.text(arg)
		if base == "object" {
			continue
		}
		if b.class.Superclass == "" {
			b.class.Superclass = base
		} else {
			b.class.Interfaces = append(b.class.Interfaces, base)
		}
	}

	table := newMemberTable()
	var methods []*pythonMethod

	for _, stmt := range namedChildren(node.ChildByFieldName("body")) {
		switch stmt.Type() {
		case "expression_statement":
			for _, expr := range namedChildren(stmt) {
				if expr.Type() == "assignment" {
					b.classAttribute(table, expr)
				}
			}
		case "function_definition":
			methods = append(methods, b.newMethod(stmt, nil))
		case "decorated_definition":
			def := stmt.ChildByFieldName("definition")
			if def == nil || def.Type() != "function_definition" {
				continue
			}
			var decorators []string
			for _, d := range namedChildren(stmt) {
				if d.Type() == "decorator" {
					decorators = append(decorators, b.decoratorName(d))
				}
			}
			methods = append(methods, b.newMethod(def, decorators))
		}
	}

	// Instance attributes are the self.x targets of assignments in method bodies.
	for _, m := range methods {
		if m.self == "" || m.static || m.classMeth {
			continue
		}
		b.instanceAttributes(table, m.node.ChildByFieldName("body"), m.self)
	}

	for _, m := range methods {
		name := b.text(m.node.ChildByFieldName("name"))
		key := name
		if table.has(name) && table.get(name).IsField() {
			key = name + "()"
		}
		b.methodKeys[name] = key
	}
	for _, m := range methods {
		table.add(b.method(m))
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

func (b *pythonClassBuilder) decoratorName(d *sitter.Node) string {
	if d.NamedChildCount() == 0 {
		return ""
	}
	expr := d.NamedChild(0)
	for expr != nil && expr.Type() == "call" {
		expr = expr.ChildByFieldName("function")
	}
	if expr == nil {
		return ""
	}
	if expr.Type() == "attribute" {
		return b.text(expr.ChildByFieldName("attribute"))
	}
	return b.text(expr)
}

func (b *pythonClassBuilder) newMethod(def *sitter.Node, decorators []string) *pythonMethod {
	m := &pythonMethod{node: def, decorators: decorators}
	for _, d := range decorators {
		switch d {
		case "staticmethod":
			m.static = true
		case "classmethod":
			m.classMeth = true
		}
	}
	if !m.static {
		params := namedChildren(def.ChildByFieldName("parameters"))
		if len(params) > 0 {
			m.self = pythonParameterName(params[0], b.src)
		}
	}
	return m
}

func pythonParameterName(p *sitter.Node, src []byte) string {
	switch p.Type() {
	case "identifier":
		return nodeText(p, src)
	case "typed_parameter":
		for _, child := range namedChildren(p) {
			if child.Type() == "identifier" {
				return nodeText(child, src)
			}
		}
	case "default_parameter", "typed_default_parameter":
		return nodeText(p.ChildByFieldName("name"), src)
	}
	return ""
}

func (b *pythonClassBuilder) classAttribute(table *memberTable, assign *sitter.Node) {
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return
	}
	name := b.text(left)
	typ := b.assignedType(assign)
	if table.add(&source.Member{
		Name:   name,
		Kind:   source.MemberField,
		Type:   typ,
		Line:   line(assign),
		Static: true,
	}) {
		b.fieldTypes[name] = simpleType(typ)
	}
}

func (b *pythonClassBuilder) instanceAttributes(table *memberTable, body *sitter.Node, self string) {
	_ = WalkTree(body, func(n *sitter.Node) error {
		if n.Type() != "assignment" && n.Type() != "augmented_assignment" {
			return nil
		}
		left := n.ChildByFieldName("left")
		if left == nil || left.Type() != "attribute" {
			return nil
		}
		obj := left.ChildByFieldName("object")
		if obj == nil || obj.Type() != "identifier" || b.text(obj) != self {
			return nil
		}
		name := b.text(left.ChildByFieldName("attribute"))
		typ := b.assignedType(n)
		if table.add(&source.Member{
			Name: name,
			Kind: source.MemberField,
			Type: typ,
			Line: line(n),
		}) {
			b.fieldTypes[name] = simpleType(typ)
		} else if existing := table.get(name); existing.Type == "" && typ != "" {
			existing.Type = typ
			b.fieldTypes[name] = simpleType(typ)
		}
		return nil
	})
}

// assignedType is the annotation of an assignment, or the class being
// instantiated on its right-hand side
func (b *pythonClassBuilder) assignedType(assign *sitter.Node) string {
	if t := assign.ChildByFieldName("type"); t != nil {
		return b.text(t)
	}
	right := assign.ChildByFieldName("right")
	if right != nil && right.Type() == "call" {
		fn := right.ChildByFieldName("function")
		if fn != nil && (fn.Type() == "identifier" || fn.Type() == "attribute") {
			name := b.text(fn)
			if r := []rune(simpleType(name)); len(r) > 0 && unicode.IsUpper(r[0]) {
				return name
			}
		}
	}
	return ""
}

func (b *pythonClassBuilder) method(pm *pythonMethod) *source.Member {
	def := pm.node
	name := b.text(def.ChildByFieldName("name"))
	m := &source.Member{
		Name:   b.methodKeys[name],
		Kind:   source.MemberMethod,
		Type:   b.text(def.ChildByFieldName("return_type")),
		Line:   line(def),
		Static: pm.static || pm.classMeth,
	}
	if name == "__init__" {
		m.Kind = source.MemberConstructor
		m.Name = name
	} else if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		// dunder methods override object's
		m.Overrides = true
	}
	for _, d := range pm.decorators {
		switch d {
		case "abstractmethod":
			m.Abstract = true
		case "override":
			m.Overrides = true
		}
	}

	for i, p := range namedChildren(def.ChildByFieldName("parameters")) {
		if i == 0 && pm.self != "" {
			continue
		}
		m.Parameters = append(m.Parameters, b.text(p))
	}

	w := &pythonBodyWalker{b: b, self: pm.self}
	if pm.classMeth {
		w.self, w.cls = "", pm.self
	}
	w.visit(def.ChildByFieldName("body"))
	m.Accesses = w.out
	return m
}

// pythonBodyWalker collects the member accesses of one method body
type pythonBodyWalker struct {
	b    *pythonClassBuilder
	self string
	cls  string
	out  []source.Access
}

func (w *pythonBodyWalker) add(a source.Access) {
	if a.Target != "" {
		w.out = append(w.out, a)
	}
}

func (w *pythonBodyWalker) memberKey(name string) string {
	if key, ok := w.b.methodKeys[name]; ok {
		return key
	}
	return name
}

func (w *pythonBodyWalker) visit(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "attribute":
		w.attribute(n, source.AccessRead)
		return
	case "call":
		fn := n.ChildByFieldName("function")
		if fn != nil && fn.Type() == "attribute" {
			w.attribute(fn, source.AccessCall)
		} else {
			w.visit(fn)
		}
		w.visit(n.ChildByFieldName("arguments"))
		return
	case "assignment", "augmented_assignment":
		w.write(n.ChildByFieldName("left"))
		w.visit(n.ChildByFieldName("right"))
		return
	case "class_definition", "type":
		return
	}
	for _, child := range namedChildren(n) {
		w.visit(child)
	}
}

func (w *pythonBodyWalker) write(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "attribute":
		w.attribute(n, source.AccessWrite)
	case "pattern_list", "tuple_pattern", "list_pattern":
		for _, child := range namedChildren(n) {
			w.write(child)
		}
	default:
		w.visit(n)
	}
}

func (w *pythonBodyWalker) isSelf(n *sitter.Node) bool {
	return w.self != "" && n.Type() == "identifier" && w.b.text(n) == w.self
}

func (w *pythonBodyWalker) attribute(n *sitter.Node, kind source.AccessKind) {
	obj := n.ChildByFieldName("object")
	name := w.b.text(n.ChildByFieldName("attribute"))
	own := name
	if kind == source.AccessCall {
		own = w.memberKey(name)
	}
	if obj == nil {
		return
	}

	switch {
	case w.isSelf(obj):
		w.add(source.Access{Target: own, Kind: kind})
	case obj.Type() == "identifier":
		owner := w.b.text(obj)
		switch {
		case owner == w.b.class.Name || (w.cls != "" && owner == w.cls):
			w.add(source.Access{Target: own, Kind: kind, Class: w.b.class.Name})
		case isTypeName(owner):
			w.add(source.Access{Target: name, Kind: kind, Class: owner})
		}
	case obj.Type() == "call" && w.b.text(obj.ChildByFieldName("function")) == "super":
		w.add(source.Access{Target: name, Kind: kind, Super: true})
	case obj.Type() == "attribute" && w.isSelf(obj.ChildByFieldName("object")):
		field := w.b.text(obj.ChildByFieldName("attribute"))
		w.add(source.Access{Target: field, Kind: source.AccessRead})
		w.add(source.Access{Target: name, Kind: kind, Class: w.b.fieldTypes[field], Via: field})
	default:
		w.visit(obj)
	}
}

func isTypeName(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsUpper(r[0])
}
