package ir

// Arena hands out nodes for a single Module. It does not pool or free
// anything explicitly — Go's garbage collector reclaims a node as soon as
// nothing in the tree references it any more, which happens naturally once
// a rewrite drops the last pointer to it — but routing every allocation
// through it keeps a per-module count useful for diagnostics and gives
// future node-kinds one place to register construction-time invariants.
type Arena struct {
	allocated int
}

func NewArena() *Arena { return &Arena{} }

// Allocated returns the number of nodes this arena has handed out.
func (a *Arena) Allocated() int { return a.allocated }

func (a *Arena) NewBlock(label string) *Block {
	a.allocated++
	return &Block{Label: label}
}

func (a *Arena) NewBreak(target string) *Break {
	a.allocated++
	return &Break{Target: target}
}

func (a *Arena) NewSwitch(targets []string, def string) *Switch {
	a.allocated++
	return &Switch{Targets: targets, Default: def}
}

// Function is a single function body: its parameter and local types plus
// the tree-shaped body rooted at Body.
type Function struct {
	Name    string
	Params  []ValType
	Locals  []ValType
	Results []ValType
	Body    *Block
}

// Module is a set of functions sharing one Arena. It is the unit the
// function-parallel driver fans out over: functions are independent, so
// transforming Module.Functions concurrently is safe.
type Module struct {
	Arena     *Arena
	Functions []*Function
}

func NewModule() *Module {
	return &Module{Arena: NewArena()}
}

func (m *Module) AddFunction(fn *Function) {
	m.Functions = append(m.Functions, fn)
}
