// Command blockmerge-demo builds a handful of toy function bodies, runs the
// block-merging pass over them, and prints before/after s-expression dumps.
// One scenario additionally lowers to real WebAssembly bytecode and executes
// it with wazero both before and after the rewrite, as a runnable witness
// that the rewrite preserves behavior.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-blockmerge/effects"
	"github.com/wippyai/wasm-blockmerge/ir"
	"github.com/wippyai/wasm-blockmerge/pass"
	"github.com/wippyai/wasm-blockmerge/wasm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	beforeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	afterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type scenario struct {
	name string
	body func() *ir.Block
}

func main() {
	for _, sc := range scenarios() {
		runScenario(sc)
	}
	runExecutableRoundTrip()
}

func runScenario(sc scenario) {
	before := sc.body()
	beforeDump := ir.Dump(before)

	p := pass.New(pass.Options{Analyzer: effects.Reference{}})
	if err := p.Run(before); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", sc.name, err)
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render(sc.name))
	fmt.Println(beforeStyle.Render("before:"))
	fmt.Println(beforeDump)
	fmt.Println(afterStyle.Render("after:"))
	fmt.Println(ir.Dump(before))
	fmt.Println()
}

func scenarios() []scenario {
	return []scenario{
		{"S1 simple splice", func() *ir.Block {
			a := &ir.SetLocal{Local: 0, Value: c(1)}
			b := &ir.SetLocal{Local: 1, Value: c(2)}
			d := &ir.SetLocal{Local: 2, Value: c(3)}
			inner := &ir.Block{List: []ir.Node{b, d}}
			inner.Finalize()
			root := &ir.Block{List: []ir.Node{a, inner}}
			root.Finalize()
			return root
		}},
		{"S2 drop of block sinks the drop", func() *ir.Block {
			var b ir.Builder
			inner := &ir.Block{List: []ir.Node{
				&ir.SetLocal{Local: 0, Value: c(5)},
				&ir.GetLocal{Local: 0, ValType: ir.ValI32},
			}}
			inner.Finalize()
			root := &ir.Block{List: []ir.Node{b.MakeDrop(inner)}}
			root.Finalize()
			return root
		}},
		{"S3 hoist store value", func() *ir.Block {
			valueBlock := &ir.Block{List: []ir.Node{
				&ir.SetLocal{Local: 0, Value: c(7)},
				c(99),
			}}
			valueBlock.Finalize()
			store := &ir.Store{Ptr: c(100), Value: valueBlock, ValType: ir.ValI32}
			store.Finalize()
			root := &ir.Block{List: []ir.Node{store}}
			root.Finalize()
			return root
		}},
		{"S5 labeled inner block not spliced", func() *ir.Block {
			a := &ir.SetLocal{Local: 0, Value: c(1)}
			labeled := &ir.Block{Label: "L", List: []ir.Node{
				&ir.SetLocal{Local: 1, Value: c(2)},
				&ir.Break{Target: "L", Value: c(9)},
			}}
			labeled.Finalize()
			root := &ir.Block{List: []ir.Node{a, labeled}}
			root.Finalize()
			return root
		}},
	}
}

func c(v int32) *ir.Const { return &ir.Const{ValType: ir.ValI32, I32: v} }

// runExecutableRoundTrip builds a function whose body matches S2 (a dropped
// block sunk into its surrounding block), lowers it to WebAssembly bytecode
// before and after the rewrite, runs both through wazero, and checks they
// return the same result.
func runExecutableRoundTrip() {
	fmt.Println(titleStyle.Render("Executable round trip (S2 lowered to wasm)"))

	before := buildRoundTripBody()
	beforeResult, err := execute(before)
	if err != nil {
		fmt.Fprintf(os.Stderr, "execute before: %v\n", err)
		os.Exit(1)
	}

	after := buildRoundTripBody()
	p := pass.New(pass.Options{Analyzer: effects.Reference{}})
	if err := p.Run(after); err != nil {
		fmt.Fprintf(os.Stderr, "run pass: %v\n", err)
		os.Exit(1)
	}
	afterResult, err := execute(after)
	if err != nil {
		fmt.Fprintf(os.Stderr, "execute after: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("before: %s\n", ir.Dump(before))
	fmt.Printf("after:  %s\n", ir.Dump(after))
	fmt.Printf("result before=%d after=%d\n", beforeResult, afterResult)
	if beforeResult != afterResult {
		fmt.Fprintln(os.Stderr, "mismatch: the rewrite changed the function's result")
		os.Exit(1)
	}
	fmt.Println(noteStyle.Render("results agree: the rewrite preserved behavior"))
}

// buildRoundTripBody returns: local0 = 5; drop(local0); local1 = 10;
// return local0 + local1. The drop's operand is wrapped in an anonymous
// block so the pass has a sink to perform.
func buildRoundTripBody() *ir.Block {
	var b ir.Builder
	inner := &ir.Block{List: []ir.Node{
		&ir.SetLocal{Local: 0, Value: c(5)},
		&ir.GetLocal{Local: 0, ValType: ir.ValI32},
	}}
	inner.Finalize()

	sum := &ir.Binary{
		Op:      "i32.add",
		Left:    &ir.GetLocal{Local: 0, ValType: ir.ValI32},
		Right:   &ir.GetLocal{Local: 1, ValType: ir.ValI32},
		RetType: ir.ValI32,
	}
	sum.Finalize()

	root := &ir.Block{List: []ir.Node{
		b.MakeDrop(inner),
		&ir.SetLocal{Local: 1, Value: c(10)},
		&ir.Return{Value: sum},
	}}
	root.Finalize()
	return root
}

// execute lowers body to a single-function wasm module (two i32 locals, no
// imports) and runs it with wazero, returning the i32 result.
func execute(body *ir.Block) (int32, error) {
	var code []wasm.Instruction
	for _, item := range body.List {
		code = append(code, lower(item)...)
	}
	code = append(code, wasm.Instruction{Opcode: wasm.OpEnd})

	mod := &wasm.Module{
		Types: []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Funcs: []uint32{0},
		Code: []wasm.FuncBody{{
			Locals: []wasm.LocalEntry{{Count: 2, ValType: wasm.ValI32}},
			Code:   wasm.EncodeInstructions(code),
		}},
		Exports: []wasm.Export{{Name: "compute", Kind: wasm.KindFunc, Idx: 0}},
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, mod.Encode())
	if err != nil {
		return 0, fmt.Errorf("compile: %w", err)
	}
	instance, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return 0, fmt.Errorf("instantiate: %w", err)
	}
	defer instance.Close(ctx)

	results, err := instance.ExportedFunction("compute").Call(ctx)
	if err != nil {
		return 0, fmt.Errorf("call: %w", err)
	}
	return int32(results[0]), nil
}

// lower emits the wasm bytecode for a node drawn from the restricted shape
// buildRoundTripBody produces: Block, Drop, SetLocal, GetLocal, Const,
// Binary("i32.add"), Return. It is a demo-only lowering, not a general
// ir-to-wasm compiler.
func lower(n ir.Node) []wasm.Instruction {
	switch t := n.(type) {
	case *ir.Block:
		var out []wasm.Instruction
		blockType := blockTypeOf(t.Type())
		out = append(out, wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: blockType}})
		for _, item := range t.List {
			out = append(out, lower(item)...)
		}
		out = append(out, wasm.Instruction{Opcode: wasm.OpEnd})
		return out
	case *ir.Drop:
		return append(lower(t.Value), wasm.Instruction{Opcode: wasm.OpDrop})
	case *ir.SetLocal:
		return append(lower(t.Value), wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: t.Local}})
	case *ir.GetLocal:
		return []wasm.Instruction{{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: t.Local}}}
	case *ir.Const:
		return []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: t.I32}}}
	case *ir.Binary:
		out := append(lower(t.Left), lower(t.Right)...)
		return append(out, wasm.Instruction{Opcode: wasm.OpI32Add})
	case *ir.Return:
		return lower(t.Value)
	default:
		panic(fmt.Sprintf("lower: unsupported node %T in demo round trip", n))
	}
}

func blockTypeOf(t ir.ValType) int32 {
	if t == ir.ValI32 {
		return -1
	}
	return -64
}
