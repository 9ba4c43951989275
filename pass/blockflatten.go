package pass

import "github.com/wippyai/wasm-blockmerge/ir"

// optimizeBlock flattens block's anonymous child blocks into block itself,
// and sinks a drop of an anonymous or safely-strippable labeled block into
// that block's own tail. It iterates to a fixed point: each splice can
// expose another block one level up, so it keeps going until a pass over
// the whole list finds nothing left to do, then re-finalizes block to its
// own (unchanged) declared type.
func (v *visitor) optimizeBlock(block *ir.Block) {
	changed := false

	for {
		more := false

		for i := 0; i < len(block.List); i++ {
			child, ok := block.List[i].(*ir.Block)
			if !ok {
				child = nil
				if drop, ok := block.List[i].(*ir.Drop); ok {
					if inner, ok := drop.Value.(*ir.Block); ok && !hasUnreachableChild(inner) {
						proceed := true
						if inner.Label != "" {
							pf := &problemFinder{origin: inner.Label, analyzer: v.analyzer}
							pf.walk(inner)
							if pf.found() {
								proceed = false
							} else {
								stripper := &breakValueStripper{origin: inner.Label, v: v}
								var innerNode ir.Node = inner
								stripper.walk(&innerNode)
								inner = innerNode.(*ir.Block)
							}
						}
						if proceed {
							drop.Value = inner.List[len(inner.List)-1]
							drop.Finalize()
							inner.List[len(inner.List)-1] = drop
							inner.Finalize()
							block.List[i] = inner
							child = inner
							more = true
							changed = true
						}
					}
				}
			}

			if child == nil {
				continue
			}
			if child.Label != "" {
				continue
			}

			merged := make([]ir.Node, 0, len(block.List)-1+len(child.List))
			merged = append(merged, block.List[:i]...)
			merged = append(merged, child.List...)
			merged = append(merged, block.List[i+1:]...)

			if len(merged) > 0 {
				last := merged[len(merged)-1]
				for j, item := range merged {
					if item != last && item.Type().IsConcrete() {
						merged[j] = builder.MakeDrop(item)
					}
				}
			}

			block.List = merged
			more = true
			changed = true
			break
		}

		if !more {
			break
		}
	}

	if changed {
		block.FinalizeAs(block.Type())
	}
}
