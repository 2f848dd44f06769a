package translator

import "github.com/minz/wasmreg/pkg/regir"

// PreserveLocal handles the case where a
// `local.set i`/`local.tee i` is about to overwrite local i: every
// reference to that local currently on the value stack is rewritten to
// a freshly allocated preserved register, with a copy emitted to carry
// its pre-mutation value forward. Preserved registers behave exactly
// like dynamic ones for lifetime purposes (refcounted, released on
// truncation) but are never reused while still referenced.
func PreserveLocal(vs *ValueStack, enc *Encoder, local regir.Reg) error {
	for i := range vs.stack {
		p := vs.stack[i]
		if p.IsConst() || p.Reg() != local {
			continue
		}
		preserved, err := vs.allocDynamic()
		if err != nil {
			return err
		}
		enc.PushInstr(regir.MakeCopy(preserved, local))
		vs.stack[i] = RegProvider(preserved)
		vs.retain(vs.stack[i])
	}
	return nil
}

// PreserveAllLocals implements "preserve_all_locals": every local
// currently visible on the value stack is preserved before entering a
// control structure whose body might mutate it conditionally. Preserved
// registers allocated for contiguous stack positions are fused into
// Copy2/CopyManyNonOverlapping by routing through EncodeCopies.
func PreserveAllLocals(vs *ValueStack, enc *Encoder, numLocals int) error {
	type pending struct {
		stackIdx int
		oldLocal regir.Reg
	}
	var work []pending
	for i, p := range vs.stack {
		if p.IsConst() || int(p.Reg()) >= numLocals {
			continue
		}
		work = append(work, pending{stackIdx: i, oldLocal: p.Reg()})
	}
	if len(work) == 0 {
		return nil
	}

	start := vs.nextReg
	for range work {
		if _, err := vs.allocDynamic(); err != nil {
			return err
		}
	}
	results := regir.NewBoundedRegSpan(start, len(work))
	values := make([]Provider, len(work))
	for i, w := range work {
		values[i] = RegProvider(w.oldLocal)
	}
	if err := enc.EncodeCopies(results, values, &vs.pool); err != nil {
		return err
	}
	for i, w := range work {
		newReg := results.Reg(i)
		vs.stack[w.stackIdx] = RegProvider(newReg)
		vs.retain(vs.stack[w.stackIdx])
	}
	return nil
}

// GCPreservations releases any preserved/dynamic register no longer
// referenced — a no-op here because ValueStack already refcounts
// eagerly on push/pop; this entry point exists so callers have a
// symmetric call after a sequence of IncUsage/DecUsage pairs, and is
// where a future generation-based GC could hook in without changing
// callers.
func GCPreservations(vs *ValueStack) {
	for r, n := range vs.refcount {
		if n <= 0 {
			delete(vs.refcount, r)
		}
	}
}
