package bench

import (
	"fmt"
	"io"
)

// ProgressObserver prints "inserted n / total" to w every Stride
// insertions, mirroring the reference Logger::updateProgress<I, Ns...>
// modulo-I gating but as a plain runtime value instead of a template
// parameter. Stride <= 0 disables printing.
type ProgressObserver struct {
	W      io.Writer
	Total  int
	Stride int
}

func (p ProgressObserver) OnBeginInsert(n int) {
	if p.Stride <= 0 {
		return
	}
	if n%p.Stride == 0 {
		fmt.Fprintf(p.W, "inserted %d / %d\n", n, p.Total)
	}
}

func (p ProgressObserver) OnEndInsert(int)    {}
func (p ProgressObserver) OnBeginPass(string) {}
func (p ProgressObserver) OnEndPass(string)   {}

var _ Observer = ProgressObserver{}
