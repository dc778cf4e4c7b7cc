// SPDX-License-Identifier: MIT

// Package clone provides a differential-testing Solver adapter: it drives
// two independent mcflow.Solver implementations through the exact same
// sequence of edits, reads every query exclusively from one of them (the
// Master), and exposes both so a caller can assert they agree (spec.md
// §4.5, §8's "C4 vs C5 objective/flow agreement" testable property).
package clone

import (
	"time"

	"github.com/katalvlaran/mcflow"
)

// Factory constructs a fresh, empty mcflow.Solver instance, e.g.
// func() mcflow.Solver { return simplex.NewSolver() }.
type Factory func() mcflow.Solver

// Adapter wraps a Master and a Slave solver behind a single mcflow.Solver:
// every mutation is forwarded to both (AddNode/AddArc in Slave-then-Master
// order so the name returned to the caller is always Master's, per
// spec.md §4.5; every other edit in Master-then-Slave order), and every
// query is answered exclusively by Master.
type Adapter struct {
	master mcflow.Solver
	slave  mcflow.Solver
}

// NewAdapter constructs an Adapter from two factories.
func NewAdapter(master, slave Factory) *Adapter {
	return &Adapter{master: master(), slave: slave()}
}

// Master and Slave expose the two underlying solvers directly, for tests
// that want to compare FO/DenseX/Status beyond what Adapter itself reports.
func (a *Adapter) Master() mcflow.Solver { return a.master }
func (a *Adapter) Slave() mcflow.Solver  { return a.slave }

func (a *Adapter) LoadNet(nMax, mMax, n, m int, u, c, b []float64, tail, head []mcflow.Index) error {
	if err := a.master.LoadNet(nMax, mMax, n, m, u, c, b, tail, head); err != nil {
		return err
	}
	return a.slave.LoadNet(nMax, mMax, n, m, u, c, b, tail, head)
}

func (a *Adapter) PreProcess() error {
	if err := a.master.PreProcess(); err != nil {
		return err
	}
	return a.slave.PreProcess()
}

func (a *Adapter) SetParamInt(key mcflow.ParamKey, value int) error {
	if err := a.master.SetParamInt(key, value); err != nil {
		return err
	}
	return a.slave.SetParamInt(key, value)
}

func (a *Adapter) SetParamFloat(key mcflow.ParamKey, value float64) error {
	if err := a.master.SetParamFloat(key, value); err != nil {
		return err
	}
	return a.slave.SetParamFloat(key, value)
}

func (a *Adapter) ParamInt(key mcflow.ParamKey) int       { return a.master.ParamInt(key) }
func (a *Adapter) ParamFloat(key mcflow.ParamKey) float64 { return a.master.ParamFloat(key) }

// SolveMCF runs both solvers. A Master error aborts before the Slave is
// asked to solve, so the two never drift further out of sync than the
// edit history already committed to both.
func (a *Adapter) SolveMCF() error {
	if err := a.master.SolveMCF(); err != nil {
		return err
	}
	return a.slave.SolveMCF()
}

func (a *Adapter) Status() mcflow.Status { return a.master.Status() }
func (a *Adapter) FO() float64           { return a.master.FO() }

func (a *Adapter) DenseX(start, stop int) []float64         { return a.master.DenseX(start, stop) }
func (a *Adapter) SubsetX(names []mcflow.Index) []float64   { return a.master.SubsetX(names) }
func (a *Adapter) SparseX() ([]float64, []mcflow.Index)     { return a.master.SparseX() }
func (a *Adapter) DensePi(start, stop int) []float64        { return a.master.DensePi(start, stop) }
func (a *Adapter) SubsetPi(names []mcflow.Index) []float64  { return a.master.SubsetPi(names) }
func (a *Adapter) DenseRC(start, stop int) []float64        { return a.master.DenseRC(start, stop) }
func (a *Adapter) SubsetRC(names []mcflow.Index) []float64  { return a.master.SubsetRC(names) }

func (a *Adapter) Arcs(names []mcflow.Index, start, stop int) ([]mcflow.Index, []mcflow.Index) {
	return a.master.Arcs(names, start, stop)
}
func (a *Adapter) Costs(names []mcflow.Index, start, stop int) []float64 {
	return a.master.Costs(names, start, stop)
}
func (a *Adapter) UCaps(names []mcflow.Index, start, stop int) []float64 {
	return a.master.UCaps(names, start, stop)
}
func (a *Adapter) Dfcts(names []mcflow.Index, start, stop int) []float64 {
	return a.master.Dfcts(names, start, stop)
}
func (a *Adapter) QCoef(names []mcflow.Index, start, stop int) []float64 {
	return a.master.QCoef(names, start, stop)
}
func (a *Adapter) SNode(arc mcflow.Index) mcflow.Index { return a.master.SNode(arc) }
func (a *Adapter) ENode(arc mcflow.Index) mcflow.Index { return a.master.ENode(arc) }

func (a *Adapter) ChgCost(arc mcflow.Index, c float64) error {
	if err := a.master.ChgCost(arc, c); err != nil {
		return err
	}
	return a.slave.ChgCost(arc, c)
}

func (a *Adapter) ChgQCoef(arc mcflow.Index, q float64) error {
	if err := a.master.ChgQCoef(arc, q); err != nil {
		return err
	}
	return a.slave.ChgQCoef(arc, q)
}

func (a *Adapter) ChgUCap(arc mcflow.Index, u float64) error {
	if err := a.master.ChgUCap(arc, u); err != nil {
		return err
	}
	return a.slave.ChgUCap(arc, u)
}

func (a *Adapter) ChgDfct(node mcflow.Index, b float64) error {
	if err := a.master.ChgDfct(node, b); err != nil {
		return err
	}
	return a.slave.ChgDfct(node, b)
}

func (a *Adapter) CloseArc(arc mcflow.Index) error {
	if err := a.master.CloseArc(arc); err != nil {
		return err
	}
	return a.slave.CloseArc(arc)
}

func (a *Adapter) OpenArc(arc mcflow.Index) error {
	if err := a.master.OpenArc(arc); err != nil {
		return err
	}
	return a.slave.OpenArc(arc)
}

func (a *Adapter) DelArc(arc mcflow.Index) error {
	if err := a.master.DelArc(arc); err != nil {
		return err
	}
	return a.slave.DelArc(arc)
}

func (a *Adapter) DelNode(node mcflow.Index) error {
	if err := a.master.DelNode(node); err != nil {
		return err
	}
	return a.slave.DelNode(node)
}

// AddArc and AddNode call Slave first: Master's name is what Adapter
// reports back to the caller (spec.md §4.5), so Master must be the last
// word on what that name is, even though it is not the first solver asked
// to allocate one.
func (a *Adapter) AddArc(tail, head mcflow.Index, u, c float64) (mcflow.Index, error) {
	if _, err := a.slave.AddArc(tail, head, u, c); err != nil {
		return 0, err
	}
	return a.master.AddArc(tail, head, u, c)
}

func (a *Adapter) AddNode(b float64) (mcflow.Index, error) {
	if _, err := a.slave.AddNode(b); err != nil {
		return 0, err
	}
	return a.master.AddNode(b)
}

func (a *Adapter) ChangeArc(arc mcflow.Index, nSS, nEN mcflow.Index) error {
	if err := a.master.ChangeArc(arc, nSS, nEN); err != nil {
		return err
	}
	return a.slave.ChangeArc(arc, nSS, nEN)
}

// State captures only Master's state: Slave is a disposable differential
// witness, never a restore target on its own (Design Note "Clone state
// scope").
func (a *Adapter) State() mcflow.State    { return a.master.State() }
func (a *Adapter) PutState(s mcflow.State) error {
	if err := a.master.PutState(s); err != nil {
		return err
	}
	return nil
}

// TimeMCF sums both solvers' cumulative SolveMCF time, per spec.md §4.5.
func (a *Adapter) TimeMCF() time.Duration {
	return a.master.TimeMCF() + a.slave.TimeMCF()
}

var _ mcflow.Solver = (*Adapter)(nil)
