// Package netevaluator is a small dual (policy+value) network built on
// gorgonia, satisfying the evaluator.Evaluator contract.
package netevaluator

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/alphabeth-othello/othello"
)

// Net is a forward-only two-head network: a shared dense+ReLU trunk
// feeding a softmax policy head (65 slots) and a tanh value head.
type Net struct {
	cfg Config

	g     *gorgonia.ExprGraph
	input *gorgonia.Node

	w1, b1 *gorgonia.Node
	wp, bp *gorgonia.Node
	wv, bv *gorgonia.Node

	policyOut, valueOut *gorgonia.Node
	vm                  gorgonia.VM
}

// New builds a Net from cfg, with Glorot-initialised weights and
// zeroed biases.
func New(cfg Config) (*Net, error) {
	if !cfg.IsValid() {
		return nil, errors.New("netevaluator: invalid config")
	}
	in := cfg.Features * cfg.Width * cfg.Height

	g := gorgonia.NewGraph()
	input := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, in), gorgonia.WithName("input"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(1, in), tensor.WithBacking(make([]float32, in)))))

	w1 := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(in, cfg.K), gorgonia.WithName("w1"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	b1 := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, cfg.K), gorgonia.WithName("b1"), gorgonia.WithInit(gorgonia.Zeroes()))
	h, err := gorgonia.Mul(input, w1)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	h, err = gorgonia.BroadcastAdd(h, b1, nil, []byte{0})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	h, err = gorgonia.Rectify(h)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wp := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(cfg.K, cfg.ActionSpace), gorgonia.WithName("wp"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	bp := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, cfg.ActionSpace), gorgonia.WithName("bp"), gorgonia.WithInit(gorgonia.Zeroes()))
	policyLogits, err := gorgonia.Mul(h, wp)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	policyLogits, err = gorgonia.BroadcastAdd(policyLogits, bp, nil, []byte{0})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	policyOut, err := gorgonia.SoftMax(policyLogits)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wv := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(cfg.K, 1), gorgonia.WithName("wv"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	bv := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, 1), gorgonia.WithName("bv"), gorgonia.WithInit(gorgonia.Zeroes()))
	valueLogit, err := gorgonia.Mul(h, wv)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	valueLogit, err = gorgonia.BroadcastAdd(valueLogit, bv, nil, []byte{0})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	valueOut, err := gorgonia.Tanh(valueLogit)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Net{
		cfg:       cfg,
		g:         g,
		input:     input,
		w1:        w1,
		b1:        b1,
		wp:        wp,
		bp:        bp,
		wv:        wv,
		bv:        bv,
		policyOut: policyOut,
		valueOut:  valueOut,
		vm:        gorgonia.NewTapeMachine(g),
	}, nil
}

// Evaluate implements evaluator.Evaluator.
func (n *Net) Evaluate(board othello.Board, side othello.Player) (policy []float32, value float32) {
	in := board.ToTensor(side)
	if err := gorgonia.Let(n.input, tensor.New(tensor.WithShape(1, len(in)), tensor.WithBacking(in))); err != nil {
		panic(errors.Wrap(err, "netevaluator: binding input"))
	}
	n.vm.Reset()
	if err := n.vm.RunAll(); err != nil {
		panic(errors.Wrap(err, "netevaluator: forward pass"))
	}

	policyData := n.policyOut.Value().Data().([]float32)
	policy = make([]float32, othello.NumSlots)
	copy(policy, policyData)

	valueData := n.valueOut.Value().Data().([]float32)
	return policy, valueData[0]
}

// Close releases the network's tape machine.
func (n *Net) Close() error {
	return n.vm.Close()
}
