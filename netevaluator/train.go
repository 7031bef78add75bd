package netevaluator

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Train fits the network's parameters on a batch of (board tensor,
// policy target, value target) examples for the given number of
// epochs with a fixed learning rate, using plain SGD. Examples are
// flattened into dense tensors once; a fresh training graph shares the
// current parameter values so the inference graph can be updated in
// place afterwards.
func (n *Net) Train(boards, policies [][]float32, values []float32, epochs int, learnRate float32) error {
	batch := len(boards)
	if batch == 0 {
		return errors.New("netevaluator: no training examples")
	}
	in := n.cfg.Features * n.cfg.Width * n.cfg.Height

	xBacking := make([]float32, 0, batch*in)
	for _, b := range boards {
		xBacking = append(xBacking, b...)
	}
	pBacking := make([]float32, 0, batch*n.cfg.ActionSpace)
	for _, p := range policies {
		pBacking = append(pBacking, p...)
	}

	g := gorgonia.NewGraph()
	x := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(batch, in), gorgonia.WithName("x"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(batch, in), tensor.WithBacking(xBacking))))
	policyTarget := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(batch, n.cfg.ActionSpace), gorgonia.WithName("policyTarget"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(batch, n.cfg.ActionSpace), tensor.WithBacking(pBacking))))
	valueTarget := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(batch, 1), gorgonia.WithName("valueTarget"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(batch, 1), tensor.WithBacking(values))))

	w1 := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(in, n.cfg.K), gorgonia.WithName("w1"), gorgonia.WithValue(cloneValue(n.w1)))
	b1 := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, n.cfg.K), gorgonia.WithName("b1"), gorgonia.WithValue(cloneValue(n.b1)))
	wp := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(n.cfg.K, n.cfg.ActionSpace), gorgonia.WithName("wp"), gorgonia.WithValue(cloneValue(n.wp)))
	bp := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, n.cfg.ActionSpace), gorgonia.WithName("bp"), gorgonia.WithValue(cloneValue(n.bp)))
	wv := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(n.cfg.K, 1), gorgonia.WithName("wv"), gorgonia.WithValue(cloneValue(n.wv)))
	bv := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, 1), gorgonia.WithName("bv"), gorgonia.WithValue(cloneValue(n.bv)))

	h, err := gorgonia.Mul(x, w1)
	if err != nil {
		return errors.WithStack(err)
	}
	h, err = gorgonia.BroadcastAdd(h, b1, nil, []byte{0})
	if err != nil {
		return errors.WithStack(err)
	}
	h, err = gorgonia.Rectify(h)
	if err != nil {
		return errors.WithStack(err)
	}

	policyLogits, err := gorgonia.Mul(h, wp)
	if err != nil {
		return errors.WithStack(err)
	}
	policyLogits, err = gorgonia.BroadcastAdd(policyLogits, bp, nil, []byte{0})
	if err != nil {
		return errors.WithStack(err)
	}
	policyOut, err := gorgonia.SoftMax(policyLogits)
	if err != nil {
		return errors.WithStack(err)
	}

	valueLogit, err := gorgonia.Mul(h, wv)
	if err != nil {
		return errors.WithStack(err)
	}
	valueLogit, err = gorgonia.BroadcastAdd(valueLogit, bv, nil, []byte{0})
	if err != nil {
		return errors.WithStack(err)
	}
	valueOut, err := gorgonia.Tanh(valueLogit)
	if err != nil {
		return errors.WithStack(err)
	}

	logPolicy, err := gorgonia.Log(policyOut)
	if err != nil {
		return errors.WithStack(err)
	}
	ce, err := gorgonia.HadamardProd(policyTarget, logPolicy)
	if err != nil {
		return errors.WithStack(err)
	}
	ceSum, err := gorgonia.Sum(ce)
	if err != nil {
		return errors.WithStack(err)
	}
	policyLoss, err := gorgonia.Neg(ceSum)
	if err != nil {
		return errors.WithStack(err)
	}

	diff, err := gorgonia.Sub(valueOut, valueTarget)
	if err != nil {
		return errors.WithStack(err)
	}
	sq, err := gorgonia.Square(diff)
	if err != nil {
		return errors.WithStack(err)
	}
	valueLoss, err := gorgonia.Sum(sq)
	if err != nil {
		return errors.WithStack(err)
	}

	loss, err := gorgonia.Add(policyLoss, valueLoss)
	if err != nil {
		return errors.WithStack(err)
	}

	params := gorgonia.Nodes{w1, b1, wp, bp, wv, bv}
	if _, err := gorgonia.Grad(loss, params...); err != nil {
		return errors.WithStack(err)
	}

	vm := gorgonia.NewTapeMachine(g, gorgonia.BindDualValues(params...))
	defer vm.Close()
	solver := gorgonia.NewVanillaSolver(gorgonia.WithLearnRate(float64(learnRate)))

	for e := 0; e < epochs; e++ {
		vm.Reset()
		if err := vm.RunAll(); err != nil {
			return errors.WithStack(err)
		}
		if err := solver.Step(gorgonia.NodesToValueGrads(params)); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := gorgonia.Let(n.w1, w1.Value()); err != nil {
		return errors.WithStack(err)
	}
	if err := gorgonia.Let(n.b1, b1.Value()); err != nil {
		return errors.WithStack(err)
	}
	if err := gorgonia.Let(n.wp, wp.Value()); err != nil {
		return errors.WithStack(err)
	}
	if err := gorgonia.Let(n.bp, bp.Value()); err != nil {
		return errors.WithStack(err)
	}
	if err := gorgonia.Let(n.wv, wv.Value()); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(gorgonia.Let(n.bv, bv.Value()))
}

func cloneValue(node *gorgonia.Node) *tensor.Dense {
	return node.Value().(*tensor.Dense).Clone().(*tensor.Dense)
}
