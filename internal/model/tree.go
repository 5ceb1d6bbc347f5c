package model

import "fmt"

// TreeNode is one node of a fitted binary decision tree. Leaves have
// Left and Right set to -1 and carry Value.
type TreeNode struct {
	Feature   int       `json:"feature" yaml:"feature"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Left      int       `json:"left" yaml:"left"`
	Right     int       `json:"right" yaml:"right"`
	Value     []float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

func (n TreeNode) leaf() bool { return n.Left < 0 && n.Right < 0 }

type tree struct {
	nodes []TreeNode
}

// newTree checks that every split points forward to an existing node, which
// rules out cycles, and that every leaf has a value.
func newTree(nodes []TreeNode) (tree, error) {
	if len(nodes) == 0 {
		return tree{}, fmt.Errorf("%w: tree has no nodes", ErrInvalidArtifact)
	}
	for i, n := range nodes {
		if n.leaf() {
			if len(n.Value) == 0 {
				return tree{}, fmt.Errorf("%w: leaf %d has no value", ErrInvalidArtifact, i)
			}
			continue
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(nodes) || n.Right >= len(nodes) {
			return tree{}, fmt.Errorf("%w: node %d has invalid children %d/%d", ErrInvalidArtifact, i, n.Left, n.Right)
		}
		if n.Feature < 0 {
			return tree{}, fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidArtifact, i, n.Feature)
		}
	}
	return tree{nodes: nodes}, nil
}

func (t tree) leafValue(x []float64) ([]float64, error) {
	i := 0
	for {
		n := t.nodes[i]
		if n.leaf() {
			return n.Value, nil
		}
		if n.Feature >= len(x) {
			return nil, fmt.Errorf("%w: tree splits on feature %d, reading has %d", ErrFeatureMismatch, n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// TreeClassifier returns the label with the largest leaf count.
type TreeClassifier struct {
	tree
}

func NewTreeClassifier(nodes []TreeNode) (*TreeClassifier, error) {
	t, err := newTree(nodes)
	if err != nil {
		return nil, err
	}
	return &TreeClassifier{t}, nil
}

func (c *TreeClassifier) Classify(x []float64) (int, error) {
	value, err := c.leafValue(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, v := range value {
		if v > value[best] {
			best = i
		}
	}
	return best, nil
}

type TreeRegressor struct {
	tree
}

func NewTreeRegressor(nodes []TreeNode) (*TreeRegressor, error) {
	t, err := newTree(nodes)
	if err != nil {
		return nil, err
	}
	return &TreeRegressor{t}, nil
}

func (r *TreeRegressor) Regress(x []float64) (float64, error) {
	value, err := r.leafValue(x)
	if err != nil {
		return 0, err
	}
	return value[0], nil
}
