package ml

import "sort"

// treeNode is one node of a CART regression tree.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// regressionTree is a CART regressor using variance-reduction splits over
// the full feature set, grown to a bounded depth.
type regressionTree struct {
	root     *treeNode
	maxDepth int
}

const minSamplesSplit = 2

func (t *regressionTree) fit(x [][]float64, y []float64) {
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.grow(x, y, idx, 0)
}

func (t *regressionTree) grow(x [][]float64, y []float64, idx []int, depth int) *treeNode {
	if depth >= t.maxDepth || len(idx) < minSamplesSplit {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(x, y, left, depth+1),
		right:     t.grow(x, y, right, depth+1),
	}
}

func (t *regressionTree) predict(row []float64) float64 {
	node := t.root
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// bestSplit scans every feature for the threshold that minimizes the summed
// squared error of the two children. Returns ok=false when no split
// separates the samples.
func bestSplit(x [][]float64, y []float64, idx []int) (int, float64, bool) {
	n := len(idx)
	bestSSE := sseAt(y, idx)
	bestFeature, bestThreshold := -1, 0.0

	order := make([]int, n)
	for f := 0; f < len(x[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		// Running sums for the left partition; the right side is derived
		// from the totals.
		var leftSum, leftSq float64
		totalSum, totalSq := sums(y, idx)

		for k := 0; k < n-1; k++ {
			yv := y[order[k]]
			leftSum += yv
			leftSq += yv * yv

			cur, next := x[order[k]][f], x[order[k+1]][f]
			if cur == next {
				continue
			}

			leftN := float64(k + 1)
			rightN := float64(n - k - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq

			sse := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)
			if sse < bestSSE-1e-12 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sums(y []float64, idx []int) (float64, float64) {
	var sum, sq float64
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	return sum, sq
}

func sseAt(y []float64, idx []int) float64 {
	sum, sq := sums(y, idx)
	n := float64(len(idx))
	if n == 0 {
		return 0
	}
	return sq - sum*sum/n
}
