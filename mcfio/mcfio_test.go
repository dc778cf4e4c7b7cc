// SPDX-License-Identifier: MIT
package mcfio_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mcflow"
	"github.com/katalvlaran/mcflow/mcfio"
	"github.com/katalvlaran/mcflow/sptree"
)

const triangleDIMACS = `c triangle transportation instance
p min 3 3
n 1 -10
n 2 5
n 3 5
a 1 2 0 Inf 1
a 1 3 0 Inf 4
a 2 3 0 Inf 1
`

func TestReadDIMACS_Basic(t *testing.T) {
	n, m, u, c, b, tail, head, err := mcfio.ReadDIMACS(strings.NewReader(triangleDIMACS))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, m)
	assert.Equal(t, []float64{-10, 5, 5}, b)
	assert.Equal(t, []int{1, 1, 2}, tail)
	assert.Equal(t, []int{2, 3, 3}, head)
	assert.Equal(t, []float64{1, 4, 1}, c)
	require.Len(t, u, 3)
	assert.True(t, mcflow.IsPosInf(u[0]))
}

func TestReadDIMACS_FeedsLoadNet(t *testing.T) {
	n, m, u, c, b, tail, head, err := mcfio.ReadDIMACS(strings.NewReader(triangleDIMACS))
	require.NoError(t, err)

	tailIdx := make([]mcflow.Index, m)
	headIdx := make([]mcflow.Index, m)
	for i := range tail {
		tailIdx[i] = mcflow.Index(tail[i])
		headIdx[i] = mcflow.Index(head[i])
	}

	s := sptree.NewSolver()
	require.NoError(t, s.LoadNet(n, m, n, m, u, c, b, tailIdx, headIdx))
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 15.0, s.FO(), 1e-6)
}

func TestReadDIMACS_MissingProblemLine(t *testing.T) {
	_, _, _, _, _, _, _, err := mcfio.ReadDIMACS(strings.NewReader("n 1 5\n"))
	assert.ErrorIs(t, err, mcfio.ErrMissingProblemLine)
}

func TestReadDIMACS_MalformedLine(t *testing.T) {
	_, _, _, _, _, _, _, err := mcfio.ReadDIMACS(strings.NewReader("p min 2 1\nx garbage\n"))
	assert.ErrorIs(t, err, mcfio.ErrMalformedLine)
}

func TestReadDIMACS_RejectsNonzeroLowerBound(t *testing.T) {
	src := "p min 2 1\na 1 2 3 10 1\n"
	_, _, _, _, _, _, _, err := mcfio.ReadDIMACS(strings.NewReader(src))
	assert.ErrorIs(t, err, mcfio.ErrLowerBoundUnsupported)
}

func TestWriteDIMACS_RoundTripsObjective(t *testing.T) {
	u := []float64{mcflow.PosInf(), mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 4, 1}
	b := []float64{-10, 5, 5}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{2, 3, 3}

	s := sptree.NewSolver()
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())

	var buf bytes.Buffer
	require.NoError(t, mcfio.WriteDIMACS(&buf, s))

	n, m, u2, c2, b2, tail2, head2, err := mcfio.ReadDIMACS(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, m)

	tailIdx := make([]mcflow.Index, m)
	headIdx := make([]mcflow.Index, m)
	for i := range tail2 {
		tailIdx[i] = mcflow.Index(tail2[i])
		headIdx[i] = mcflow.Index(head2[i])
	}
	s2 := sptree.NewSolver()
	require.NoError(t, s2.LoadNet(n, m, n, m, u2, c2, b2, tailIdx, headIdx))
	require.NoError(t, s2.SolveMCF())
	assert.InDelta(t, s.FO(), s2.FO(), 1e-6)
}

func TestWriteDIMACS_SkipsDeletedArc(t *testing.T) {
	u := []float64{mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 1}
	b := []float64{-5, 5}
	tail := []mcflow.Index{1, 1}
	head := []mcflow.Index{2, 2}

	s := sptree.NewSolver()
	require.NoError(t, s.LoadNet(2, 2, 2, 2, u, c, b, tail, head))
	require.NoError(t, s.DelArc(1))

	var buf bytes.Buffer
	require.NoError(t, mcfio.WriteDIMACS(&buf, s))
	assert.NotContains(t, buf.String(), "a 1 2 0 Inf 1\na 1 2 0 Inf 1")

	n, m, _, _, _, _, _, err := mcfio.ReadDIMACS(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, m)
}

func TestErrors_AreSentinels(t *testing.T) {
	assert.True(t, errors.Is(mcfio.ErrMalformedLine, mcfio.ErrMalformedLine))
}
