package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF(t *testing.T) {
	plans := buildTestPlans(t)
	path := filepath.Join(t.TempDir(), "plan.dxf")
	require.NoError(t, ExportDXF(path, plans, 500))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	// Three outlines and nine tables, four lines each.
	lines := 0
	maxX := 0.0
	for _, e := range d.Entities() {
		if l, ok := e.(*entity.Line); ok {
			lines++
			maxX = max(maxX, l.Start[0], l.End[0])
		}
	}
	assert.Equal(t, 4*(3+9), lines)
	// 10 + 2 + 3 + 2 + 1 cells wide.
	assert.InDelta(t, 18*500.0, maxX, 1e-6)
}

func TestExportDXF_Empty(t *testing.T) {
	assert.ErrorIs(t, ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), nil, 1), ErrNoPlans)
}
