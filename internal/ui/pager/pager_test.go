package pager

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runBatch executes a command, flattening one level of batching.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m := c(); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func TestNew_ClampsPerPage(t *testing.T) {
	m := New(0)
	assert.Equal(t, 1, m.PerPage())
}

func TestSetTotal_ComputesPages(t *testing.T) {
	m := New(5).SetTotal(12)
	assert.Equal(t, 3, m.TotalPages())
}

func TestSetTotal_ClampsCurrentPage(t *testing.T) {
	m := New(5).SetTotal(20).SetPage(3)
	require.Equal(t, 3, m.Page())

	m = m.SetTotal(6)
	assert.Equal(t, 1, m.Page(), "page should clamp when total shrinks")
}

func TestSetPage_Bounds(t *testing.T) {
	m := New(5).SetTotal(12)

	assert.Equal(t, 0, m.SetPage(-2).Page())
	assert.Equal(t, 2, m.SetPage(99).Page())
}

func TestSliceBounds(t *testing.T) {
	m := New(5).SetTotal(12).SetPage(2)

	start, end := m.SliceBounds(12)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)
}

func TestUpdate_NextKeyEmitsRequestAndPageChange(t *testing.T) {
	m := New(5).SetTotal(12)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	msgs := runBatch(cmd)

	assert.Equal(t, 1, m.Page())
	assert.Contains(t, msgs, NextRequestedMsg{})
	assert.Contains(t, msgs, PageChangedMsg{Page: 1})
}

func TestUpdate_PrevOnFirstPageRequestsWithoutChange(t *testing.T) {
	m := New(5).SetTotal(12)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	msgs := runBatch(cmd)

	assert.Equal(t, 0, m.Page())
	assert.Contains(t, msgs, PrevRequestedMsg{})
	assert.NotContains(t, msgs, PageChangedMsg{Page: 0})
}

func TestView_EmptyForSinglePage(t *testing.T) {
	m := New(10).SetTotal(3)
	assert.Empty(t, m.View())
}

func TestView_ShowsCounter(t *testing.T) {
	m := New(5).SetTotal(12).SetPage(1)
	assert.Contains(t, m.View(), "2/3")
}

func TestSetPerPage_Recomputes(t *testing.T) {
	m := New(5).SetTotal(12)
	m = m.SetPerPage(4)

	assert.Equal(t, 3, m.TotalPages())
	assert.Equal(t, 4, m.PerPage())
}
