package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

func newTestTUI() (*TUI, *bytes.Buffer) {
	simple, buf := newTestUI(FormatTable)
	return NewTUI(buf, simple), buf
}

func numberedBody(n int) string {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}

	return strings.Join(lines, "\n") + "\n"
}

func TestTUI_PrintsSmallTablesDirectly(t *testing.T) {
	tui, buf := newTestTUI()

	require.NoError(t, tui.DisplayGroups(context.Background(), sampleSummary().Removed.Descriptors))

	got := buf.String()
	assert.Contains(t, got, "Deprecated API groups")
	assert.Contains(t, got, "ingressclasses, ingresses")
}

func TestTUI_DisplaySummary(t *testing.T) {
	tui, buf := newTestTUI()

	require.NoError(t, tui.DisplaySummary(context.Background(), sampleSummary()))
	assert.Contains(t, buf.String(), "API changes 1.21 -> 1.22")
}

func TestTUI_DisplayFindings(t *testing.T) {
	t.Run("with findings", func(t *testing.T) {
		tui, buf := newTestTUI()

		require.NoError(t, tui.DisplayFindings(context.Background(), sampleReport()))
		assert.Contains(t, buf.String(), "Deprecated APIs found in 3 scanned file(s)")
		assert.Contains(t, buf.String(), "charts/ingress.yaml")
	})

	t.Run("without findings falls back to simple output", func(t *testing.T) {
		tui, buf := newTestTUI()

		require.NoError(t, tui.DisplayFindings(context.Background(), m.Report{FilesScanned: 2}))
		assert.Equal(t, "No deprecated APIs found in 2 file(s)\n", buf.String())
	})
}

func TestPagerModel_NoPagination_ShowsAllContent(t *testing.T) {
	model := newPagerModel("title", numberedBody(5))
	model.height = 40

	assert.False(t, model.needsPagination())

	view := model.View()
	for i := 1; i <= 5; i++ {
		assert.Contains(t, view, fmt.Sprintf("line %d\n", i))
	}

	assert.NotContains(t, view, "Showing")
}

func TestPagerModel_UnknownHeightNeverPaginates(t *testing.T) {
	model := newPagerModel("title", numberedBody(100))
	assert.False(t, model.needsPagination())
}

func TestPagerModel_Pagination_VisibleContent(t *testing.T) {
	model := newPagerModel("title", numberedBody(30))
	model.height = 15 // 10 lines per page

	require.True(t, model.needsPagination())
	assert.Equal(t, 10, model.itemsPerPage())
	assert.Equal(t, 20, model.maxOffset())

	view := model.View()
	assert.Contains(t, view, "line 1\n")
	assert.Contains(t, view, "line 10\n")
	assert.NotContains(t, view, "line 11\n")
	assert.Contains(t, view, "Showing 1-10 of 30")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model = updated.(pagerModel)
	assert.Equal(t, 1, model.offset)
	assert.Contains(t, model.View(), "Showing 2-11 of 30")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	model = updated.(pagerModel)
	assert.Equal(t, 20, model.offset)
	assert.Contains(t, model.View(), "line 30\n")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model = updated.(pagerModel)
	assert.Equal(t, 20, model.offset, "offset is clamped at the bottom")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	model = updated.(pagerModel)
	assert.Equal(t, 10, model.offset)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	model = updated.(pagerModel)
	assert.Equal(t, 0, model.offset)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(pagerModel)
	assert.Equal(t, 0, model.offset, "offset is clamped at the top")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	model = updated.(pagerModel)
	assert.Equal(t, 10, model.offset)
}

func TestPagerModel_WindowResizeClampsOffset(t *testing.T) {
	model := newPagerModel("title", numberedBody(30))
	model.height = 15
	model.offset = 20

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model = updated.(pagerModel)

	assert.Equal(t, 0, model.offset)
	assert.False(t, model.needsPagination())
}

func TestPagerModel_Quit(t *testing.T) {
	model := newPagerModel("title", numberedBody(3))

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	model = updated.(pagerModel)

	require.NotNil(t, cmd)
	assert.True(t, model.quitting)
	assert.Empty(t, model.View())

	_, cmd = newPagerModel("title", "x").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
}

func TestPagerModel_TranscriptAfterQuit(t *testing.T) {
	model := newPagerModel("title", numberedBody(50))
	model.height = 10
	model.offset = 20

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	model = updated.(pagerModel)
	require.Empty(t, model.View())

	transcript := model.transcript()
	assert.Contains(t, transcript, "title")
	assert.Contains(t, transcript, "line 1\n")
	assert.Contains(t, transcript, "line 50\n")
	assert.NotContains(t, transcript, "Showing")
	assert.Equal(t, 10, model.height, "transcript does not mutate the model")
}

func TestPagerModel_TinyWindow(t *testing.T) {
	model := newPagerModel("title", numberedBody(3))
	model.height = 2

	assert.Equal(t, 1, model.itemsPerPage())
	assert.True(t, model.needsPagination())
}
