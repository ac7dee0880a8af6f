//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/relic-scan/internal/clock"
	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/scan"
	"github.com/ensigniasec/relic-scan/internal/storage"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedAppraisal() scan.AppraisalData {
	return scan.AppraisalData{
		ID:         "artifact-0",
		Grade:      scan.GradeA,
		Value:      650,
		Confidence: 92,
		Metrics: scan.Metrics{
			Authenticity:  80,
			Craftsmanship: 75,
			Preservation:  85,
			Provenance:    70,
		},
		Timestamp:    epoch,
		ArtifactName: "Enigmatic Power Core",
		ArtifactType: "Power Core",
	}
}

func newTestModel(t *testing.T, opts Options) (Model, *clock.Fake) {
	t.Helper()
	f := clock.NewFake(epoch)
	opts.Scheduler = f
	if opts.Generator == nil {
		n := 0
		opts.Generator = scan.GeneratorFunc(func() (scan.AppraisalData, error) {
			n++
			a := fixedAppraisal()
			a.ID = fmt.Sprintf("artifact-%d", n)
			return a, nil
		})
	}
	m := NewModel(opts)
	t.Cleanup(m.Close)
	return m, f
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// runScan starts a scan and feeds frames until the driver completes it.
func runScan(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, keyMsg("s"))
	require.Equal(t, scan.Scanning, m.s.store.Snapshot().State)
	for _, at := range []time.Duration{0, 1250 * time.Millisecond, 2500 * time.Millisecond} {
		m = send(t, m, frameMsg(epoch.Add(at)))
	}
	return m
}

func TestModel_KeysRotateAndNavigate(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Equal(t, pageHome, m.s.page)

	m = send(t, m, keyMsg("right"))
	st := m.s.nav.State()
	assert.InDelta(t, 90.0, st.CurrentAngle, 1e-9)
	assert.Equal(t, orbit.NodeScan, st.ActiveNodeID)
	assert.Equal(t, pageHome, m.s.page, "rotation alone does not navigate")

	m = send(t, m, keyMsg("enter"))
	assert.Equal(t, pageScan, m.s.page)

	m = send(t, m, keyMsg("left"))
	m = send(t, m, keyMsg("left"))
	assert.Equal(t, orbit.NodeSettings, m.s.nav.State().ActiveNodeID)
	m = send(t, m, keyMsg(" "))
	assert.Equal(t, pageSettings, m.s.page)
}

func TestModel_TabCyclesNodes(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	want := []string{orbit.NodeScan, orbit.NodeHistory, orbit.NodeSettings, orbit.NodeHome}
	for _, id := range want {
		m = send(t, m, keyMsg("tab"))
		assert.Equal(t, id, m.s.nav.State().ActiveNodeID)
	}
}

func TestModel_StartPage(t *testing.T) {
	m, _ := newTestModel(t, Options{StartPage: "/history"})
	assert.Equal(t, pageHistory, m.s.page)
	assert.Equal(t, orbit.NodeHistory, m.s.nav.State().ActiveNodeID)
}

func TestModel_ScanRevealsInStages(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = runScan(t, m)

	snap := m.s.store.Snapshot()
	require.Equal(t, scan.Complete, snap.State)
	assert.Equal(t, pageScan, m.s.page)
	assert.False(t, snap.ShowResults)
	assert.Equal(t, 1, m.s.history.Len())

	f.Advance(0)
	assert.True(t, m.s.stage.complete)
	assert.False(t, m.s.stage.grade)

	f.Advance(300 * time.Millisecond)
	assert.True(t, m.s.stage.grade)
	assert.False(t, m.s.stage.price)

	f.Advance(400 * time.Millisecond)
	assert.True(t, m.s.stage.price)

	f.Advance(800 * time.Millisecond)
	assert.True(t, m.s.stage.shockwave)
	assert.False(t, m.s.stage.metrics)

	f.Advance(500 * time.Millisecond)
	assert.True(t, m.s.stage.metrics)
	assert.True(t, m.s.stage.buttons)
	assert.True(t, m.s.store.Snapshot().ShowResults)
	assert.True(t, m.s.sequence.Done())

	view := m.View()
	assert.Contains(t, view, "SCAN COMPLETE")
	assert.Contains(t, view, "A-TIER")
	assert.Contains(t, view, "₡650")
	assert.Contains(t, view, "Authenticity")
}

func TestModel_PriceCountsUp(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = runScan(t, m)
	f.Advance(700 * time.Millisecond)
	require.True(t, m.s.stage.price)

	f.Advance(priceCountDuration / 2)
	assert.Contains(t, m.View(), "₡325")
	f.Advance(priceCountDuration)
	assert.Contains(t, m.View(), "₡650")
}

func TestModel_ResetKillsReveal(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = runScan(t, m)
	f.Advance(time.Second)
	require.True(t, m.s.stage.price)

	m = send(t, m, keyMsg("x"))
	assert.Equal(t, scan.Idle, m.s.store.Snapshot().State)
	assert.Nil(t, m.s.sequence)
	assert.Equal(t, revealStage{}, m.s.stage)
	assert.Equal(t, 0, f.Pending())

	f.Advance(5 * time.Second)
	assert.False(t, m.s.stage.metrics)
	assert.False(t, m.s.store.Snapshot().ShowResults)
}

func TestModel_RescanDuringRevealStartsFresh(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = runScan(t, m)
	f.Advance(500 * time.Millisecond)

	m = send(t, m, keyMsg("s"))
	assert.Equal(t, scan.Scanning, m.s.store.Snapshot().State)
	assert.Zero(t, m.s.store.Snapshot().Progress)
	assert.Nil(t, m.s.sequence)

	// A second press while scanning is ignored.
	m = send(t, m, keyMsg("s"))
	assert.Equal(t, "scan already in progress", m.status.text)
}

func TestModel_HistoryListTracksScans(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = runScan(t, m)
	m = runScan(t, m)
	assert.Equal(t, 2, m.s.history.Len())
	assert.Len(t, m.historyList.Items(), 2)

	m.s.page = pageHistory
	assert.Contains(t, m.View(), "Enigmatic Power Core")
}

func TestModel_FailedScanShowsError(t *testing.T) {
	gen := scan.GeneratorFunc(func() (scan.AppraisalData, error) { return scan.AppraisalData{}, nil })
	m, _ := newTestModel(t, Options{Generator: gen})
	m = runScan(t, m)

	snap := m.s.store.Snapshot()
	require.Equal(t, scan.Failed, snap.State)
	assert.Nil(t, m.s.sequence)
	assert.Contains(t, m.View(), "Scan failed")
}

func TestModel_WheelRotatesThenSnaps(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

	st := m.s.nav.State()
	assert.InDelta(t, 15.0, st.CurrentAngle, 1e-9)
	assert.True(t, st.IsRotating)

	f.Advance(orbit.DefaultWheelDebounce)
	st = m.s.nav.State()
	assert.InDelta(t, 0.0, st.CurrentAngle, 1e-9)
	assert.False(t, st.IsRotating)
}

func TestModel_DragRotatesAndSnaps(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(t, m, tea.MouseMsg{X: 20, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.True(t, m.s.nav.State().IsDragging)

	// 15 cells left is 120px, which the default sensitivity turns into +60°.
	m = send(t, m, tea.MouseMsg{X: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.InDelta(t, 60.0, m.s.nav.State().CurrentAngle, 1e-9)

	m = send(t, m, tea.MouseMsg{X: 5, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
	st := m.s.nav.State()
	assert.False(t, st.IsDragging)
	assert.InDelta(t, 90.0, st.CurrentAngle, 1e-9)
	assert.Equal(t, orbit.NodeScan, st.ActiveNodeID)
}

func TestModel_SettingsAdjustAndPersist(t *testing.T) {
	prev := storage.SystemConfigPath
	storage.SystemConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { storage.SystemConfigPath = prev })

	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := storage.NewStorage(path)
	require.NoError(t, err)

	m, _ := newTestModel(t, Options{Storage: st, Settings: st.Data.Settings, StartPage: "/settings"})
	m = send(t, m, keyMsg("+"))
	assert.InDelta(t, 0.6, m.s.settings.RotationSensitivity, 1e-9)
	assert.Contains(t, m.status.text, "Rotation sensitivity set to 0.6")

	reloaded, err := storage.NewStorage(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, reloaded.Data.Settings.RotationSensitivity, 1e-9)

	// The rebuilt gesture translator uses the new sensitivity.
	before := m.s.nav.State().CurrentAngle
	m = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.InDelta(t, 18.0, m.s.nav.State().CurrentAngle-before, 1e-9)

	// Select scan duration and shorten it.
	m = send(t, m, keyMsg("]"))
	m = send(t, m, keyMsg("-"))
	assert.Equal(t, 2*time.Second, m.s.settings.ScanDuration.Std())
}

func TestModel_SettingsClampAtBounds(t *testing.T) {
	m, _ := newTestModel(t, Options{StartPage: "/settings"})
	for range 50 {
		m = send(t, m, keyMsg("-"))
	}
	assert.InDelta(t, sensitivityMin, m.s.settings.RotationSensitivity, 1e-9)

	m = send(t, m, keyMsg("["))
	assert.Equal(t, len(settingRows())-1, m.settingsIndex)
	m = send(t, m, keyMsg("+"))
	assert.True(t, m.s.settings.ReducedMotion)
	assert.Contains(t, m.View(), "changes apply to this session only")
}

func TestModel_ReducedMotionSkipsAnimation(t *testing.T) {
	settings := storage.DefaultSettings()
	settings.ReducedMotion = true
	m, f := newTestModel(t, Options{Settings: settings})

	m = send(t, m, keyMsg("right"))
	m = send(t, m, frameMsg(epoch))
	assert.InDelta(t, 90.0, m.dialAngle, 1e-9)

	m = runScan(t, m)
	f.Advance(2 * time.Second)
	assert.False(t, m.s.stage.shockwave)
	assert.Contains(t, m.View(), "₡650")
}

func TestModel_DialSpringsTowardTarget(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(t, m, keyMsg("left"))
	assert.False(t, m.dialSettled())

	for i := range 600 {
		m = send(t, m, frameMsg(epoch.Add(time.Duration(i)*frameInterval)))
	}
	assert.True(t, m.dialSettled())
	// Left from home swings the short way, to -90 rather than +270.
	assert.InDelta(t, -90.0, m.dialAngle, 1e-9)
}

func TestModel_ViewShowsDial(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	view := m.View()
	for _, label := range []string{"[HOME]", "SCAN", "HISTORY", "SETTINGS", "RELIC-SCAN"} {
		assert.Contains(t, view, label)
	}

	m.helpVisible = true
	assert.Contains(t, m.View(), "start a scan")
}

func TestModel_QuitAndClose(t *testing.T) {
	m, f := newTestModel(t, Options{})
	m = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 1, f.Pending())

	next, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, strings.HasPrefix(next.View(), "Shutting down"))

	m.Close()
	assert.Equal(t, 0, f.Pending())
}

func TestPageForRoute(t *testing.T) {
	for _, n := range orbit.DefaultCatalog() {
		_, ok := pageForRoute(n.Route)
		assert.True(t, ok, n.Route)
	}
	_, ok := pageForRoute("/nowhere")
	assert.False(t, ok)
}
