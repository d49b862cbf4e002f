package dispatch

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/fecoding/internal/editor"
	"github.com/mattjoyce/fecoding/internal/editor/editortest"
	"github.com/mattjoyce/fecoding/internal/editor/mocks"
	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/protocol"
)

func TestMain(m *testing.M) {
	log.Setup("ERROR") // Suppress logs in tests
	os.Exit(m.Run())
}

func flagged(action, content, message string) *protocol.Envelope {
	return &protocol.Envelope{
		Flag:    json.RawMessage("1"),
		Action:  action,
		Content: content,
		Message: message,
	}
}

func wholeTarget(ed editor.Editor) Target {
	return Target{Editor: ed, Region: editor.Whole(ed), Snapshot: editor.Capture(ed)}
}

func regionOf(t *testing.T, text, sub string) editor.Region {
	t.Helper()
	i := strings.Index(text, sub)
	require.GreaterOrEqual(t, i, 0, "%q not in %q", sub, text)
	return editor.Region{A: i, B: i + len(sub)}
}

func TestDispatchNotifications(t *testing.T) {
	tests := []struct {
		name     string
		env      *protocol.Envelope
		want     Outcome
		modals   []string
		statuses []string
		opened   []string
	}{
		{
			name:     "status message",
			env:      flagged("status_message", "", "Done"),
			want:     OutcomeNotified,
			statuses: []string{"Done"},
		},
		{
			name:   "show message",
			env:    flagged("show_message", "", "3 problems found"),
			want:   OutcomeNotified,
			modals: []string{"3 problems found"},
		},
		{
			name:   "show message falls back to content",
			env:    flagged("show_message", "from content", ""),
			want:   OutcomeNotified,
			modals: []string{"from content"},
		},
		{
			name:   "open file",
			env:    flagged("open_file", "/tmp/report.html", ""),
			want:   OutcomeOpened,
			opened: []string{"/tmp/report.html"},
		},
		{
			name: "status message without message",
			env:  flagged("status_message", "ignored content", ""),
			want: OutcomeIgnored,
		},
		{
			name: "open file without content",
			env:  flagged("open_file", "", "ignored message"),
			want: OutcomeIgnored,
		},
		{
			name: "no flag",
			env:  &protocol.Envelope{Action: "status_message", Message: "Done"},
			want: OutcomeIgnored,
		},
		{
			name: "null flag",
			env:  &protocol.Envelope{Flag: json.RawMessage("null"), Action: "status_message", Message: "Done"},
			want: OutcomeIgnored,
		},
		{
			name: "flag without action",
			env:  flagged("", "", "Done"),
			want: OutcomeIgnored,
		},
		{
			name: "unknown action",
			env:  flagged("beep", "", "Done"),
			want: OutcomeIgnored,
		},
		{
			name: "empty envelope",
			env:  &protocol.Envelope{},
			want: OutcomeIgnored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &editortest.Recorder{}
			buf := editor.NewBuffer("/src/app.js", "const a = 1;\n", rec)

			got := New().Dispatch(tt.env, wholeTarget(buf))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.modals, rec.Modals)
			assert.Equal(t, tt.statuses, rec.Statuses)
			assert.Equal(t, tt.opened, buf.Opened())
			assert.Equal(t, "const a = 1;\n", buf.String())
			assert.False(t, buf.Dirty())
		})
	}
}

func TestDispatchUpdateViewWholeBuffer(t *testing.T) {
	before := "x=1\nfunction f() {\n  return 1\n}\n"
	after := "x = 1\n\nfunction f() {\n  return 1\n}\n"
	body := "{\n  return 1\n}"

	buf := editor.NewBuffer("/src/app.js", before, nil)
	buf.Fold(regionOf(t, before, body))
	buf.SetViewportPosition(editor.Point{X: 0, Y: 120})
	buf.SetSelection([]editor.Region{{A: 2, B: 2}, {A: 5, B: 9}})

	got := New().Dispatch(flagged("update_view", after, ""), wholeTarget(buf))

	assert.Equal(t, OutcomeUpdated, got)
	assert.Equal(t, after, buf.String())
	assert.Equal(t, []editor.Region{regionOf(t, after, body)}, buf.FoldedRegions())
	assert.Equal(t, editor.Point{X: 0, Y: 120}, buf.ViewportPosition())
	assert.Equal(t, []editor.Region{{A: 2, B: 2}, {A: 5, B: 9}}, buf.Selection())
}

func TestDispatchUpdateViewSelectionOnly(t *testing.T) {
	before := "let a=1;\nlet b=2;\n"
	buf := editor.NewBuffer("", before, nil)
	sel := regionOf(t, before, "let a=1;")
	buf.SetSelection([]editor.Region{sel})

	target := Target{
		Editor:        buf,
		Region:        sel,
		SelectionOnly: true,
		Snapshot:      editor.Capture(buf),
	}
	got := New().Dispatch(flagged("update_view", "let a = 1;", ""), target)

	assert.Equal(t, OutcomeUpdated, got)
	assert.Equal(t, "let a = 1;\nlet b=2;\n", buf.String())
	assert.Empty(t, buf.Selection(), "selection-only runs leave the selection cleared")
}

func TestDispatchUpdateViewWithoutContent(t *testing.T) {
	buf := editor.NewBuffer("/src/app.js", "abc", nil)

	got := New().Dispatch(flagged("update_view", "", "formatted"), wholeTarget(buf))

	assert.Equal(t, OutcomeIgnored, got)
	assert.Equal(t, "abc", buf.String())
}

func TestDispatchUpdateViewUnchangedDoesNotReplace(t *testing.T) {
	ctrl := gomock.NewController(t)
	ed := mocks.NewMockEditor(ctrl)

	region := editor.Region{A: 0, B: 13}
	ed.EXPECT().Text(region).Return("const a = 1;\n")
	// no Replace, SetSelection or SetViewportPosition expected

	got := New().Dispatch(flagged("update_view", "const a = 1;\n", ""), Target{Editor: ed, Region: region})
	assert.Equal(t, OutcomeUnchanged, got)
}

func TestDispatchUpdateViewCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	ed := mocks.NewMockEditor(ctrl)

	region := editor.Region{A: 0, B: 3}
	snap := editor.Snapshot{
		Selection: []editor.Region{{A: 1, B: 1}},
		Viewport:  editor.Point{Y: 40},
		Folded:    []string{"ew"},
	}

	gomock.InOrder(
		ed.EXPECT().Text(region).Return("old"),
		ed.EXPECT().Replace(region, "new"),
		ed.EXPECT().Size().Return(3),
		ed.EXPECT().Unfold(editor.Region{A: 0, B: 3}),
		ed.EXPECT().Text(editor.Region{A: 0, B: 3}).Return("new"),
		ed.EXPECT().Fold(editor.Region{A: 1, B: 3}),
		ed.EXPECT().SetViewportPosition(editor.Point{Y: 40}),
		ed.EXPECT().SetSelection([]editor.Region{{A: 1, B: 1}}),
	)

	got := New().Dispatch(flagged("update_view", "new", ""), Target{Editor: ed, Region: region, Snapshot: snap})
	assert.Equal(t, OutcomeUpdated, got)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ignored", OutcomeIgnored.String())
	assert.Equal(t, "notified", OutcomeNotified.String())
	assert.Equal(t, "opened", OutcomeOpened.String())
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "unchanged", OutcomeUnchanged.String())
}
