package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muurk/vizconnect/internal/source"
)

func TestRenderSourceTable(t *testing.T) {
	sources := []source.Descriptor{
		{ID: "rosbridge-websocket", DisplayName: "Rosbridge"},
		{ID: "velodyne-device", DisplayName: "Velodyne Lidar", Warning: "Experimental"},
		{ID: "ros2-native", DisplayName: "ROS 2", DisabledReason: source.StringPtr("Needs the desktop app")},
		{ID: "x", DisplayName: "X", DisabledReason: source.StringPtr("")},
	}

	table := RenderSourceTable(sources)
	lines := strings.Split(table, "\n")
	if len(lines) != 5 {
		t.Fatalf("table has %d lines, want 5:\n%s", len(lines), table)
	}

	tests := []struct {
		line int
		want string
	}{
		{0, "STATUS"},
		{1, "available"},
		{2, "⚠ Experimental"},
		{3, "disabled: Needs the desktop app"},
		{4, "disabled"},
	}
	for _, tt := range tests {
		if !strings.Contains(lines[tt.line], tt.want) {
			t.Errorf("line %d = %q, want it to contain %q", tt.line, lines[tt.line], tt.want)
		}
	}
	if strings.Contains(lines[4], "disabled:") {
		t.Errorf("empty reason should not print a colon: %q", lines[4])
	}
}

func TestRenderSourceTable_Empty(t *testing.T) {
	if got := RenderSourceTable(nil); !strings.Contains(got, "No sources.") {
		t.Errorf("RenderSourceTable(nil) = %q", got)
	}
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out).SetWidth(10)
	if p.Width() != MinTerminalWidth {
		t.Errorf("Width() = %d, want %d", p.Width(), MinTerminalWidth)
	}

	p.PrintHeader("Scan", "vizconnect scan", map[string]string{"timeout": "5s", "domain": "local."})
	p.PrintWarning("No servers found", map[string]string{"service": "_foxglove-ws._tcp"})

	text := out.String()
	if strings.Index(text, "domain:") > strings.Index(text, "timeout:") {
		t.Error("header params should be sorted by key")
	}
	if !strings.Contains(text, "WARNING") || !strings.Contains(text, "No servers found") {
		t.Errorf("missing warning box:\n%s", text)
	}
}
