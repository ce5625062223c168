package navigate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func stubTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowtool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func stubFlowFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	if err := os.WriteFile(path, []byte("appId: com.example.app\n---\n- launchApp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFlowRunSucceeds(t *testing.T) {
	runner := &FlowRunner{
		AppPackage: "com.example.app",
		FlowFile:   stubFlowFile(t),
		Timeout:    5 * time.Second,
		Command:    stubTool(t, "exit 0"),
	}
	if got := runner.Run(context.Background()); got != FlowSucceeded {
		t.Errorf("Run = %s, want succeeded", got)
	}
}

func TestFlowRunDistinguishesFailure(t *testing.T) {
	runner := &FlowRunner{
		AppPackage: "com.example.app",
		FlowFile:   stubFlowFile(t),
		Timeout:    5 * time.Second,
		Command:    stubTool(t, "exit 3"),
	}
	if got := runner.Run(context.Background()); got != FlowFailed {
		t.Errorf("Run = %s, want failed", got)
	}
}

func TestFlowRunDistinguishesTimeout(t *testing.T) {
	runner := &FlowRunner{
		AppPackage: "com.example.app",
		FlowFile:   stubFlowFile(t),
		Timeout:    100 * time.Millisecond,
		Command:    stubTool(t, "sleep 5"),
	}
	if got := runner.Run(context.Background()); got != FlowTimedOut {
		t.Errorf("Run = %s, want timed_out", got)
	}
}

func TestRenderFlowSubstitutesTemplate(t *testing.T) {
	runner := &FlowRunner{AppPackage: "com.example.app"}

	flowPath, err := runner.renderFlow()
	if err != nil {
		t.Fatalf("renderFlow failed: %v", err)
	}
	defer os.Remove(flowPath)

	content, err := os.ReadFile(flowPath)
	if err != nil {
		t.Fatal(err)
	}
	rendered := string(content)
	if !strings.Contains(rendered, "appId: com.example.app") {
		t.Errorf("rendered flow missing app package:\n%s", rendered)
	}
	if strings.Contains(rendered, "{{") {
		t.Errorf("rendered flow still has unexpanded placeholders:\n%s", rendered)
	}
}
