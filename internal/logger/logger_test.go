package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFilePathDefaultsToWorkdirLogs(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := logFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmp, _ := filepath.EvalSymlinks(tmpDir)
	realDir, _ := filepath.EvalSymlinks(filepath.Dir(got))
	if realDir != filepath.Join(realTmp, defaultDirName) {
		t.Fatalf("unexpected log dir: %s", realDir)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestReleaseModeWritesServiceField(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Info("post_created")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "post_created") || !strings.Contains(text, `"service":"blogicum"`) {
		t.Fatalf("unexpected log content: %s", text)
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected fallback logger")
	}
	ctx := WithContext(context.Background(), "request_id", "abc")
	if FromContext(ctx) == S() {
		t.Fatalf("expected request scoped logger")
	}
}
