package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-confgen/pkg/report"
)

func TestConsole_WritesHeadlineAndProgress(t *testing.T) {
	var buf bytes.Buffer
	console := report.NewConsole(&buf)

	console.Headline("Generating config files...")
	console.Progress("saving config/database.yml")

	out := buf.String()
	if !strings.Contains(out, "Generating config files...") {
		t.Fatalf("headline missing from output: %q", out)
	}
	if !strings.Contains(out, "saving config/database.yml") {
		t.Fatalf("progress missing from output: %q", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d: %q", len(lines), out)
	}
}

func TestDiscard_IsSilent(t *testing.T) {
	var reporter report.Reporter = report.Discard{}
	reporter.Headline("nothing")
	reporter.Progress("nothing")
}
