// Package buildinfo carries the version/provenance glue spec.md §6's
// print_report names: a name, git describe/hash pair, and the plan's
// headline sizing numbers, rendered as JSON. The version string follows
// the corpus's ldflags-injected VERSION idiom (xtaci-kcptun's
// VERSION = "SELFBUILD" sentinel for non-packaged builds) rather than
// Rust's built/vergen crates the original build_info.rs leaned on.
package buildinfo

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
)

// Version is overwritten at link time via -ldflags
// "-X github.com/tealab-go/nhls/buildinfo.Version=...". Unset, it reports
// a self-built binary the same way the corpus's VERSION sentinel does.
var Version = "SELFBUILD"

// GitDescribe and GitHash are likewise ldflags-injected; empty means the
// binary was built without provenance info attached.
var (
	GitDescribe = ""
	GitHash     = ""
)

// Report is the JSON object spec.md §6 requires print_report to emit.
type Report struct {
	Name          string `json:"name"`
	GitDescribe   string `json:"git_describe"`
	GitHash       string `json:"git_hash"`
	PlanNodeCount int    `json:"plan_node_count"`
	ScratchBytes  int64  `json:"scratch_bytes"`
	Threads       int    `json:"threads"`
}

// NewReport builds a Report for the given solver name and plan sizing.
func NewReport(name string, planNodeCount int, scratchBytes int64, threads int) Report {
	return Report{
		Name:          name,
		GitDescribe:   describeOrVersion(),
		GitHash:       GitHash,
		PlanNodeCount: planNodeCount,
		ScratchBytes:  scratchBytes,
		Threads:       threads,
	}
}

func describeOrVersion() string {
	if GitDescribe != "" {
		return GitDescribe
	}
	return Version
}

// Print writes r as indented JSON to w. Color is applied via fatih/color,
// which the corpus's own usage (xtaci-kcptun's color.Red warnings) leaves to
// the package's own stdout TTY detection rather than hand-rolled isatty
// checks; here that means cyan whenever color.NoColor is false.
func Print(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = color.New(color.FgCyan).Fprintln(w, string(data))
	return err
}
