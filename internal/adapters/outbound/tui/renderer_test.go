package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/tui"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

func sampleReport() *domain.Report {
	offending := domain.NewPackageMap()
	offending.Put("sun.misc", "JDK internal API (rt.jar)")
	offending.Put("sun.reflect", "JDK internal API (rt.jar)")
	profiles := domain.NewPackageMap()
	profiles.Put("java.io", "compact1")

	return &domain.Report{
		Goal:       domain.GoalMain,
		Executable: "/opt/jdk/bin/jdeps",
		Offending:  offending,
		Profiles:   profiles,
		Warnings:   []string{"bad class file"},
		FailOnWarn: true,
		Passed:     false,
	}
}

func TestStatus(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, tui.StatusFailed, tui.Status(r))

	r.Passed = true
	assert.Equal(t, tui.StatusWarning, tui.Status(r))

	clean := &domain.Report{Passed: true}
	assert.Equal(t, tui.StatusPassed, tui.Status(clean))

	assert.Equal(t, tui.StatusSkipped, tui.Status(&domain.Report{Skipped: true, Passed: true}))
}

func TestRenderReport_ContainsPackages(t *testing.T) {
	output := tui.RenderReport(sampleReport(), nil)
	assert.Contains(t, output, "jdepscheck")
	assert.Contains(t, output, "main classes")
	assert.Contains(t, output, tui.StatusFailed)
	assert.Contains(t, output, "sun.misc")
	assert.Contains(t, output, "sun.reflect")
	assert.Contains(t, output, "JDK internal API (rt.jar)")
	assert.Contains(t, output, "/opt/jdk/bin/jdeps")
}

func TestRenderReport_ContainsProfilesAndWarnings(t *testing.T) {
	output := tui.RenderReport(sampleReport(), nil)
	assert.Contains(t, output, "Profiles")
	assert.Contains(t, output, "compact1")
	assert.Contains(t, output, "JDeps Warnings")
	assert.Contains(t, output, "bad class file")
}

func TestRenderReport_Inventory(t *testing.T) {
	r := sampleReport()
	r.Inventory = &domain.ClassInventory{ClassFiles: 12, Packages: []string{"org.acme", "org.acme.util"}, Versioned: true}

	output := tui.RenderReport(r, nil)
	assert.Contains(t, output, "12 in 2 packages")
	assert.Contains(t, output, "multi-release")
}

func TestRenderReport_Clean(t *testing.T) {
	output := tui.RenderReport(&domain.Report{Goal: domain.GoalTest, Passed: true}, nil)
	assert.Contains(t, output, "test classes")
	assert.Contains(t, output, "No JDK internal API usage found.")
	assert.NotContains(t, output, "Profiles")
}

func TestRenderReport_Skipped(t *testing.T) {
	output := tui.RenderReport(&domain.Report{Goal: domain.GoalTest, Skipped: true, Passed: true}, nil)
	assert.Contains(t, output, tui.StatusSkipped)
	assert.Contains(t, output, "No classes to analyze.")
}

func TestRenderReport_DeltaAgainstPrevious(t *testing.T) {
	prevOffending := domain.NewPackageMap()
	prevOffending.Put("sun.misc", "JDK internal API (rt.jar)")
	prevOffending.Put("sun.security.x509", "JDK internal API (rt.jar)")
	previous := &domain.Report{Goal: domain.GoalMain, Offending: prevOffending}

	output := tui.RenderReport(sampleReport(), previous)
	assert.Contains(t, output, "1 new")
	assert.Contains(t, output, "1 fixed")
}

func TestRenderReport_ExitCode(t *testing.T) {
	r := &domain.Report{Goal: domain.GoalMain, ExitCode: 2}
	output := tui.RenderReport(r, nil)
	assert.Contains(t, output, "exit code")
	assert.Contains(t, output, "2")
}

func TestRenderResolution(t *testing.T) {
	assert.Contains(t, tui.RenderResolution("/usr/bin/jdeps"), "/usr/bin/jdeps")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}

func TestRenderHistory_Entries(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "2026-02-25T10:00:00Z", CommitHash: "abc1234def", Goal: domain.GoalMain, Offending: 3},
		{Timestamp: "2026-02-26T10:00:00Z", Goal: domain.GoalTest, Offending: 0, Passed: true},
		{Timestamp: "2026-02-27T10:00:00Z", Goal: domain.GoalMain, Offending: 1},
		{Timestamp: "bad", Goal: domain.GoalMain, Offending: 4},
	}

	output := tui.RenderHistory(entries)
	assert.Contains(t, output, "Run History")
	assert.Contains(t, output, "2026-02-25")
	assert.Contains(t, output, "abc1234")
	assert.NotContains(t, output, "abc1234def")
	assert.Contains(t, output, "test-jdkinternals")
	assert.Contains(t, output, "↓2")
	assert.Contains(t, output, "↑3")
	assert.Contains(t, output, "bad")
}
