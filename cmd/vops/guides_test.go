package main

import (
	"strings"
	"testing"
)

// idAfter returns the whitespace-separated token following marker in out,
// stripped of surrounding punctuation.
func idAfter(t *testing.T, out, marker string) string {
	t.Helper()
	i := strings.Index(out, marker)
	if i < 0 {
		t.Fatalf("marker %q not found in:\n%s", marker, out)
	}
	fields := strings.Fields(out[i+len(marker):])
	if len(fields) == 0 {
		t.Fatalf("nothing after %q in:\n%s", marker, out)
	}
	return strings.Trim(fields[0], "()")
}

func TestGuidesCmd_Help(t *testing.T) {
	out := mustVops(t, testConfig(t), "guides", "--help")
	for _, sub := range []string{"tree", "show", "add-folder", "add-guide", "rename", "delete", "update", "step-add", "step-update", "step-delete"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestGuidesCmd_BuildShowDelete(t *testing.T) {
	cfg := testConfig(t)
	assertContains(t, mustVops(t, cfg, "guides", "tree"), "Guide library is empty.")

	folder := idAfter(t, mustVops(t, cfg, "guides", "add-folder", "Electrical"), "Added folder ")
	out := mustVops(t, cfg, "guides", "add-guide", "Battery install", "--parent", folder)
	guide := idAfter(t, out, "Added guide ")
	node := idAfter(t, out, "(node ")
	mustVops(t, cfg, "guides", "add-guide", "--parent", folder)
	mustVops(t, cfg, "guides", "add-guide", "Solar")

	out = mustVops(t, cfg, "guides", "tree")
	assertContains(t, out, "Electrical/", "  Battery install", "  New Guide", "Solar", "0 steps")
	if strings.Index(out, "Solar") < strings.Index(out, "New Guide") {
		t.Errorf("expected top-level Solar after the folder's children, got:\n%s", out)
	}

	mustVops(t, cfg, "guides", "update", guide, "--category", "Electrical", "--tools", "crimper,heat gun",
		"--warnings", "Disconnect the battery first")
	step := idAfter(t, mustVops(t, cfg, "guides", "step-add", guide, "Torque lugs"), "Added step ")
	mustVops(t, cfg, "guides", "step-add", guide)
	mustVops(t, cfg, "guides", "step-update", guide, step, "--detail", "12 Nm", "--checklist", "mark with paint pen")

	out = mustVops(t, cfg, "guides", "show", guide)
	assertContains(t, out, "Battery install", "crimper, heat gun", "! Disconnect the battery first",
		"1. Torque lugs", "12 Nm", "[ ] mark with paint pen", "2. New Step",
		"Folder:     Electrical  ["+folder+"]")

	extra := idAfter(t, mustVops(t, cfg, "guides", "step-add", guide, "Spare step"), "Added step ")
	out, err := runVops(t, cfg, "no\n", "guides", "step-delete", guide, extra)
	if err != nil {
		t.Fatalf("step-delete (declined): %v", err)
	}
	assertContains(t, out, "This will delete step", "Aborted.")
	assertContains(t, mustVops(t, cfg, "guides", "show", guide), "3. Spare step")
	assertContains(t, mustVops(t, cfg, "guides", "step-delete", guide, extra, "--yes"), "Deleted step "+extra)
	assertNotContains(t, mustVops(t, cfg, "guides", "show", guide), "Spare step")

	mustVops(t, cfg, "guides", "rename", node, "Battery bank")
	out = mustVops(t, cfg, "guides", "tree")
	assertContains(t, out, "Battery bank", "2 steps")
	assertContains(t, mustVops(t, cfg, "guides", "show", guide), "Title:      Battery install")

	out, err = runVops(t, cfg, "yes\n", "guides", "delete", folder)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertContains(t, out, `This will delete "Electrical" and 2 guide(s) beneath it.`, "and 2 guide(s)")

	out = mustVops(t, cfg, "guides", "tree")
	assertContains(t, out, "Solar")
	assertNotContains(t, out, "Electrical", "Battery")
	if _, err := runVops(t, cfg, "", "guides", "show", guide); err == nil {
		t.Error("expected deleted guide body to be gone")
	}
	assertContains(t, mustVops(t, cfg, "status"), "1 guides")
}

func TestGuidesCmd_Errors(t *testing.T) {
	cfg := testConfig(t)
	out := mustVops(t, cfg, "guides", "add-guide", "Solar")
	node := idAfter(t, out, "(node ")
	guide := idAfter(t, out, "Added guide ")
	assertContains(t, mustVops(t, cfg, "guides", "show", guide), "Folder:     (top level)")

	if _, err := runVops(t, cfg, "", "guides", "add-guide", "child", "--parent", node); err == nil {
		t.Error("expected error adding under a guide node")
	}
	if _, err := runVops(t, cfg, "", "guides", "add-folder", "x", "--parent", "F-404"); err == nil {
		t.Error("expected error adding under a missing parent")
	}
	if _, err := runVops(t, cfg, "", "guides", "delete", "F-404", "--yes"); err == nil {
		t.Error("expected error deleting a missing node")
	}
	if _, err := runVops(t, cfg, "", "guides", "step-add", "GUIDE-404"); err == nil {
		t.Error("expected error adding a step to a missing guide")
	}
}
