// Package normalize turns loosely-typed JSON (as decoded into any) into
// fully populated records. Every function is total: malformed input of any
// shape yields a valid record with defaults filled in, and applying a
// normalizer to its own JSON output returns the same record.
package normalize

import (
	"strconv"
	"strings"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// IDFunc produces a new identifier for the given prefix.
type IDFunc func(prefix string) string

// Normalizer fills defaults for missing or invalid fields. NewID mints IDs
// for records that arrive without one.
type Normalizer struct {
	NewID IDFunc
}

// Default uses the package-level identifier generator.
var Default = Normalizer{NewID: ident.New}

func (n Normalizer) id(m map[string]any, prefix string, keys ...string) string {
	if s, ok := nonEmpty(m, keys...); ok {
		return s
	}
	if n.NewID == nil {
		return ident.New(prefix)
	}
	return n.NewID(prefix)
}

// WiringRun normalizes a single wiring run. Older records keyed by label,
// gaugeRequired or protectionRequired are accepted, and a true done flag
// forces the done status.
func (n Normalizer) WiringRun(raw any) models.WiringRun {
	m := object(raw)

	confidence := models.Confidence(strOr(m, "", "confidence"))
	if !confidence.Valid() {
		confidence = models.ConfidenceTBD
	}
	status := models.RunStatus(strOr(m, "", "status"))
	if !status.Valid() {
		status = models.RunPlanned
	}
	if boolOr(m, "done") {
		status = models.RunDone
	}

	return models.WiringRun{
		CircuitID:       n.id(m, ident.PrefixWiringRun, "circuitId", "label"),
		FromTo:          strOr(m, "", "fromTo"),
		WireType:        strOr(m, "", "wireType"),
		GaugeOwned:      strOr(m, "", "gaugeOwned", "gaugeRequired"),
		ProtectionShown: strOr(m, "", "protectionShown", "protectionRequired"),
		FuseID:          strOr(m, "", "fuseId"),
		Confidence:      confidence,
		Status:          status,
		Notes:           strOr(m, "", "notes"),
	}
}

// WiringRuns normalizes every element of a JSON array.
func (n Normalizer) WiringRuns(raw any) []models.WiringRun {
	arr := list(raw)
	out := make([]models.WiringRun, 0, len(arr))
	for _, item := range arr {
		out = append(out, n.WiringRun(item))
	}
	return out
}

var legacyPartStatus = map[string]models.PartStatus{
	"need_to_buy": models.PartTBD,
	"received":    models.PartOwned,
}

// Part normalizes an inventory item, including its optional wire fields.
func (n Normalizer) Part(raw any) models.Part {
	m := object(raw)

	rawStatus := strOr(m, "", "status")
	status := models.PartStatus(rawStatus)
	if legacy, ok := legacyPartStatus[rawStatus]; ok {
		status = legacy
	}
	if !status.Valid() {
		status = models.PartTBD
	}

	category, ok := nonEmpty(m, "category")
	if !ok {
		category = models.DefaultPartCategory
	}

	var uses []models.WireUse
	for _, item := range list(m["wireUses"]) {
		um := object(item)
		uses = append(uses, models.WireUse{
			CircuitID: strOr(um, "", "circuitId"),
			Feet:      numberOr(um, 0, "feet"),
			Note:      strOr(um, "", "note"),
		})
	}

	return models.Part{
		ID:             n.id(m, ident.PrefixPart, "id", "partId"),
		Name:           strOr(m, "", "name"),
		Category:       category,
		Vendor:         strOr(m, "", "vendor", "brandModel"),
		QtyOwned:       numberOr(m, 0, "qtyOwned"),
		QtyNeed:        numberOr(m, 0, "qtyNeed", "qtyNeeded"),
		Status:         status,
		Notes:          strOr(m, "", "notes"),
		QtyInstalled:   numberOr(m, 0, "qtyInstalled"),
		UsedInCircuits: strOr(m, "", "usedInCircuits"),
		Source:         strOr(m, "", "source"),
		PurchasedFeet:  numberOr(m, 0, "purchasedFeet"),
		UsedFeet:       numberOr(m, 0, "usedFeet"),
		WireUses:       uses,
		HasLugs:        boolOr(m, "hasLugs"),
		HasHeatShrink:  boolOr(m, "hasHeatShrink"),
		HasConnectors:  boolOr(m, "hasConnectors"),
	}
}

// Parts normalizes every element of a JSON array.
func (n Normalizer) Parts(raw any) []models.Part {
	arr := list(raw)
	out := make([]models.Part, 0, len(arr))
	for _, item := range arr {
		out = append(out, n.Part(item))
	}
	return out
}

// Fuse normalizes a fuse record. A bare numeric amp becomes "<n>A".
func (n Normalizer) Fuse(raw any) models.Fuse {
	m := object(raw)

	status := models.FuseStatus(strOr(m, "", "status"))
	if !status.Valid() {
		status = models.FuseTBD
	}

	amp, ok := str(m, "amp")
	if !ok {
		if f, isNum := number(m["amp"]); isNum {
			amp = strconv.FormatFloat(f, 'f', -1, 64) + "A"
		}
	}

	return models.Fuse{
		ID:        n.id(m, ident.PrefixFuse, "id"),
		CircuitID: strOr(m, "", "circuitId"),
		Label:     strOr(m, models.DefaultFuseLabel, "label"),
		Location:  strOr(m, "", "location"),
		FuseType:  strOr(m, "", "fuseType"),
		Amp:       amp,
		QtyOwned:  numberOr(m, 0, "qtyOwned"),
		QtyNeed:   numberOr(m, 1, "qtyNeed"),
		Status:    status,
		Notes:     strOr(m, "", "notes"),
	}
}

// Fuses normalizes every element of a JSON array.
func (n Normalizer) Fuses(raw any) []models.Fuse {
	arr := list(raw)
	out := make([]models.Fuse, 0, len(arr))
	for _, item := range arr {
		out = append(out, n.Fuse(item))
	}
	return out
}

// Step normalizes one guide step.
func (n Normalizer) Step(raw any) models.GuideStep {
	m := object(raw)
	return models.GuideStep{
		ID:        n.id(m, ident.PrefixStep, "id"),
		Title:     strOr(m, models.DefaultStepTitle, "title"),
		Detail:    strOr(m, "", "detail"),
		Checklist: stringList(m["checklist"]),
	}
}

// Guide normalizes a guide body. fallbackID is used when the record carries
// no id of its own.
func (n Normalizer) Guide(raw any, fallbackID string) models.Guide {
	m := object(raw)

	id, ok := nonEmpty(m, "id")
	if !ok {
		id = strings.TrimSpace(fallbackID)
		if id == "" {
			id = n.id(m, ident.PrefixGuide)
		}
	}

	rawSteps := list(m["steps"])
	steps := make([]models.GuideStep, 0, len(rawSteps))
	for _, s := range rawSteps {
		steps = append(steps, n.Step(s))
	}

	return models.Guide{
		ID:        id,
		Title:     strOr(m, models.DefaultGuideTitle, "title"),
		Category:  strOr(m, "", "category"),
		Tools:     stringList(m["tools"]),
		Materials: stringList(m["materials"]),
		Specs:     stringList(m["specs"]),
		Warnings:  stringList(m["warnings"]),
		Steps:     steps,
		Notes:     strOr(m, "", "notes"),
	}
}

// GuidesByID normalizes the guide map. The map key is authoritative: a body
// whose id disagrees with its key is re-keyed to match.
func (n Normalizer) GuidesByID(raw any) map[string]models.Guide {
	src, _ := raw.(map[string]any)
	out := make(map[string]models.Guide, len(src))
	for key, v := range src {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		g := n.Guide(v, key)
		g.ID = key
		out[key] = g
	}
	return out
}

// TreeNode normalizes a guide-tree node and, for folders, its descendants.
// A node with an unknown type is a guide when it references one and a
// folder otherwise.
func (n Normalizer) TreeNode(raw any) models.GuideNode {
	m := object(raw)

	typ := models.NodeType(strOr(m, "", "type"))
	if typ != models.NodeFolder && typ != models.NodeGuide {
		typ = models.NodeFolder
		if _, ok := nonEmpty(m, "guideId"); ok {
			typ = models.NodeGuide
		}
	}

	if typ == models.NodeGuide {
		return models.GuideNode{
			ID:      n.id(m, ident.PrefixNode, "id"),
			Type:    models.NodeGuide,
			Title:   strOr(m, models.DefaultGuideTitle, "title"),
			GuideID: strings.TrimSpace(strOr(m, "", "guideId")),
		}
	}
	return models.GuideNode{
		ID:       n.id(m, ident.PrefixFolder, "id"),
		Type:     models.NodeFolder,
		Title:    strOr(m, models.DefaultFolderTitle, "title"),
		Children: n.GuideTree(m["children"]),
	}
}

// GuideTree normalizes a list of root nodes. The result is never nil.
func (n Normalizer) GuideTree(raw any) []models.GuideNode {
	arr := list(raw)
	out := make([]models.GuideNode, 0, len(arr))
	for _, item := range arr {
		out = append(out, n.TreeNode(item))
	}
	return out
}

// Task normalizes a build task.
func (n Normalizer) Task(raw any) models.Task {
	m := object(raw)

	status := models.TaskStatus(strOr(m, "", "status"))
	if !status.Valid() {
		status = models.TaskNotStarted
	}

	return models.Task{
		ID:         n.id(m, ident.PrefixTask, "id"),
		Title:      strOr(m, models.DefaultTaskTitle, "title"),
		Status:     status,
		TargetDate: strOr(m, "", "targetDate"),
		DoneDate:   strOr(m, "", "doneDate"),
		Notes:      strOr(m, "", "notes"),
		ImageIDs:   stringList(m["imageIds"]),
	}
}

// Phase normalizes a build phase and its tasks.
func (n Normalizer) Phase(raw any) models.Phase {
	m := object(raw)

	rawTasks := list(m["tasks"])
	tasks := make([]models.Task, 0, len(rawTasks))
	for _, t := range rawTasks {
		tasks = append(tasks, n.Task(t))
	}

	return models.Phase{
		ID:           n.id(m, ident.PrefixPhase, "id"),
		Title:        strOr(m, models.DefaultPhaseTitle, "title"),
		TargetStart:  strOr(m, "", "targetStart"),
		TargetFinish: strOr(m, "", "targetFinish"),
		Notes:        strOr(m, "", "notes"),
		Tasks:        tasks,
	}
}

// Phases normalizes every element of a JSON array.
func (n Normalizer) Phases(raw any) []models.Phase {
	arr := list(raw)
	out := make([]models.Phase, 0, len(arr))
	for _, item := range arr {
		out = append(out, n.Phase(item))
	}
	return out
}

// Ops normalizes a whole aggregate. Absent or malformed collections become
// empty.
func (n Normalizer) Ops(raw any) *models.Ops {
	m := object(raw)

	images, ok := m["imagesIndex"].(map[string]any)
	if !ok || images == nil {
		images = map[string]any{}
	}

	return &models.Ops{
		WiringRuns:  n.WiringRuns(m["wiringRuns"]),
		Parts:       n.Parts(m["parts"]),
		Fuses:       n.Fuses(m["fuses"]),
		Phases:      n.Phases(m["phases"]),
		GuidesByID:  n.GuidesByID(m["guidesById"]),
		GuideTree:   n.GuideTree(m["guideTree"]),
		ImagesIndex: images,
	}
}

// Package-level shorthands using Default.

func WiringRun(raw any) models.WiringRun { return Default.WiringRun(raw) }
func WiringRuns(raw any) []models.WiringRun { return Default.WiringRuns(raw) }
func Part(raw any) models.Part { return Default.Part(raw) }
func Parts(raw any) []models.Part { return Default.Parts(raw) }
func Fuse(raw any) models.Fuse { return Default.Fuse(raw) }
func Fuses(raw any) []models.Fuse { return Default.Fuses(raw) }
func Guide(raw any, id string) models.Guide { return Default.Guide(raw, id) }
func TreeNode(raw any) models.GuideNode { return Default.TreeNode(raw) }
func GuideTree(raw any) []models.GuideNode { return Default.GuideTree(raw) }
func Task(raw any) models.Task { return Default.Task(raw) }
func Phase(raw any) models.Phase { return Default.Phase(raw) }
func Phases(raw any) []models.Phase { return Default.Phases(raw) }
func Ops(raw any) *models.Ops { return Default.Ops(raw) }
