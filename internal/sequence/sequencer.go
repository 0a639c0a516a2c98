// Package sequence turns a run's pending pick entries into the ordered list
// of audio commands an operator hears while packing.
package sequence

import (
	"fmt"
	"sort"

	"github.com/vendiq/pickrun/internal/entity"
)

// Commands sequences entries into announcement order. The sort key is
// location name asc, machine code asc, count desc, coil code asc, SKU name
// asc. The descending count between machine and coil is the "largest coil
// first" packing policy and must stay exactly there. Location and machine
// announcements are emitted once per distinct value, in first-seen order
// after sorting; entries without a location or machine share a single
// unnamed bucket. Entries with no SKU cannot be announced and are dropped.
//
// The function is pure and deterministic: the same input slice always yields
// byte-identical commands. Grouping runs over the explicitly sorted slice,
// never over map iteration.
func Commands(entries []*entity.PendingPickEntry) []*entity.AudioCommand {
	sorted := make([]*entity.PendingPickEntry, 0, len(entries))
	for _, e := range entries {
		if e.SkuName == nil {
			continue
		}
		sorted = append(sorted, e)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if la, lb := deref(a.LocationName), deref(b.LocationName); la != lb {
			return la < lb
		}
		if ma, mb := deref(a.MachineCode), deref(b.MachineCode); ma != mb {
			return ma < mb
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.CoilCode != b.CoilCode {
			return a.CoilCode < b.CoilCode
		}
		return *a.SkuName < *b.SkuName
	})

	var (
		out        []*entity.AudioCommand
		curLoc     string
		curMachine string
		started    bool
	)
	next := func() int { return len(out) + 1 }

	for _, e := range sorted {
		loc := deref(e.LocationName)
		mach := deref(e.MachineCode)

		if !started || loc != curLoc {
			out = append(out, &entity.AudioCommand{
				ID:           next(),
				Type:         entity.AudioLocation,
				AudioCommand: locationText(e.LocationName),
				LocationName: e.LocationName,
			})
			curLoc = loc
			started = true
			// sentinel forces a machine announcement under the new location
			curMachine = "\x00"
		}
		if mach != curMachine {
			out = append(out, &entity.AudioCommand{
				ID:           next(),
				Type:         entity.AudioMachine,
				AudioCommand: machineText(e.MachineCode),
				LocationName: e.LocationName,
				MachineCode:  e.MachineCode,
			})
			curMachine = mach
		}

		id := e.PickEntryID
		count := e.Count
		coil := e.CoilCode
		cmd := &entity.AudioCommand{
			ID:           next(),
			Type:         entity.AudioItem,
			AudioCommand: itemText(e),
			PickEntryID:  &id,
			Count:        &count,
			LocationName: e.LocationName,
			MachineCode:  e.MachineCode,
		}
		if coil != "" {
			cmd.CoilCode = &coil
		}
		out = append(out, cmd)
	}
	return out
}

// itemText renders the fixed announcement template:
// "{skuName}[, {skuType}]. Need {count}[. Coil {coilCode}]".
func itemText(e *entity.PendingPickEntry) string {
	s := *e.SkuName
	if e.SkuType != nil && *e.SkuType != "" {
		s += ", " + *e.SkuType
	}
	s += fmt.Sprintf(". Need %d", e.Count)
	if e.CoilCode != "" {
		s += ". Coil " + e.CoilCode
	}
	return s
}

func locationText(name *string) string {
	if name == nil || *name == "" {
		return "No location"
	}
	return "Location " + *name
}

func machineText(code *string) string {
	if code == nil || *code == "" {
		return "No machine"
	}
	return "Machine " + *code
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
