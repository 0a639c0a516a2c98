package sequence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendiq/pickrun/internal/entity"
)

func entry(loc, machine string, count int, coil, sku string) *entity.PendingPickEntry {
	e := &entity.PendingPickEntry{
		PickEntryID: uuid.New(),
		CoilItemID:  uuid.New(),
		Count:       count,
		CoilCode:    coil,
		SkuName:     &sku,
	}
	if loc != "" {
		e.LocationName = &loc
	}
	if machine != "" {
		e.MachineCode = &machine
	}
	return e
}

func announcements(cmds []*entity.AudioCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.AudioCommand
	}
	return out
}

func TestCommands_Ordering(t *testing.T) {
	// deliberately shuffled input; the fixed sort must untangle it
	entries := []*entity.PendingPickEntry{
		entry("Y", "M2", 1, "C1", "Gum"),
		entry("X", "M1", 5, "A2", "Cola"),
		entry("X", "M1", 9, "A1", "Chips"),
	}

	cmds := Commands(entries)
	require.Len(t, cmds, 7)

	assert.Equal(t, []string{
		"Location X",
		"Machine M1",
		"Chips. Need 9. Coil A1",
		"Cola. Need 5. Coil A2",
		"Location Y",
		"Machine M2",
		"Gum. Need 1. Coil C1",
	}, announcements(cmds))

	// IDs are 1-based ordinals over the final list
	for i, c := range cmds {
		assert.Equal(t, i+1, c.ID)
	}
	assert.Equal(t, entity.AudioLocation, cmds[0].Type)
	assert.Equal(t, entity.AudioMachine, cmds[1].Type)
	assert.Equal(t, entity.AudioItem, cmds[2].Type)
}

func TestCommands_TieBreaks(t *testing.T) {
	// equal counts fall through to coil code, then SKU name
	entries := []*entity.PendingPickEntry{
		entry("X", "M1", 4, "B1", "Water"),
		entry("X", "M1", 4, "A1", "Soda"),
		entry("X", "M1", 4, "A1", "Juice"),
	}

	cmds := Commands(entries)
	require.Len(t, cmds, 5)
	assert.Equal(t, []string{
		"Location X",
		"Machine M1",
		"Juice. Need 4. Coil A1",
		"Soda. Need 4. Coil A1",
		"Water. Need 4. Coil B1",
	}, announcements(cmds))
}

func TestCommands_ItemTemplate(t *testing.T) {
	skuType := "Snack"
	e := entry("X", "M1", 3, "A1", "Chips")
	e.SkuType = &skuType

	cmds := Commands([]*entity.PendingPickEntry{e})
	require.Len(t, cmds, 3)
	assert.Equal(t, "Chips, Snack. Need 3. Coil A1", cmds[2].AudioCommand)

	// no coil code drops the trailing clause
	e2 := entry("X", "M1", 2, "", "Cola")
	cmds = Commands([]*entity.PendingPickEntry{e2})
	require.Len(t, cmds, 3)
	assert.Equal(t, "Cola. Need 2", cmds[2].AudioCommand)
	assert.Nil(t, cmds[2].CoilCode)
}

func TestCommands_MachineRestatedPerLocation(t *testing.T) {
	// same machine code under two locations must be announced twice
	entries := []*entity.PendingPickEntry{
		entry("X", "M1", 2, "A1", "Cola"),
		entry("Y", "M1", 2, "A1", "Cola"),
	}

	cmds := Commands(entries)
	require.Len(t, cmds, 6)
	assert.Equal(t, []string{
		"Location X",
		"Machine M1",
		"Cola. Need 2. Coil A1",
		"Location Y",
		"Machine M1",
		"Cola. Need 2. Coil A1",
	}, announcements(cmds))
}

func TestCommands_NilLocationAndMachine(t *testing.T) {
	entries := []*entity.PendingPickEntry{
		entry("X", "M1", 2, "A1", "Cola"),
		entry("", "", 7, "Z1", "Gum"),
	}

	cmds := Commands(entries)
	require.Len(t, cmds, 6)
	// nil sorts as empty string, so the unnamed bucket comes first
	assert.Equal(t, []string{
		"No location",
		"No machine",
		"Gum. Need 7. Coil Z1",
		"Location X",
		"Machine M1",
		"Cola. Need 2. Coil A1",
	}, announcements(cmds))
}

func TestCommands_DropsEntriesWithoutSku(t *testing.T) {
	e := entry("X", "M1", 2, "A1", "Cola")
	bad := entry("X", "M1", 9, "A2", "ignored")
	bad.SkuName = nil

	cmds := Commands([]*entity.PendingPickEntry{e, bad})
	require.Len(t, cmds, 3)
	assert.Equal(t, "Cola. Need 2. Coil A1", cmds[2].AudioCommand)
}

func TestCommands_Deterministic(t *testing.T) {
	entries := []*entity.PendingPickEntry{
		entry("Y", "M2", 1, "C1", "Gum"),
		entry("X", "M1", 5, "A2", "Cola"),
		entry("X", "M1", 9, "A1", "Chips"),
	}

	a := Commands(entries)
	b := Commands(entries)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].AudioCommand, b[i].AudioCommand)
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Type, b[i].Type)
	}
}

func TestCommands_Empty(t *testing.T) {
	assert.Empty(t, Commands(nil))
}
