package entity

import "github.com/google/uuid"

// AudioCommandType distinguishes the three announcement levels.
type AudioCommandType string

const (
	AudioLocation AudioCommandType = "location"
	AudioMachine  AudioCommandType = "machine"
	AudioItem     AudioCommandType = "item"
)

// AudioCommand is one spoken instruction in the pick sequence. ID is the
// 1-based position in the sequence; sequencing the same entries twice must
// produce byte-identical output, so IDs are ordinals rather than UUIDs.
type AudioCommand struct {
	ID           int              `json:"id"`
	Type         AudioCommandType `json:"type"`
	AudioCommand string           `json:"audio_command"`
	PickEntryID  *uuid.UUID       `json:"pick_entry_id,omitempty"`
	Count        *int             `json:"count,omitempty"`
	LocationName *string          `json:"location_name,omitempty"`
	MachineCode  *string          `json:"machine_code,omitempty"`
	CoilCode     *string          `json:"coil_code,omitempty"`
}
