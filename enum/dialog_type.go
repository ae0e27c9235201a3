package enum

type DialogType string

// Only DIALOG is implemented by the engine. The remaining values reserve
// room in the schema for multi-party conversations.
const (
	DIALOG  DialogType = "dialog"
	PRIVATE DialogType = "private"
	GROUP   DialogType = "group"
	CHANNEL DialogType = "channel"
)
