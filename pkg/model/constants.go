package model

// Store names the top-level bbolt buckets used by the CLI.
type Store string

const (
	KVConfig    Store = "kvConfig"
	Uploads     Store = "uploads"
	WatchStates Store = "watchStates"
)

// Size ceilings enforced before any transfer is attempted.
const (
	MaxImageBytes int64 = 20 * 1024 * 1024
	MaxVideoBytes int64 = 50 * 1024 * 1024
)

// MediaKind selects which family of files a control accepts.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Ceiling returns the maximum accepted file size for the kind.
func (k MediaKind) Ceiling() int64 {
	if k == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

// AcceptPattern returns the default browser-style accept filter for the kind.
func (k MediaKind) AcceptPattern() string {
	if k == KindVideo {
		return "video/*"
	}
	return "image/*"
}

// Theme selects the terminal color variant for rendered output.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)
