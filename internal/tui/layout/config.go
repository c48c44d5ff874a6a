package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + status line (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// PaneBorder is the horizontal space each pane's border takes.
	PaneBorder int

	// SidebarWidthPercent is the collections sidebar share of the usable width.
	SidebarWidthPercent int
	// MinSidebarWidth fits a built-in collection row such as
	// "▸ ◷ Recently Added (10)" without truncation.
	MinSidebarWidth int
	MaxSidebarWidth int

	// PreviewWidthPercent is the preview pane share of the usable width.
	PreviewWidthPercent int

	// MinListWidth is the narrowest bookmark list allowed before the
	// preview pane is hidden.
	MinListWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	ContentPadding int

	// ListHeaderLines accounts for the title and spacer above a pane's items.
	ListHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// LargeWidthPercent is used for the add bookmark form.
	LargeWidthPercent int

	MinWidth int
	MaxWidth int

	// CollectionsVisible: max collections shown in the add form picker.
	CollectionsVisible int

	HelpLeftColumnWidth  int
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit       int
	URLCharLimit         int
	DescriptionCharLimit int
	TagsCharLimit        int
	SearchCharLimit      int
	EmailCharLimit       int
	PasswordCharLimit    int

	StandardWidth int // form fields
	SearchWidth   int // inline search bar
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:     7,
			MinHeight:           5,
			PaneBorder:          2,
			SidebarWidthPercent: 22,
			MinSidebarWidth:     27,
			MaxSidebarWidth:     32,
			PreviewWidthPercent: 35,
			MinListWidth:        30,
			ContentPadding:      4,
			ListHeaderLines:     2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			LargeWidthPercent:    50,
			MinWidth:             50,
			MaxWidth:             80,
			CollectionsVisible:   5,
			HelpLeftColumnWidth:  18,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			URLCharLimit:         500,
			DescriptionCharLimit: 300,
			TagsCharLimit:        200,
			SearchCharLimit:      100,
			EmailCharLimit:       120,
			PasswordCharLimit:    64,
			StandardWidth:        40,
			SearchWidth:          30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
