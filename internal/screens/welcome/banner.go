package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ███████╗██████╗ ██████╗  ██████╗ ████████╗
 ██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔═══██╗╚══██╔══╝
 ██████╔╝██████╔╝█████╗  ██████╔╝██████╔╝██║   ██║   ██║
 ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝ ██╔══██╗██║   ██║   ██║
 ██║     ██║  ██║███████╗██║     ██████╔╝╚██████╔╝   ██║
 ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝     ╚═════╝  ╚═════╝    ╚═╝`

const bannerCompact = "P R E P B O T"

// RenderBanner returns the PREPBOT banner in the primary color, or a
// one-line fallback for terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
