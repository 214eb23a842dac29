package outwriter

import (
	"os"

	"github.com/huangsam/relicdb/internal/contract"
	"golang.org/x/term"
)

// narrowWidth is the terminal width below which tables drop the label column.
const narrowWidth = 60

// getTermWidth returns the width override, the detected terminal width, or a
// conservative default when neither is available.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// showLabels reports whether tables have room for the weight label column.
func showLabels(cfg *contract.Config) bool {
	return getTermWidth(cfg) >= narrowWidth
}
