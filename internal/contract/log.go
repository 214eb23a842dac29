package contract

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger traces per-character decisions. It discards everything until
// SetupLogger enables it.
var Logger = zerolog.Nop()

// SetupLogger points Logger at w with a console format. A nil writer means stderr.
func SetupLogger(w io.Writer, verbose bool) {
	if !verbose {
		Logger = zerolog.Nop()
		return
	}
	if w == nil {
		w = os.Stderr
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}
