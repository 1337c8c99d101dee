package output

import (
	"io"
	"os"
)

// Values of the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorModes lists the accepted --color values, default first.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// ResolveColorMode turns a --color value into whether to style output.
// always and never override terminal detection; anything else follows isTTY.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	if colorMode == ColorAlways || colorMode == ColorNever {
		return colorMode == ColorAlways
	}
	return isTTY
}

// IsTTY reports whether writer is a character device. Git runs hooks with
// stderr on the user's terminal and stdout often redirected, so the hook
// probes stderr.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
