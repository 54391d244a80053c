package refresh

import (
	"os"

	"github.com/mattn/go-isatty"
)

// TTYVisibility treats "someone has a terminal attached to the output" as
// the equivalent of the browser page being visible. Redirected output means
// nobody is watching, so background refreshes would be wasted requests.
type TTYVisibility struct {
	Out *os.File
}

func (v *TTYVisibility) Visible() bool {
	out := v.Out
	if out == nil {
		out = os.Stdout
	}
	return isatty.IsTerminal(out.Fd())
}

// StaticVisibility pins visibility for tests and for --force-refresh runs.
type StaticVisibility bool

func (s StaticVisibility) Visible() bool {
	return bool(s)
}
