package tui

import "strings"

// FooterModel renders key hints and the run status.
type FooterModel struct {
	paused bool
	done   bool
	err    bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel { return FooterModel{} }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused marks sampling as paused.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as failed.
func (f *FooterModel) SetError(e bool) { f.err = e }

// Status returns the status word shown on the right.
func (f FooterModel) Status() string {
	switch {
	case f.err:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	var hints []string
	for _, b := range DefaultKeyMap().ShortHelp() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := strings.Join(hints, "  ")

	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("ERROR")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return padTo(left, f.width-len(f.Status())-1) + " " + status
}
