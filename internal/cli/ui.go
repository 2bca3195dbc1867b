//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// TruncationLimit is the digit count from which values are truncated
	// on standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// decimal value.
	DisplayEdges = 25
	// HexDisplayEdges is the number of characters kept at each end of a
	// truncated hexadecimal value.
	HexDisplayEdges = 40
	// SpinnerRefreshRate is the spinner animation period.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner abstracts a terminal spinner so that long operations can be
// displayed without tying callers to a specific implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// WithSpinner runs fn while a spinner labelled label animates on out.
// The spinner is skipped in quiet mode.
func WithSpinner(out io.Writer, label string, quiet bool, fn func() error) error {
	if quiet {
		return fn()
	}
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + label)
	s.Start()
	defer s.Stop()
	return fn()
}
