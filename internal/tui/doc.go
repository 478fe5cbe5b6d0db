// Package tui drives the confirmation dialogue in a terminal.
//
// Two drivers share one contract: they feed user input to a
// confirm.Session until it reaches Accepted or Cancelled and return it.
//
//   - Run is a Bubble Tea program for interactive terminals
//   - RunPlain reads answers line by line, for pipes and scripts
//
// Pick reports the driver suited to a given stdin:
//
//	drive := tui.Pick(os.Stdin)
//	final, err := drive(ctx, confirm.New(proposal), os.Stdin, os.Stdout)
//
// Both return context.Canceled when the user interrupts with ctrl+c or the
// context ends first.
package tui
