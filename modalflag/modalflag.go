// This file is part of Zoomcore.
//
// Zoomcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zoomcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zoomcore.  If not, see <https://www.gnu.org/licenses/>.

package modalflag

import (
	"flag"
	"io"
)

// Modes is a thin convenience wrapper around flag.FlagSet. The Output field
// should be specified before calling Parse() or you will not see any help
// messages.
type Modes struct {
	// where to print output (help messages etc). if nil, help messages are
	// not printed
	Output io.Writer

	// the underlying flag structure. this can be used directly as described
	// by the flag.FlagSet documentation. the only thing you shouldn't do is
	// call Parse() directly. Use the Parse() function of the parent Modes
	// struct instead.
	flags *flag.FlagSet

	// the argument list as specified by the NewArgs() function
	args []string
}

// NewArgs readies md for a fresh round of flag definitions and parsing,
// with args (typically os.Args[1:]) as the command line to parse.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// Continue with command line processing.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// an error has occurred and is returned as the second return value.
	ParseError
)

// Parse the arguments supplied to NewArgs(). Returns a value of ParseResult.
// The idiomatic usage is as follows:
//
//	r, err := md.Parse()
//	switch r {
//	case modalflag.ParseHelp:
//		// help message has already been printed
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// Help messages are handled automatically by the function. Note that the
// Output field of the Modes struct *must* be specified in order for any
// help messages to be visible. The most common and useful value of the
// field is os.Stdout.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args)
	if err != nil {
		if err == flag.ErrHelp {
			if md.Output != nil {
				hw.Help(md.Output)
			}
			hw.Clear()
			return ParseHelp, nil
		}
		return ParseError, err
	}

	return ParseContinue, nil
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddFloat64 flag for the next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}
