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

// Package modalflag is a small convenience wrapper around the standard
// library's flag package, for the single-mode command line cmd/zoomcore
// needs.
//
// Where flag.FlagSet wants Parse() called with the argument slice directly,
// modalflag splits that into NewArgs() followed by a no-argument Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Adding flags works the same way as the flag package, returning a pointer
// to the parsed value:
//
//	fps := md.AddFloat64("fps", 30, "target frame rate")
//
// Parse() handles "-help" itself, printing a usage message to Output and
// returning ParseHelp rather than an error, so callers can treat help and
// genuine parse errors the same way:
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
package modalflag
