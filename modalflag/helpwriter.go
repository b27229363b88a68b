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
	"io"
	"strings"
)

// helpWriter is used to amend the default output from the flag package.
type helpWriter struct {
	// the last []byte sent to the Write() function
	buffer []byte
}

// Clear contents of output buffer.
func (hw *helpWriter) Clear() {
	hw.buffer = []byte{}
}

// Help writes the buffered flag.FlagSet output to output, substituting a
// plain "no help available" message when no flags were defined.
func (hw *helpWriter) Help(output io.Writer) {
	s := string(hw.buffer)

	if s == "Usage:\n" {
		output.Write([]byte("No help available\n"))
		return
	}

	helpLines := strings.Split(s, "\n")
	output.Write([]byte(helpLines[0]))
	output.Write([]byte("\n"))
	if len(helpLines) > 1 {
		output.Write([]byte(strings.Join(helpLines[1:], "\n")))
	}
}

// Write buffers all output.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	hw.buffer = append(hw.buffer, p...)
	return len(p), nil
}
