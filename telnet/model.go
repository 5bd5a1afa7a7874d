/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package telnet

// Command bytes, RFC 854.
const (
	SE   byte = 240
	NOP  byte = 241
	DM   byte = 242
	BRK  byte = 243
	IP   byte = 244
	AO   byte = 245
	AYT  byte = 246
	EC   byte = 247
	EL   byte = 248
	GA   byte = 249
	SB   byte = 250
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255
)

// Option codes this engine has an explicit policy for.
const (
	OptBinary            byte = 0
	OptEcho              byte = 1
	OptSuppressGoAhead   byte = 3
	OptTerminalType      byte = 24
	OptNAWS              byte = 31
	tsendSub             byte = 1 // TERMINAL-TYPE SEND
	tisSub               byte = 0 // TERMINAL-TYPE IS
)

// parserState is the incremental IAC byte-stream parser's current state.
type parserState uint8

const (
	stateData parserState = iota
	stateIAC
	stateWill
	stateWont
	stateDo
	stateDont
	stateSB
	stateSBIAC
)

// qState is one side (local or remote) of an option's Q-method state,
// RFC 1143.
type qState uint8

const (
	qNo qState = iota
	qWantYes
	qYes
	qWantNo
)

// optionState holds both sides of one option's negotiated state.
type optionState struct {
	local  qState
	remote qState
}

// Dims is a terminal window size in character cells.
type Dims struct {
	Cols uint16
	Rows uint16
}
