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

// Filter runs the incremental IAC parser over in, returning the
// application-data bytes extracted from it. Any negotiation replies or
// subnegotiation responses this call triggers are queued and retrievable
// via Outbound.
func (e *Engine) Filter(in []byte) []byte {
	data := make([]byte, 0, len(in))

	for _, b := range in {
		switch e.st {
		case stateData:
			if b == IAC {
				e.st = stateIAC
			} else {
				data = append(data, b)
			}

		case stateIAC:
			switch b {
			case IAC:
				data = append(data, IAC)
				e.st = stateData
			case WILL:
				e.st = stateWill
			case WONT:
				e.st = stateWont
			case DO:
				e.st = stateDo
			case DONT:
				e.st = stateDont
			case SB:
				e.sbOpt = 0
				e.sbBuf = e.sbBuf[:0]
				e.st = stateSB
			case IP:
				e.st = stateData
			case AO:
				e.st = stateData
			case BRK:
				e.st = stateData
			default:
				// NOP, DM, AYT, EC, EL, GA and any unrecognized command are
				// consumed silently.
				e.st = stateData
			}

		case stateWill:
			e.handleRemoteOffer(b, true)
			e.st = stateData

		case stateWont:
			e.handleRemoteOffer(b, false)
			e.st = stateData

		case stateDo:
			e.handleRemoteRequest(b, true)
			e.st = stateData

		case stateDont:
			e.handleRemoteRequest(b, false)
			e.st = stateData

		case stateSB:
			if b == IAC {
				e.st = stateSBIAC
			} else if e.sbOpt == 0 {
				e.sbOpt = b
			} else {
				e.sbBuf = append(e.sbBuf, b)
			}

		case stateSBIAC:
			switch b {
			case IAC:
				e.sbBuf = append(e.sbBuf, IAC)
				e.st = stateSB
			case SE:
				e.handleSubnegotiation(e.sbOpt, e.sbBuf)
				e.sbBuf = nil
				e.st = stateData
			default:
				// An unclosed SB across connection loss or a malformed
				// escape is discarded.
				e.sbBuf = nil
				e.st = stateData
			}
		}
	}

	return data
}

// handleRemoteOffer processes an incoming WILL (will=true) / WONT
// (will=false) against the local side's Q-method state for that option.
func (e *Engine) handleRemoteOffer(code byte, will bool) {
	o := e.option(code)

	if will {
		switch o.remote {
		case qNo:
			if e.wantOption(code) {
				o.remote = qYes
				e.queue(IAC, DO, code)
			} else {
				e.queue(IAC, DONT, code)
			}
		case qWantYes:
			o.remote = qYes
		case qWantNo:
			o.remote = qNo
			e.queue(IAC, DONT, code)
		case qYes:
			// duplicate offer: idempotent, no reply.
		}
	} else {
		switch o.remote {
		case qYes, qWantNo:
			o.remote = qNo
		case qWantYes:
			o.remote = qNo
		case qNo:
			// already off: idempotent.
		}
	}
}

// handleRemoteRequest processes an incoming DO (do=true) / DONT (do=false)
// against the local side's Q-method state for that option.
func (e *Engine) handleRemoteRequest(code byte, do bool) {
	o := e.option(code)

	if do {
		switch o.local {
		case qNo:
			if e.wantOption(code) {
				o.local = qYes
				e.queue(IAC, WILL, code)
			} else {
				e.queue(IAC, WONT, code)
			}
		case qWantYes:
			o.local = qYes
		case qWantNo:
			o.local = qNo
			e.queue(IAC, WONT, code)
		case qYes:
			// duplicate: idempotent.
		}
	} else {
		switch o.local {
		case qYes, qWantNo:
			o.local = qNo
		case qWantYes:
			o.local = qNo
		case qNo:
		}
	}
}

// wantOption reports this engine's fixed policy for accepting a peer's
// offer/request for an option it did not itself initiate.
func (e *Engine) wantOption(code byte) bool {
	switch code {
	case OptBinary, OptEcho, OptSuppressGoAhead:
		return true
	default:
		return false
	}
}

func (e *Engine) handleSubnegotiation(opt byte, body []byte) {
	if opt == OptTerminalType && len(body) >= 1 && body[0] == tsendSub {
		e.queue(IAC, SB, OptTerminalType, tisSub)
		e.queue([]byte(e.termType)...)
		e.queue(IAC, SE)
	}
}
