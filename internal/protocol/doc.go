// Package protocol decodes the output of the fecoding helper script.
//
// The script prints free-form diagnostics, then the sentinel line
// "*** Fecoding output json ***", then a single UTF-8 JSON object:
//
//	{"flag": <any>, "action": "update_view", "content": "...", "message": "..."}
//
// Framing rules:
//   - The first occurrence of the sentinel is the boundary. The payload may
//     itself contain the sentinel text (e.g. when formatting this package).
//   - Output without the sentinel is a protocol violation (ErrSentinelMissing).
//   - The payload must be valid UTF-8 (DecodeError). A leading BOM is dropped.
//   - An empty or non-object payload yields an empty Envelope together with a
//     MalformedEnvelopeError so callers can degrade to a no-op.
//
// The sentinel is not versioned. It is kept byte-for-byte for compatibility
// with the existing script; any change to the framing must change the script
// in lockstep.
package protocol
