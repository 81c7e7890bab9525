// Package record defines the user record exchanged with the users service and
// normalizes the service's response envelopes into it.
//
// The service sometimes wraps its payload in an envelope:
//
//	{"data": {"id": 1, "fullName": "Ana", "email": "a@x.com", "phone": "+1"}, "success": true}
//
// and sometimes answers with the bare record. Normalize accepts both and
// rejects any payload that does not carry every required field.
//
// Ids are opaque. The service may send them as JSON strings or integers; both
// are held as text in ID.
package record
