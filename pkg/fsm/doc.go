// Package fsm implements the command dispatcher.
//
// A Dispatcher takes one host request at a time, runs the protection gates
// the request needs, calls the signing service and answers with exactly one
// terminal message. Every outcome goes through Response, the single mapping
// from errcode.Code to Success or Failure. After each request the display
// returns to the home screen.
//
// Once the device has wiped itself after too many wrong PINs, Handle sends
// nothing and returns protect.ErrHalted.
package fsm
