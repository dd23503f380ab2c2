// Package protect implements the human-interaction gates of a SkyGuard device.
//
// A gate blocks the single dispatcher thread until a human resolves it:
//
//	Button      ButtonRequest → ButtonAck → Yes / No on the device
//	Pin         countdown (after wrong PINs) → PinMatrixRequest → PinMatrixAck
//	Passphrase  PassphraseRequest → PassphraseAck
//
// Each gate reads one event at a time from an input.Source. Cancel and
// Initialize are honoured in every loop iteration; Initialize additionally
// raises a sticky flag telling the device to abandon the whole command and
// replay the Initialize. Other host messages that are not part of the
// exchange are answered with Failure{UnexpectedMessage} and dropped.
//
// # Lockout
//
// Every PIN attempt is recorded before the comparison. After n recorded
// attempts the next prompt waits 2^n seconds. Once the wait would reach
// 2^15 seconds the credential store is wiped and the device halts; gates
// then return ErrHalted and nothing else.
//
// # Debug link
//
// Builds without the "production" tag may enable the debug link in Config.
// It lets a test host read the screen and inject button decisions. Injected
// decisions are applied only after the ButtonAck, as physical presses are.
package protect
