// Package cli provides the interactive MedReport command-line client.
//
// One REPL session plays the part of one page load: a landing screen with
// the uploader, the how-it-works cards and the security banner; sign-in and
// sign-up prompts in place of modals; and a summary panel that prints as
// soon as an upload finishes.
//
// Session changes arrive through the session store's subscription, so the
// prompt and header follow a login or logout without a restart. When the
// backend answers 401 the HTTP client clears the session and asks the
// Router for "/"; the REPL then resets to the landing screen.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
